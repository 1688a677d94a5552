package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/identity-service/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("super-secret", 60)

	token, expiresAt, err := tm.Issue("a@x.com", domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestTokenManager_Expired(t *testing.T) {
	tm := &TokenManager{secret: []byte("super-secret"), ttl: -time.Minute}

	token, _, err := tm.Issue("a@x.com", domain.RoleVisitor)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_TamperedToken(t *testing.T) {
	tm := NewTokenManager("super-secret", 60)

	token, _, err := tm.Issue("a@x.com", domain.RoleAdmin)
	require.NoError(t, err)

	// flip one byte anywhere in the compact serialization
	for _, pos := range []int{0, len(token) / 2, len(token) - 1} {
		raw := []byte(token)
		raw[pos] ^= 0x01
		_, err := tm.Verify(string(raw))
		assert.ErrorIs(t, err, ErrTokenInvalid, "byte %d", pos)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("right-secret", 60).Issue("a@x.com", domain.RoleManager)
	require.NoError(t, err)

	_, err = NewTokenManager("wrong-secret", 60).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager("super-secret", 60)

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		_, err := tm.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tok)
	}
}

func TestTokenManager_RejectsUnexpectedSigningMethod(t *testing.T) {
	tm := NewTokenManager("super-secret", 60)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Email: "a@x.com",
		Role:  domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_RejectsNonConformingClaims(t *testing.T) {
	secret := "super-secret"
	tm := NewTokenManager(secret, 60)

	cases := map[string]*Claims{
		"missing email": {
			Role: domain.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		},
		"unknown role": {
			Email: "a@x.com",
			Role:  domain.Role("superuser"),
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		},
	}

	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
			require.NoError(t, err)

			_, err = tm.Verify(token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}
