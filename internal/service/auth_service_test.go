package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/events"
	"github.com/spec-kit/identity-service/internal/repository"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

// memoryUserRepository mirrors the storage contract of the Postgres
// implementation: the insert itself is the uniqueness arbiter, safe under
// concurrent writers.
type memoryUserRepository struct {
	mu      sync.Mutex
	records map[string]domain.UserRecord
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{records: make(map[string]domain.UserRecord)}
}

func (m *memoryUserRepository) Create(_ context.Context, record *domain.UserRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[record.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	m.records[record.Email] = *record
	return nil
}

func (m *memoryUserRepository) FindByEmail(_ context.Context, email string) (*domain.UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &record, nil
}

func (m *memoryUserRepository) delete(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, email)
}

func newTestService(repo repository.UserRepository) *AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}
	return NewAuthService(cfg, AuthDependencies{
		UserRepo:   repo,
		Dispatcher: events.NewInMemoryDispatcher(),
	})
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	return domainErr.Code
}

func TestRegister_StoresHashedPassword(t *testing.T) {
	repo := newMemoryUserRepository()
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), "a@x.com", "longpassword", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NotEqual(t, "longpassword", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)

	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, stored.PasswordHash, user.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMemoryUserRepository()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "a@x.com", "longpassword", domain.RoleVisitor)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@x.com", "otherpassword", domain.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, "DUPLICATE_EMAIL", domainCode(t, err))

	// first registration remains untouched
	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleVisitor, stored.Role)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	repo := newMemoryUserRepository()
	svc := newTestService(repo)

	const n = 16
	results := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), "race@x.com", "longpassword", domain.RoleVisitor)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case domainCode(t, err) == "DUPLICATE_EMAIL":
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, duplicates)
}

func TestLogin_Success(t *testing.T) {
	repo := newMemoryUserRepository()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "a@x.com", "longpassword", domain.RoleAdmin)
	require.NoError(t, err)

	user, token, expiresAt, err := svc.Login(context.Background(), "a@x.com", "longpassword")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.False(t, expiresAt.IsZero())

	claims, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	repo := newMemoryUserRepository()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "a@x.com", "longpassword", domain.RoleVisitor)
	require.NoError(t, err)

	_, _, _, wrongPassword := svc.Login(context.Background(), "a@x.com", "badpassword")
	require.Error(t, wrongPassword)

	_, _, _, unknownEmail := svc.Login(context.Background(), "nobody@x.com", "longpassword")
	require.Error(t, unknownEmail)

	wrongErr := apperrors.ToDomainError(wrongPassword)
	unknownErr := apperrors.ToDomainError(unknownEmail)
	assert.Equal(t, "INVALID_CREDENTIALS", wrongErr.Code)
	assert.Equal(t, wrongErr.Code, unknownErr.Code)
	assert.Equal(t, wrongErr.Message, unknownErr.Message)
	assert.Equal(t, wrongErr.HTTPStatus, unknownErr.HTTPStatus)
}

func TestRefetch(t *testing.T) {
	repo := newMemoryUserRepository()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "a@x.com", "longpassword", domain.RoleAgency)
	require.NoError(t, err)

	user, err := svc.Refetch(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgency, user.Role)

	// record vanished since the token was issued
	repo.delete("a@x.com")
	_, err = svc.Refetch(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}
