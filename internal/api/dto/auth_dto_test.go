package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{Email: "a@x.com", Password: "longpassword", Role: "visitor"}
	assert.Nil(t, valid.Validate())

	cases := map[string]struct {
		req   RegisterRequest
		field string
	}{
		"empty email":       {RegisterRequest{Email: "", Password: "longpassword", Role: "admin"}, "email"},
		"malformed email":   {RegisterRequest{Email: "not-an-email", Password: "longpassword", Role: "admin"}, "email"},
		"email with spaces": {RegisterRequest{Email: "a @x.com", Password: "longpassword", Role: "admin"}, "email"},
		"short password":    {RegisterRequest{Email: "a@x.com", Password: "1234567", Role: "admin"}, "password"},
		"unknown role":      {RegisterRequest{Email: "a@x.com", Password: "longpassword", Role: "superuser"}, "role"},
		"empty role":        {RegisterRequest{Email: "a@x.com", Password: "longpassword", Role: ""}, "role"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			details := tc.req.Validate()
			assert.Contains(t, details, tc.field)
		})
	}
}

func TestRegisterRequest_AllRolesAccepted(t *testing.T) {
	for _, role := range []string{"visitor", "manager", "agency", "admin"} {
		req := RegisterRequest{Email: "a@x.com", Password: "longpassword", Role: role}
		assert.Nil(t, req.Validate(), "role %s", role)
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	valid := LoginRequest{Email: "a@x.com", Password: "longpassword"}
	assert.Nil(t, valid.Validate())

	missingEmail := LoginRequest{Password: "longpassword"}
	assert.Contains(t, missingEmail.Validate(), "email")

	missingPassword := LoginRequest{Email: "a@x.com"}
	assert.Contains(t, missingPassword.Validate(), "password")
}
