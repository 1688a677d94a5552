package dto

import (
	"net/mail"
	"strings"

	"github.com/spec-kit/identity-service/internal/domain"
)

const minPasswordLength = 8

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks the request against the registration rules and returns
// per-field messages.
func (r RegisterRequest) Validate() map[string]any {
	details := map[string]any{}
	if !validEmail(r.Email) {
		details["email"] = "must be a valid email address"
	}
	if len(r.Password) < minPasswordLength {
		details["password"] = "must be at least 8 characters"
	}
	if !domain.Role(r.Role).Valid() {
		details["role"] = "must be one of visitor, manager, agency, admin"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present.
func (r LoginRequest) Validate() map[string]any {
	details := map[string]any{}
	if strings.TrimSpace(r.Email) == "" {
		details["email"] = "is required"
	}
	if r.Password == "" {
		details["password"] = "is required"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func validEmail(addr string) bool {
	if addr == "" || strings.ContainsAny(addr, " \t") {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}
