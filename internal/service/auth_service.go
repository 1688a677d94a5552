package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/identity-service/internal/auth"
	"github.com/spec-kit/identity-service/internal/config"
	"github.com/spec-kit/identity-service/internal/domain"
	"github.com/spec-kit/identity-service/internal/events"
	"github.com/spec-kit/identity-service/internal/repository"
	apperrors "github.com/spec-kit/identity-service/pkg/util"
)

// AuthService coordinates the registration, login and refetch flows. It owns
// the translation of storage and crypto failures into the client-facing
// error taxonomy; nothing below this layer produces client-facing messages.
type AuthService struct {
	users      repository.UserRepository
	hasher     *auth.PasswordHasher
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		hasher:     auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
	}
}

// Register creates a new credential record. The password is hashed before
// any store interaction so the hash computation never holds a pool
// connection. Uniqueness is decided by the store alone: on a duplicate the
// flow surfaces the error without retrying. The returned record is re-read
// from the store so the caller sees exactly what is durably committed.
func (s *AuthService) Register(ctx context.Context, email, password string, role domain.Role) (*domain.UserRecord, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	record := &domain.UserRecord{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, err
	}

	stored, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, stored)
	return stored, nil
}

// Login authenticates the credentials and issues a bearer token. An unknown
// email and a wrong password produce the identical error so responses never
// reveal whether the address is registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.UserRecord, string, time.Time, error) {
	record, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}

	if !s.hasher.Verify(password, record.PasswordHash) {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, expiresAt, err := s.tokenMgr.Issue(record.Email, record.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventUserLoggedIn, record)
	return record, token, expiresAt, nil
}

// Refetch loads the record behind a verified token's email claim. The
// backing record can have vanished since issuance; that is a NotFound, not
// a failure of the token itself.
func (s *AuthService) Refetch(ctx context.Context, email string) (*domain.UserRecord, error) {
	record, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return record, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, record *domain.UserRecord) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Email:      record.Email,
		Role:       record.Role,
		OccurredAt: time.Now(),
	})
}
