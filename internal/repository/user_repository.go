package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/identity-service/internal/domain"
)

// Sentinel errors returned by the store; callers translate these at the flow
// boundary, never the raw driver errors.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("user not found")
)

// UserRepository persists credential documents keyed by unique email.
type UserRepository interface {
	Create(ctx context.Context, record *domain.UserRecord) error
	FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation. Records are
// stored as JSONB documents; the unique index on the email expression is the
// sole uniqueness arbiter, so Create is a single atomic INSERT with no
// prior existence check.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, record *domain.UserRecord) error {
	const query = `INSERT INTO users (data) VALUES ($1)`

	if _, err := r.pool.Exec(ctx, query, record); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	const query = `SELECT data FROM users WHERE data->>'email' = $1`

	var record domain.UserRecord
	if err := r.pool.QueryRow(ctx, query, email).Scan(&record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}
