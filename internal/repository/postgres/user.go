package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/database"
	apperrors "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/errors"
)

const uniqueViolationCode = "23505"

// UserRepository implements repository.UserRepository on PostgreSQL.
type UserRepository struct {
	pool database.DBTX
}

// NewUserRepository creates a PostgreSQL-backed user repository.
func NewUserRepository(pool database.DBTX) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user. Unique violations on username or email map to
// AlreadyExists so the handler can answer 409.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.AlreadyExists("user", "username or email", u.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user for login.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user", username)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
