package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/database"
	apperrors "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/errors"
)

func newUserRepo(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return NewUserRepository(mock), mock
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:           "8a6bc430-9c3a-11d9-9669-0800200c9a66",
		Username:     "ratan",
		Email:        "ratan@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

// --- Create Tests ---

func TestUserRepository_Create_Success(t *testing.T) {
	repo, mock := newUserRepo(t)

	u := sampleUser()
	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), u))
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	repo, mock := newUserRepo(t)

	u := sampleUser()
	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	err := repo.Create(context.Background(), u)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
}

func TestUserRepository_Create_OtherError(t *testing.T) {
	repo, mock := newUserRepo(t)

	u := sampleUser()
	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), u)
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrAlreadyExists))
}

// --- GetByUsername Tests ---

func TestUserRepository_GetByUsername_Success(t *testing.T) {
	repo, mock := newUserRepo(t)

	u := sampleUser()
	rows := pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow(u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)

	mock.ExpectQuery("SELECT(.|\n)*FROM users(.|\n)*WHERE username").
		WithArgs(u.Username).
		WillReturnRows(rows)

	got, err := repo.GetByUsername(context.Background(), u.Username)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery("SELECT(.|\n)*FROM users").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
