package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/auth"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/event"
	apperrors "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/errors"
)

func newUserService(users *mockUserRepository) (*UserService, *auth.JWTManager) {
	tokens := auth.NewJWTManager("test-secret", time.Hour)
	return NewUserService(users, tokens, event.NopPublisher{}, newTestLogger()), tokens
}

func registerInput() RegisterInput {
	return RegisterInput{
		Username:        "ratan",
		Email:           "ratan@example.com",
		Password:        "swordfish123",
		ConfirmPassword: "swordfish123",
	}
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	users := new(mockUserRepository)
	svc, tokens := newUserService(users)
	ctx := context.Background()

	var created *domain.User
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.User) }).
		Return(nil)

	result, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	require.NotNil(t, created)

	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "swordfish123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("swordfish123")))

	id, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id.UserID)
	assert.Equal(t, "ratan", id.Username)
}

func TestRegister_ConfirmationMismatch(t *testing.T) {
	users := new(mockUserRepository)
	svc, _ := newUserService(users)

	input := registerInput()
	input.ConfirmPassword = "different"

	_, err := svc.Register(context.Background(), input)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := new(mockUserRepository)
	svc, _ := newUserService(users)
	ctx := context.Background()

	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Return(apperrors.AlreadyExists("user", "username", "ratan"))

	_, err := svc.Register(ctx, registerInput())
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	users := new(mockUserRepository)
	svc, tokens := newUserService(users)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("swordfish123"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByUsername", ctx, "ratan").Return(&domain.User{
		ID:           "user-1",
		Username:     "ratan",
		Email:        "ratan@example.com",
		PasswordHash: string(hash),
	}, nil)

	result, err := svc.Login(ctx, LoginInput{Username: "ratan", Password: "swordfish123"})
	require.NoError(t, err)

	id, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, "ratan@example.com", id.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mockUserRepository)
	svc, _ := newUserService(users)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("swordfish123"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByUsername", ctx, "ratan").Return(&domain.User{
		ID: "user-1", Username: "ratan", PasswordHash: string(hash),
	}, nil)

	_, err = svc.Login(ctx, LoginInput{Username: "ratan", Password: "wrong"})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestLogin_UnknownUserSameAnswer(t *testing.T) {
	users := new(mockUserRepository)
	svc, _ := newUserService(users)
	ctx := context.Background()

	users.On("GetByUsername", ctx, "ghost").Return(nil, apperrors.NotFound("user", "ghost"))

	_, err := svc.Login(ctx, LoginInput{Username: "ghost", Password: "whatever"})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
}
