package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/auth"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/event"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/repository"
	apperrors "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/errors"
)

// RegisterInput holds the signup parameters. ConfirmPassword must match
// Password; the mismatch is caught by DTO validation and re-checked here.
type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=32"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginInput holds the login parameters.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is a signed token with the identity it represents.
type AuthResult struct {
	Token    string          `json:"token"`
	Identity domain.Identity `json:"identity"`
}

// UserService implements signup and login.
type UserService struct {
	users  repository.UserRepository
	tokens *auth.JWTManager
	events event.Publisher
	logger *slog.Logger
}

// NewUserService creates a user service.
func NewUserService(users repository.UserRepository, tokens *auth.JWTManager, events event.Publisher, logger *slog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, events: events, logger: logger}
}

// Register creates an account and returns a signed token for it.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Password != input.ConfirmPassword {
		return nil, apperrors.InvalidInput("password confirmation does not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.events.UserRegistered(ctx, user)
	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return s.authResult(user)
}

// Login verifies the credentials and returns a signed token. Unknown
// username and wrong password produce the same answer.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid username or password")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid username or password")
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return s.authResult(user)
}

func (s *UserService) authResult(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{
		Token: token,
		Identity: domain.Identity{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}
