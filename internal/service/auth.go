// Package service implements the business logic between handlers and
// repositories.
package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/camp/internal/database"
	"github.com/forgo/camp/internal/model"
)

const (
	bcryptCost = 12

	minPasswordLength = 8
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// AuthService handles registration and credential checks
type AuthService struct {
	userRepo UserRepository
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{userRepo: cfg.UserRepo}
}

// Register creates a new user account with email/password
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	if password == "" {
		return nil, ErrPasswordRequired
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email: email,
		Hash:  string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index can still fire under a concurrent register
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and returns the matching user. Unknown
// email and wrong password both come back as ErrInvalidCredentials; the
// distinction is only logged.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		slog.Info("login rejected", slog.String("reason", "no such user"), slog.String("email", email))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(password)); err != nil {
		slog.Info("login rejected", slog.String("reason", "bad password"), slog.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser loads a user by ID. Returns (nil, nil) when the user no longer
// exists; a stale session must not fail the request.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, nil
	}
	return s.userRepo.GetByID(ctx, id)
}
