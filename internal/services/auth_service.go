package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/project-tasks-api/internal/constants"
	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email is already in use")
	ErrUsernameTaken        = errors.New("username is already in use")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, constants.MinPasswordLength)
	ErrPasswordTooLong      = fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, constants.MaxPasswordBytes)
	ErrUsernameLength       = fmt.Errorf("%w: username must be %d to %d characters", ErrValidation, constants.MinUsernameLength, constants.MaxUsernameLength)
	// ErrAccountTaken is a unique-constraint hit that slipped past the
	// existence checks, e.g. two concurrent registrations.
	ErrAccountTaken         = errors.New("email or username is already in use")
	ErrEmailRequired        = fmt.Errorf("%w: email is required", ErrValidation)
	ErrUsernameRequired     = fmt.Errorf("%w: username is required", ErrValidation)
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// TokenIssuer signs bearer tokens for an authenticated email.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// AuthService handles authentication related business logic.
type AuthService struct {
	store  repository.Store
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repository.Store, tokens TokenIssuer) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if n := utf8.RuneCountInString(username); n < constants.MinUsernameLength || n > constants.MaxUsernameLength {
		return nil, ErrUsernameLength
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(input.Password) > constants.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if taken, err := tx.Users().ExistsByEmail(email); err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		} else if taken {
			return ErrEmailTaken
		}

		if taken, err := tx.Users().ExistsByUsername(username); err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		} else if taken {
			return ErrUsernameTaken
		}

		if err := tx.Users().Create(user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAccountTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the issued bearer token.
type LoginResult struct {
	Token string
	User  *models.User
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user *models.User
	err := s.store.ReadOnly(ctx, func(tx repository.Store) error {
		found, err := tx.Users().FindByEmail(email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidCredentials
			}
			return fmt.Errorf("failed to find user: %w", err)
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}
