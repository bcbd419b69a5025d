package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer issues bearer tokens for authenticated users
type TokenIssuer interface {
	Issue(userID int32) (string, time.Time, error)
}

// AuthService handles registration, login and password changes
type AuthService struct {
	userRepo domain.UserRepository
	tokens   TokenIssuer
	users    *UserService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, tokens TokenIssuer, users *UserService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		users:    users,
	}
}

// RegisterInput contains input for creating an account
type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Age            *int32
	College        *string
	Year           *string
	Course         *string
	ExpectedIncome *decimal.Decimal
}

// LoginResult is returned after a successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Profile   *ProfileView
}

// Register creates a user and its profile
func (s *AuthService) Register(input RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	at := strings.Index(email, "@")
	if at <= 0 {
		return nil, domain.ErrEmailInvalid
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	name := strings.TrimSpace(input.Name)
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(&domain.User{
		Email:          email,
		Username:       email[:at],
		Name:           name,
		PasswordHash:   string(hash),
		Age:            input.Age,
		College:        input.College,
		Year:           input.Year,
		Course:         input.Course,
		ExpectedIncome: input.ExpectedIncome,
	}, name)
	if err != nil {
		if !errors.Is(err, domain.ErrEmailTaken) {
			log.Error().Err(err).Str("email", email).Msg("Failed to register user")
		}
		return nil, err
	}

	log.Info().Int32("user_id", user.ID).Msg("Registered new user")
	return user, nil
}

// Login checks credentials and issues a token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", user.ID).Msg("Failed to issue token")
		return nil, err
	}

	s.users.RecordActivity(user.ID)

	profile, err := s.users.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Profile:   profile,
	}, nil
}

// ChangePassword replaces the user's password after checking the current one
func (s *AuthService) ChangePassword(userID int32, current, next string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return domain.ErrInvalidCredentials
	}
	if len(next) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePasswordHash(userID, string(hash))
}
