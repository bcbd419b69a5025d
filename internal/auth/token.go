// Package auth issues and validates the bearer tokens of the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pennyhq/penny/penny-backend/internal/config"
)

// ErrInvalidToken is returned when a token fails validation
var ErrInvalidToken = errors.New("invalid token")

// clockSkew tolerated between token issuer and validator
const clockSkew = time.Minute

// TokenManager signs HS256 tokens whose subject is the user ID and validates them
type TokenManager struct {
	secret    []byte
	issuer    string
	audience  string
	ttl       time.Duration
	validator *validator.Validator
	now       func() time.Time
}

// NewTokenManager creates a TokenManager from the JWT configuration
func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	secret := []byte(cfg.Secret)

	keyFunc := func(ctx context.Context) (interface{}, error) {
		return secret, nil
	}

	v, err := validator.New(
		keyFunc,
		validator.HS256,
		cfg.Issuer,
		[]string{cfg.Audience},
		validator.WithAllowedClockSkew(clockSkew),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up token validator: %w", err)
	}

	return &TokenManager{
		secret:    secret,
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		ttl:       cfg.TTL,
		validator: v,
		now:       time.Now,
	}, nil
}

// Issue signs a token for userID and returns it with its expiry
func (m *TokenManager) Issue(userID int32) (string, time.Time, error) {
	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(int(userID)),
		Issuer:    m.issuer,
		Audience:  jwt.ClaimStrings{m.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate checks a token and returns the user ID it was issued for
func (m *TokenManager) Validate(ctx context.Context, token string) (int32, *validator.ValidatedClaims, error) {
	raw, err := m.validator.ValidateToken(ctx, token)
	if err != nil {
		return 0, nil, ErrInvalidToken
	}

	claims, ok := raw.(*validator.ValidatedClaims)
	if !ok {
		return 0, nil, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.RegisteredClaims.Subject, 10, 32)
	if err != nil || id <= 0 {
		return 0, nil, ErrInvalidToken
	}
	return int32(id), claims, nil
}

// VerifyUserID validates a token and returns only its user ID
func (m *TokenManager) VerifyUserID(ctx context.Context, token string) (int32, error) {
	userID, _, err := m.Validate(ctx, token)
	return userID, err
}
