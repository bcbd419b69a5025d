package websocket

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when token validation fails
var ErrInvalidToken = errors.New("invalid token")

// TokenVerifier validates a bearer token and returns its user ID
type TokenVerifier interface {
	VerifyUserID(ctx context.Context, token string) (int32, error)
}

// JWTValidator validates the token passed on the upgrade request
type JWTValidator struct {
	verifier TokenVerifier
}

// NewJWTValidator creates a new JWTValidator
func NewJWTValidator(verifier TokenVerifier) *JWTValidator {
	return &JWTValidator{verifier: verifier}
}

// ValidateToken validates a token and returns the user it belongs to
func (v *JWTValidator) ValidateToken(token string) (userID int32, err error) {
	if token == "" {
		return 0, ErrInvalidToken
	}
	id, err := v.verifier.VerifyUserID(context.Background(), token)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}
