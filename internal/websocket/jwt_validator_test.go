package websocket

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	userID int32
	err    error
}

func (s *stubVerifier) VerifyUserID(ctx context.Context, token string) (int32, error) {
	return s.userID, s.err
}

func TestJWTValidator_ValidateToken(t *testing.T) {
	v := NewJWTValidator(&stubVerifier{userID: 12})

	userID, err := v.ValidateToken("token")
	assert.NoError(t, err)
	assert.Equal(t, int32(12), userID)
}

func TestJWTValidator_EmptyToken(t *testing.T) {
	v := NewJWTValidator(&stubVerifier{userID: 12})

	_, err := v.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidator_VerifierError(t *testing.T) {
	v := NewJWTValidator(&stubVerifier{err: errors.New("expired")})

	_, err := v.ValidateToken("token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
