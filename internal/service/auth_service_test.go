package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID int32) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return "token-for-user", time.Now().Add(time.Hour), nil
}

func newAuthServiceForTest() (*AuthService, *testutil.MockUserRepository) {
	users := testutil.NewMockUserRepository()
	userSvc := NewUserService(users, users, nil, nil)
	return NewAuthService(users, &fakeTokenIssuer{}, userSvc), users
}

func TestAuthService_Register(t *testing.T) {
	svc, users := newAuthServiceForTest()

	user, err := svc.Register(RegisterInput{Name: "Alice", Email: " Alice@Example.com ", Password: "supersecret"})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
	assert.Equal(t, "Alice", users.Profiles[user.ID].FullName)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	_, err := svc.Register(RegisterInput{Email: "no-at-sign", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrEmailInvalid)

	_, err = svc.Register(RegisterInput{Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)

	_, err = svc.Register(RegisterInput{Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)
	_, err = svc.Register(RegisterInput{Email: "A@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc, users := newAuthServiceForTest()
	user, err := svc.Register(RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "ALICE@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "token-for-user", result.Token)
	assert.Equal(t, user.ID, result.Profile.ID)
	assert.Equal(t, "Alice", result.Profile.FullName)
	assert.NotNil(t, users.Profiles[user.ID].LastActive, "login marks the user active")
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	_, err := svc.Register(RegisterInput{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "", "supersecret")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	svc.tokens = &fakeTokenIssuer{err: errors.New("signing failed")}
	_, err = svc.Login(context.Background(), "alice@example.com", "supersecret")
	assert.Error(t, err)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	user, err := svc.Register(RegisterInput{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(user.ID, "wrong-password", "newpassword"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.ChangePassword(user.ID, "supersecret", "short"), domain.ErrPasswordTooShort)
	require.NoError(t, svc.ChangePassword(user.ID, "supersecret", "newpassword"))

	_, err = svc.Login(context.Background(), "alice@example.com", "newpassword")
	assert.NoError(t, err)
}
