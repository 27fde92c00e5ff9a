package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixswap/internal/auth"
	apperrors "tixswap/internal/errors"
	"tixswap/internal/models"
	"tixswap/internal/repository"
)

func newAuthService() *AuthService {
	return NewAuthService(
		repository.NewMemoryUserRepository(),
		auth.NewJWTService("test-secret", time.Hour),
		auth.NewPasswordHasher(4),
	)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &models.SignupRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "alice", resp.Username)

	login, err := svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, login.UserID)

	userID, err := svc.VerifyToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, userID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.SignupRequest{Username: "alice", Password: "one"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &models.SignupRequest{Username: "alice", Password: "two"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.SignupRequest{Username: "  ", Password: "pw"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Register(ctx, &models.SignupRequest{Username: "bob", Password: ""})
	assert.True(t, apperrors.IsValidation(err))
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Login(context.Background(), &models.LoginRequest{Username: "ghost", Password: "pw"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.SignupRequest{Username: "alice", Password: "right"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}
