package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tixswap/internal/errors"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.Generate("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).Generate("user-1")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestJWTExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.Generate("user-1")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestJWTMalformed(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	}
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(4) // low cost keeps the test fast

	hash, err := h.Hash("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, h.Verify("hunter22", hash))
	assert.Error(t, h.Verify("wrong", hash))
	assert.Error(t, h.Verify("hunter22", "not-a-bcrypt-hash"))
}
