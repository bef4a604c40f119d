package auth

import (
	"testing"
	"time"

	"freelance_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	token, err := tm.GenerateToken("user-123", models.UserRoleFreelancer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, models.UserRoleFreelancer, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	token, err := NewTokenManager("other-secret", time.Hour).GenerateToken("u", models.UserRoleClient)
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager(testSecret, -time.Minute)
	token, err := tm.GenerateToken("u", models.UserRoleClient)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long-enough"))
}
