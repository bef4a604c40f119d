package services

import (
	"testing"
	"time"

	"freelance_backend/internal/auth"
	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/services/dto"
	"freelance_backend/internal/testutil"
	"freelance_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	db := testutil.NewTestDB(t)
	tm := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(repositories.NewUserRepository(), tm)

	user := testutil.CreateUser(t, db, "login@test.com", "password123", models.UserRoleFreelancer)
	suspended := testutil.CreateUser(t, db, "banned@test.com", "password123", models.UserRoleClient)
	require.NoError(t, db.Model(suspended).Update("status", models.UserStatusSuspended).Error)

	t.Run("успешный вход", func(t *testing.T) {
		resp, err := svc.Login(db, &dto.LoginRequest{Email: " Login@Test.com ", Password: "password123"})
		require.NoError(t, err)

		claims, err := tm.ParseToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, models.UserRoleFreelancer, claims.Role)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		_, err := svc.Login(db, &dto.LoginRequest{Email: "login@test.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("неизвестный email", func(t *testing.T) {
		_, err := svc.Login(db, &dto.LoginRequest{Email: "nobody@test.com", Password: "password123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("заблокированный пользователь", func(t *testing.T) {
		_, err := svc.Login(db, &dto.LoginRequest{Email: "banned@test.com", Password: "password123"})
		assert.ErrorIs(t, err, apperrors.ErrUserSuspended)
	})
}
