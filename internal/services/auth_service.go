package services

import (
	"errors"
	"strings"

	"freelance_backend/internal/auth"
	"freelance_backend/internal/logger"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/services/dto"
	"freelance_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type AuthServiceImpl struct {
	userRepo     repositories.UserRepository
	tokenManager *auth.TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, tokenManager *auth.TokenManager) AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		tokenManager: tokenManager,
	}
}

// Login - вход по email и паролю
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx := db.Statement.Context

	user, err := s.userRepo.FindByEmail(db, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxWarn(ctx, "login failed: unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "login failed: wrong password", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive() {
		logger.CtxWarn(ctx, "login rejected: user suspended", "user_id", user.ID)
		return nil, apperrors.ErrUserSuspended
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID, "role", user.Role)
	return &dto.LoginResponse{AccessToken: token}, nil
}
