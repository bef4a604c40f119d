package middleware

import (
	"errors"
	"strings"

	"freelance_backend/internal/auth"
	"freelance_backend/internal/logger"
	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"
	"freelance_backend/pkg/apperrors"
	"freelance_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware - middleware проверки JWT
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "token rejected", "error", err.Error())
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		// Сохраняем claims в контекст
		c.Set(string(contextkeys.UserIDKey), claims.UserID)
		c.Set(string(contextkeys.RoleKey), claims.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// ActiveUserMiddleware перечитывает владельца токена из БД.
// Удалённый пользователь получает 401, заблокированный 403; роль в контексте берётся из БД.
// Ставится после DBMiddleware и AuthMiddleware.
func ActiveUserMiddleware(users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get(string(contextkeys.DBContextKey))
		db, ok := v.(*gorm.DB)
		if !ok || db == nil {
			apperrors.HandleError(c, apperrors.InternalError(errors.New("database is not bound to the request")))
			return
		}

		user, err := users.FindByID(db, GetUserID(c))
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				apperrors.HandleError(c, apperrors.ErrInvalidToken)
				return
			}
			apperrors.HandleError(c, apperrors.InternalError(err))
			return
		}
		if user.Status != models.UserStatusActive {
			logger.CtxWarn(c.Request.Context(), "request from suspended user rejected", "user_id", user.ID)
			apperrors.HandleError(c, apperrors.ErrUserSuspended)
			return
		}

		c.Set(string(contextkeys.RoleKey), user.Role)
		c.Next()
	}
}

// RoleMiddleware - middleware ограничения по ролям; пропускает любую из перечисленных
func RoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, ok := c.Get(string(contextkeys.RoleKey))
		if !ok {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no role"))
			return
		}

		userRole, _ := role.(models.UserRole)
		if !allowed[userRole] {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: insufficient permissions"))
			return
		}

		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(string(contextkeys.UserIDKey))
}
