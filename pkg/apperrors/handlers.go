package apperrors

import (
	"freelance_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// debugMode выставляется из конфига при старте (SetDebug)
var debugMode = true

// SetDebug включает/выключает вывод деталей внутренних ошибок
func SetDebug(debug bool) {
	debugMode = debug
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxError(c.Request.Context(), "Server error", "error", err.Error(), "path", c.Request.URL.Path)
		if !h.Debug {
			// В продакшене скрываем детали
			appErr = New(appErr.Code, appErr.Domain, "Internal server error", appErr.HTTPCode)
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugMode}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
