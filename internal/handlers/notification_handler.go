package handlers

import (
	"net/http"

	"freelance_backend/internal/middleware"
	"freelance_backend/internal/models"
	"freelance_backend/internal/services"
	"freelance_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	notifications.Use(h.RequireAuth()...)
	{
		notifications.GET("", h.GetNotifications)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.PATCH("/read-all", h.MarkAllAsRead)
		notifications.PATCH("/:id/read", h.MarkAsRead)
	}

	admin := r.Group("/admin/notifications")
	admin.Use(h.RequireAuth()...)
	admin.Use(middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("", h.CreateNotification)
	}
}

// GetNotifications godoc
// @Summary Последние уведомления пользователя
// @Description Не более 50 записей, новые первыми, плюс счётчики непрочитанных по этому окну
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	list, err := h.notificationService.List(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": list})
}

// GetUnreadCount godoc
// @Summary Общее число непрочитанных уведомлений
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.UnreadCountResponse{UnreadCount: count}})
}

// MarkAsRead godoc
// @Summary Отметить уведомление прочитанным
// @Description Повторный вызов ничего не меняет. Чужое уведомление даёт 404.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID уведомления"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// MarkAllAsRead godoc
// @Summary Отметить все уведомления прочитанными
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/notifications/read-all [patch]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// CreateNotification godoc
// @Summary Создать уведомление (админ)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNotificationRequest true "Уведомление"
// @Success 201 {object} models.Notification
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/admin/notifications [post]
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	notification, err := h.notificationService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, notification)
}
