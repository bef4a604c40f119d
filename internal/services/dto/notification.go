package dto

import "freelance_backend/internal/models"

// ---------------- Requests ----------------

type CreateNotificationRequest struct {
	UserID  string                  `json:"userId" validate:"required,max=36"`
	Type    models.NotificationType `json:"type" validate:"required,is-notification-type"`
	Title   string                  `json:"title" validate:"required,max=200"`
	Message string                  `json:"message" validate:"omitempty,max=2000"`
	Data    map[string]interface{}  `json:"data"`
}

// ---------------- Responses ----------------

// NotificationListResponse: окно последних уведомлений и счётчики по нему
type NotificationListResponse struct {
	Notifications       []models.Notification `json:"notifications"`
	UnreadCount         int                   `json:"unreadCount"`
	ChatUnreadCount     int                   `json:"chatUnreadCount"`
	ProposalUnreadCount int                   `json:"proposalUnreadCount"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}
