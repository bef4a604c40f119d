package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string           `gorm:"size:36;not null;index:idx_notifications_user_read" json:"userId"`
	Type    NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `json:"message"`
	Data    datatypes.JSON   `json:"data,omitempty"` // {"project_id": "...", "dialog_id": "..."}
	IsRead  bool             `gorm:"not null;default:false;index:idx_notifications_user_read" json:"isRead"`
	ReadAt  *time.Time       `json:"readAt,omitempty"`
}
