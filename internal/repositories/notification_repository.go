package repositories

import (
	"errors"
	"time"

	"freelance_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindByIDForUser(db *gorm.DB, id, userID string) (*models.Notification, error)
	FindLatestByUser(db *gorm.DB, userID string, limit int) ([]models.Notification, error)
	// MarkAsRead возвращает true, если запись действительно поменялась
	MarkAsRead(db *gorm.DB, id, userID string) (bool, error)
	MarkAllAsRead(db *gorm.DB, userID string) (int64, error)
	CountUnread(db *gorm.DB, userID string) (int64, error)
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByIDForUser(db *gorm.DB, id, userID string) (*models.Notification, error) {
	var notification models.Notification
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindLatestByUser(db *gorm.DB, userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkAsRead трогает только непрочитанные записи: is_read никогда не сбрасывается обратно.
func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, id, userID string) (bool, error) {
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
