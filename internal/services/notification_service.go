package services

import (
	"encoding/json"
	"errors"

	"freelance_backend/internal/logger"
	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/services/dto"
	"freelance_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// notificationListLimit: размер окна, которое видит клиент
const notificationListLimit = 50

type NotificationService interface {
	List(db *gorm.DB, userID string) (*dto.NotificationListResponse, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) error
	UnreadCount(db *gorm.DB, userID string) (int64, error)
	Create(db *gorm.DB, req *dto.CreateNotificationRequest) (*models.Notification, error)
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// ---------------- Read state ----------------

func (s *NotificationServiceImpl) List(db *gorm.DB, userID string) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.FindLatestByUser(db, userID, notificationListLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	counts := countWindowUnread(notifications)
	return &dto.NotificationListResponse{
		Notifications:       notifications,
		UnreadCount:         counts.Total,
		ChatUnreadCount:     counts.Chat,
		ProposalUnreadCount: counts.Proposal,
	}, nil
}

func (s *NotificationServiceImpl) MarkAsRead(db *gorm.DB, userID, notificationID string) error {
	// Сначала проверяем владельца: чужое и несуществующее неотличимы
	if _, err := s.notificationRepo.FindByIDForUser(db, notificationID, userID); err != nil {
		return handleNotificationError(err)
	}

	changed, err := s.notificationRepo.MarkAsRead(db, notificationID, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if changed {
		logger.CtxDebug(db.Statement.Context, "notification marked as read", "notification_id", notificationID)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllAsRead(db *gorm.DB, userID string) error {
	updated, err := s.notificationRepo.MarkAllAsRead(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxDebug(db.Statement.Context, "notifications marked as read", "updated", updated)
	return nil
}

func (s *NotificationServiceImpl) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// ---------------- Delivery ----------------

func (s *NotificationServiceImpl) Create(db *gorm.DB, req *dto.CreateNotificationRequest) (*models.Notification, error) {
	if _, err := s.userRepo.FindByID(db, req.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	notification := &models.Notification{
		UserID:  req.UserID,
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
	}
	if len(req.Data) > 0 {
		data, err := json.Marshal(req.Data)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		notification.Data = datatypes.JSON(data)
	}

	if err := s.notificationRepo.Create(db, notification); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(db.Statement.Context, "notification created",
		"notification_id", notification.ID,
		"recipient_id", notification.UserID,
		"type", notification.Type,
	)
	return notification, nil
}

// ---------------- Aggregation ----------------

// UnreadCounts: счётчики непрочитанных по окну уведомлений
type UnreadCounts struct {
	Total    int
	Chat     int
	Proposal int
}

// countWindowUnread считает непрочитанные в уже загруженном окне.
// Типы кроме chat и proposal попадают только в Total.
func countWindowUnread(notifications []models.Notification) UnreadCounts {
	var counts UnreadCounts
	for i := range notifications {
		if notifications[i].IsRead {
			continue
		}
		counts.Total++
		switch notifications[i].Type {
		case models.NotificationTypeChat:
			counts.Chat++
		case models.NotificationTypeProposal:
			counts.Proposal++
		}
	}
	return counts
}

func handleNotificationError(err error) error {
	if errors.Is(err, repositories.ErrNotificationNotFound) {
		return apperrors.ErrNotificationNotFound
	}
	return apperrors.InternalError(err)
}
