package services

import (
	"testing"
	"time"

	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/services/dto"
	"freelance_backend/internal/testutil"
	"freelance_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationService() NotificationService {
	return NewNotificationService(repositories.NewNotificationRepository(), repositories.NewUserRepository())
}

func TestCountWindowUnread(t *testing.T) {
	notifications := []models.Notification{
		{Type: models.NotificationTypeChat},
		{Type: models.NotificationTypeChat, IsRead: true},
		{Type: models.NotificationTypeProposal},
		{Type: models.NotificationTypeProposal},
		{Type: models.NotificationTypeSystem},
		{Type: models.NotificationTypeProject, IsRead: true},
	}

	counts := countWindowUnread(notifications)

	assert.Equal(t, UnreadCounts{Total: 4, Chat: 1, Proposal: 2}, counts)
	assert.Equal(t, UnreadCounts{}, countWindowUnread(nil))
}

func TestNotificationService_ListCapsWindowAndCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newNotificationService()
	user := testutil.CreateUser(t, db, "list@test.com", "password123", models.UserRoleFreelancer)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// 5 старых непрочитанных chat выпадут из окна
	for i := 0; i < 5; i++ {
		testutil.CreateNotification(t, db, user.ID, models.NotificationTypeChat, base.Add(time.Duration(i)*time.Second))
	}
	for i := 0; i < notificationListLimit; i++ {
		typ := models.NotificationTypeProposal
		if i%2 == 0 {
			typ = models.NotificationTypeSystem
		}
		testutil.CreateNotification(t, db, user.ID, typ, base.Add(time.Hour+time.Duration(i)*time.Second))
	}

	resp, err := svc.List(db, user.ID)
	require.NoError(t, err)

	require.Len(t, resp.Notifications, notificationListLimit)
	for i := 1; i < len(resp.Notifications); i++ {
		assert.False(t, resp.Notifications[i].CreatedAt.After(resp.Notifications[i-1].CreatedAt), "expected newest first")
	}
	assert.Equal(t, notificationListLimit, resp.UnreadCount)
	assert.Equal(t, 0, resp.ChatUnreadCount, "old chat notifications are outside the window")
	assert.Equal(t, notificationListLimit/2, resp.ProposalUnreadCount)
}

func TestNotificationService_ListEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newNotificationService()
	user := testutil.CreateUser(t, db, "empty@test.com", "password123", models.UserRoleClient)

	resp, err := svc.List(db, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, resp.Notifications)
	assert.Empty(t, resp.Notifications)
	assert.Zero(t, resp.UnreadCount)
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newNotificationService()
	owner := testutil.CreateUser(t, db, "owner@test.com", "password123", models.UserRoleFreelancer)
	stranger := testutil.CreateUser(t, db, "stranger@test.com", "password123", models.UserRoleFreelancer)
	n := testutil.CreateNotification(t, db, owner.ID, models.NotificationTypeChat, time.Now().UTC())

	t.Run("чужое уведомление не найдено и не меняется", func(t *testing.T) {
		err := svc.MarkAsRead(db, stranger.ID, n.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)

		var stored models.Notification
		require.NoError(t, db.First(&stored, "id = ?", n.ID).Error)
		assert.False(t, stored.IsRead)
		assert.Nil(t, stored.ReadAt)
	})

	t.Run("несуществующее уведомление", func(t *testing.T) {
		err := svc.MarkAsRead(db, owner.ID, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
	})

	t.Run("повторный вызов ничего не меняет", func(t *testing.T) {
		require.NoError(t, svc.MarkAsRead(db, owner.ID, n.ID))

		var first models.Notification
		require.NoError(t, db.First(&first, "id = ?", n.ID).Error)
		require.True(t, first.IsRead)
		require.NotNil(t, first.ReadAt)

		require.NoError(t, svc.MarkAsRead(db, owner.ID, n.ID))

		var second models.Notification
		require.NoError(t, db.First(&second, "id = ?", n.ID).Error)
		assert.True(t, second.IsRead)
		require.NotNil(t, second.ReadAt)
		assert.True(t, first.ReadAt.Equal(*second.ReadAt), "read_at must not move on repeated calls")
	})
}

func TestNotificationService_MarkAllAsRead(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newNotificationService()
	user := testutil.CreateUser(t, db, "all@test.com", "password123", models.UserRoleFreelancer)
	other := testutil.CreateUser(t, db, "other@test.com", "password123", models.UserRoleFreelancer)

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		testutil.CreateNotification(t, db, user.ID, models.NotificationTypeProposal, now.Add(time.Duration(i)*time.Second))
	}
	testutil.CreateNotification(t, db, other.ID, models.NotificationTypeChat, now)

	require.NoError(t, svc.MarkAllAsRead(db, user.ID))

	count, err := svc.UnreadCount(db, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	otherCount, err := svc.UnreadCount(db, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherCount, "other users are untouched")

	// пустой набор тоже не ошибка
	require.NoError(t, svc.MarkAllAsRead(db, user.ID))
}

func TestNotificationService_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newNotificationService()
	user := testutil.CreateUser(t, db, "create@test.com", "password123", models.UserRoleClient)

	n, err := svc.Create(db, &dto.CreateNotificationRequest{
		UserID: user.ID,
		Type:   models.NotificationTypeProject,
		Title:  "Project updated",
		Data:   map[string]interface{}{"project_id": "p-1"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.IsRead)
	assert.JSONEq(t, `{"project_id":"p-1"}`, string(n.Data))

	_, err = svc.Create(db, &dto.CreateNotificationRequest{
		UserID: "missing",
		Type:   models.NotificationTypeSystem,
		Title:  "Hello",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
