package repositories

import (
	"testing"
	"time"

	"freelance_backend/internal/models"
	"freelance_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_FindLatestByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewNotificationRepository()
	owner := testutil.CreateUser(t, db, "owner@test.com", "password123", models.UserRoleFreelancer)
	other := testutil.CreateUser(t, db, "other@test.com", "password123", models.UserRoleFreelancer)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		testutil.CreateNotification(t, db, owner.ID, models.NotificationTypeChat, base.Add(time.Duration(i)*time.Minute))
	}
	testutil.CreateNotification(t, db, other.ID, models.NotificationTypeChat, base.Add(time.Hour))

	got, err := repo.FindLatestByUser(db, owner.ID, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].CreatedAt.After(got[i].CreatedAt), "expected newest first")
	}
	for _, n := range got {
		assert.Equal(t, owner.ID, n.UserID)
	}
}

func TestNotificationRepository_MarkAsReadOnlyOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewNotificationRepository()
	user := testutil.CreateUser(t, db, "u@test.com", "password123", models.UserRoleClient)
	n := testutil.CreateNotification(t, db, user.ID, models.NotificationTypeProposal, time.Now().UTC())

	changed, err := repo.MarkAsRead(db, n.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkAsRead(db, n.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, changed, "second call must be a no-op")

	stored, err := repo.FindByIDForUser(db, n.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
	assert.NotNil(t, stored.ReadAt)
}

func TestNotificationRepository_FindByIDForUserScopesOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewNotificationRepository()
	owner := testutil.CreateUser(t, db, "owner@test.com", "password123", models.UserRoleClient)
	stranger := testutil.CreateUser(t, db, "stranger@test.com", "password123", models.UserRoleClient)
	n := testutil.CreateNotification(t, db, owner.ID, models.NotificationTypeChat, time.Now().UTC())

	_, err := repo.FindByIDForUser(db, n.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	_, err = repo.FindByIDForUser(db, "missing", owner.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestNotificationRepository_MarkAllAsReadAndCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewNotificationRepository()
	user := testutil.CreateUser(t, db, "u@test.com", "password123", models.UserRoleClient)
	other := testutil.CreateUser(t, db, "o@test.com", "password123", models.UserRoleClient)
	now := time.Now().UTC()
	for i := 0; i < 4; i++ {
		testutil.CreateNotification(t, db, user.ID, models.NotificationTypeChat, now.Add(time.Duration(i)*time.Second))
	}
	testutil.CreateNotification(t, db, other.ID, models.NotificationTypeChat, now)

	count, err := repo.CountUnread(db, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)

	affected, err := repo.MarkAllAsRead(db, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, affected)

	count, err = repo.CountUnread(db, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.CountUnread(db, other.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "other users are untouched")
}
