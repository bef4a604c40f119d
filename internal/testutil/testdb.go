// Package testutil содержит общие хелперы для тестов пакетов.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"freelance_backend/internal/auth"
	"freelance_backend/internal/database"
	"freelance_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB поднимает отдельную in-memory SQLite базу на каждый тест
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// уникальное имя, чтобы параллельные тесты не делили shared cache
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open("sqlite", dsn, false)
	require.NoError(t, err, "Не удалось открыть тестовую БД")

	// in-memory база живёт, пока открыто хотя бы одно соединение
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

// CreateUser создает пользователя; пароль передается в открытом виде и хешируется
func CreateUser(t *testing.T, db *gorm.DB, email, password string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error, "Не удалось создать пользователя %s", email)
	return user
}

// CreateNotification симулирует внешний источник событий
func CreateNotification(t *testing.T, db *gorm.DB, userID string, typ models.NotificationType, createdAt time.Time) *models.Notification {
	t.Helper()

	n := &models.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   fmt.Sprintf("%s event", typ),
		Message: "test",
	}
	n.CreatedAt = createdAt
	require.NoError(t, db.Create(n).Error)
	return n
}

// CreateProject создает проект без менеджера
func CreateProject(t *testing.T, db *gorm.DB, ownerID, title string) *models.Project {
	t.Helper()

	p := &models.Project{Title: title, OwnerID: ownerID}
	require.NoError(t, db.Create(p).Error)
	return p
}
