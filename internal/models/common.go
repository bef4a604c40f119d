package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel: общий набор полей для всех таблиц.
// ID генерируется на стороне приложения, чтобы не зависеть от uuid_generate_v4()
// (тесты гоняются на SQLite).
type BaseModel struct {
	ID        string    `gorm:"size:36;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate проставляет ID, если он не задан вызывающим кодом
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
