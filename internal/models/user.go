package models

import "gorm.io/datatypes"

type User struct {
	BaseModel
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null;index" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	// Bio хранится как JSON; читать только через DecodeBio
	Bio datatypes.JSON `json:"-"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
