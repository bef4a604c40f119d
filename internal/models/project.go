package models

type Project struct {
	BaseModel
	Title   string `gorm:"not null" json:"title"`
	OwnerID string `gorm:"size:36;not null;index" json:"ownerId"`

	// nil: проект ещё не закреплён за менеджером
	ManagerID *string `gorm:"size:36;index" json:"managerId"`
}
