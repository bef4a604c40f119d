package dto

import "freelance_backend/internal/models"

type ProfileResponse struct {
	UserID string          `json:"userId"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	Bio    models.Bio      `json:"bio"`
}

// UpdateProfileRequest заменяет поля профиля в bio
type UpdateProfileRequest struct {
	Bio models.Bio `json:"bio"`
}

// NormalizeBiosReport: итог прогона normalize-bios
type NormalizeBiosReport struct {
	Scanned   int `json:"scanned"`
	Rewritten int `json:"rewritten"`
	Malformed int `json:"malformed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
