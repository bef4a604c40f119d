package dto

import "freelance_backend/internal/metadata"

// MetadataResponse: ответ GET /metadata; при мягкой ошибке Data пустой, Error заполнен
type MetadataResponse struct {
	Success bool               `json:"success"`
	Data    *metadata.Metadata `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
}
