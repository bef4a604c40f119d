package apperrors

import "net/http"

// --- Auth ---

var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)
	ErrUserSuspended      = New(CodeUserSuspended, "auth", "User account suspended", http.StatusForbidden)
)

// --- Users ---

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

// --- Notifications ---

// ErrNotificationNotFound возвращается и для чужих уведомлений:
// наличие чужой записи не раскрывается.
var ErrNotificationNotFound = New(CodeNotFound, "notification", "Notification not found", http.StatusNotFound)

// --- Metadata ---

var (
	ErrMetadataURLRequired = New(CodeValidationFailed, "metadata", "URL is required", http.StatusBadRequest)
	ErrMetadataURLInvalid  = New(CodeValidationFailed, "metadata", "URL must be an absolute http(s) URL", http.StatusBadRequest)
)
