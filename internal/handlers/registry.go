package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	NotificationHandler *NotificationHandler
	MetadataHandler     *MetadataHandler
}
