package services

import (
	"time"

	"freelance_backend/internal/auth"
	"freelance_backend/internal/metadata"
	"freelance_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	NotificationService NotificationService
	ProfileService      ProfileService
	AssignmentService   AssignmentService
	MetadataService     MetadataService
}

// Repositories: набор stateless-репозиториев; db передаётся в каждый вызов
type Repositories struct {
	Users         repositories.UserRepository
	Projects      repositories.ProjectRepository
	Notifications repositories.NotificationRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Users:         repositories.NewUserRepository(),
		Projects:      repositories.NewProjectRepository(),
		Notifications: repositories.NewNotificationRepository(),
	}
}

// MetadataDeps: внешние зависимости скрейпера; Cache может быть nil
type MetadataDeps struct {
	Scraper  metadata.Scraper
	Cache    metadata.Cache
	CacheTTL time.Duration
}

func NewServiceContainer(repos *Repositories, tokenManager *auth.TokenManager, meta MetadataDeps) *ServiceContainer {
	return &ServiceContainer{
		AuthService:         NewAuthService(repos.Users, tokenManager),
		NotificationService: NewNotificationService(repos.Notifications, repos.Users),
		ProfileService:      NewProfileService(repos.Users),
		AssignmentService:   NewAssignmentService(repos.Projects, repos.Users),
		MetadataService:     NewMetadataService(meta.Scraper, meta.Cache, meta.CacheTTL),
	}
}
