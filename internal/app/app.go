package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"freelance_backend/internal/auth"
	"freelance_backend/internal/config"
	"freelance_backend/internal/database"
	"freelance_backend/internal/handlers"
	"freelance_backend/internal/logger"
	"freelance_backend/internal/metadata"
	"freelance_backend/internal/middleware"
	"freelance_backend/internal/models"
	"freelance_backend/internal/routes"
	"freelance_backend/internal/services"
	"freelance_backend/internal/validator"
	"freelance_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(!cfg.IsProduction())

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, !cfg.IsProduction())
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	defer database.Close(gormDB)
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// без админа сервер не запускаем
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = metadata.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			// кэш необязателен: работаем без него
			logger.Warn("Redis unavailable, metadata cache disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			logger.Info("Redis connected, metadata cache enabled")
		}
	}

	ginRouter := SetupRouter(cfg, gormDB, redisClient)

	if err := serve(ctx, cfg.Address(), ginRouter); err != nil {
		logger.Fatal("Server error", "error", err)
	}
	logger.Info("Server stopped")
}

// serve работает до отмены ctx, затем корректно останавливает сервер
func serve(ctx context.Context, address string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// SetupRouter собирает сервисы, хэндлеры и маршруты. redisClient может быть nil.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client) *gin.Engine {
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	repos := services.NewRepositories()

	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg, repos, tokenManager, redisClient)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer, repos, tokenManager)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(gormDB, cfg.CORS.AllowedOrigins)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, repos *services.Repositories, tokenManager *auth.TokenManager, redisClient *redis.Client) *services.ServiceContainer {
	metaDeps := services.MetadataDeps{
		Scraper:  metadata.NewFetcher(cfg.Metadata.Timeout, cfg.Metadata.UserAgent),
		CacheTTL: cfg.Metadata.CacheTTL,
	}
	if redisClient != nil {
		metaDeps.Cache = metadata.NewRedisCache(redisClient)
	}

	return services.NewServiceContainer(repos, tokenManager, metaDeps)
}

func initializeHandlers(container *services.ServiceContainer, repos *services.Repositories, tokenManager *auth.TokenManager) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, tokenManager, repos.Users)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, container.ProfileService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
		MetadataHandler:     handlers.NewMetadataHandler(baseHandler, container.MetadataService),
	}
}

func initializeGinRouter(db *gorm.DB, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.FirstAdminEmail))
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}
	if err := auth.ValidatePassword(adminPassword); err != nil {
		return fmt.Errorf("invalid FIRST_ADMIN_PASSWORD: %w", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("✅ Successfully created first admin user", "email", adminEmail)
	return tx.Commit().Error
}
