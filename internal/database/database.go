package database

import (
	"fmt"

	"freelance_backend/internal/logger"
	"freelance_backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open подключается к БД выбранным драйвером и проверяет соединение
func Open(driver, dsn string, verbose bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	logLevel := gormlogger.Warn
	if verbose {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}

	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logger.Info("AutoMigrate completed")
	return nil
}

// Close закрывает пул соединений; ошибки только логируются
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to get *sql.DB on close", "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("failed to close database", "error", err)
	}
}
