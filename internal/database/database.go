package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/globalreach/crm-api/internal/config"
	"github.com/globalreach/crm-api/internal/logger"
	"github.com/globalreach/crm-api/internal/models"
)

var DB *gorm.DB

// Connect opens the postgres connection using the application logger
func Connect(cfg *config.Config, zapLogger *zap.Logger) error {
	gormLogger := logger.NewGormLogger(zapLogger, logger.MapGormLogLevel(cfg.Log.Level))

	var err error
	DB, err = gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	zapLogger.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)
	return nil
}

// Migrate creates or updates the schema for all models
func Migrate() error {
	err := DB.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.AppliedJob{},
		&models.SavedJob{},
		&models.ManagedCandidate{},
		&models.Task{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
