package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"launchpad-backend/internal/models"
)

// DB is the global database handle. It stays nil when no DSN is configured
// and the service runs without persistence.
var DB *gorm.DB

// InitDatabase opens the Postgres connection and migrates the schema
func InitDatabase(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("database DSN is empty")
	}

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.AutoMigrate(&models.SubmissionRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	DB = database
	log.Printf("✅ Database connected and migrated")
	return nil
}
