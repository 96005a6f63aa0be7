package db

import (
	"fmt"

	"github.com/pipelinecrm/crm-server/internal/infrastructure/db/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects gorm to Postgres. Unique violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return gdb, nil
}

// Migrate creates or updates every table the server uses.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("create uuid extension: %w", err)
	}
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Company{},
		&models.Contact{},
		&models.Article{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
