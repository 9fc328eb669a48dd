package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/models"
)

// Migrate brings the schema up to date through a short-lived gorm
// connection. The repositories stay on raw pgx; gorm is only the
// migration vehicle here.
func Migrate(databaseURL string) error {
	gormDB, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open gorm db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("get gorm sql db: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	if err := gormDB.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
