package config

import (
	"fmt"

	"campuspool/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(config *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.PostgresHost,
		config.PostgresPort,
		config.PostgresUser,
		config.PostgresPassword,
		config.PostgresDB,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to start connection with database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run the auto migrate process: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Ride{},
		&models.RideRequest{},
		&models.Rating{},
		&models.ChatMessage{},
		&models.SOSEvent{},
		&models.SafeCompletion{},
		&models.Report{},
		&models.AuditLog{},
		&models.EventTag{},
	)
}
