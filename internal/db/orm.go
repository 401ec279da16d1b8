package db

import (
	"fmt"

	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var PgDB *gorm.DB

// InitPostgresORM opens the GORM connection all repositories run through.
func InitPostgresORM() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(postgresDSN()), &gorm.Config{
		TranslateError: true,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	return db, nil
}

// Migrate creates/updates the schema, including the composite unique indexes
// that back the duplicate-pair precondition checks.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Equipment{},
		&models.AssignedEquipment{},
		&models.Event{},
		&models.EventAssignment{},
		&models.Training{},
		&models.TrainingAssignment{},
		&models.Policy{},
		&models.PolicyCompletion{},
		&models.Notification{},
		&models.NotificationRecipient{},
	)
}
