package services

import (
	"testing"

	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/db/repositories"
	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate
	err = db.AutoMigrate(
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
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func newTestNotifier(db *gorm.DB) *NotificationService {
	return NewNotificationService(db, repositories.NewUserRepositoryGORM(db), nil)
}

func createTestUser(t *testing.T, db *gorm.DB, email, name string, role constants.Role, position constants.Position) *models.User {
	t.Helper()

	user := models.User{
		Email:    email,
		Name:     name,
		Role:     role,
		Position: position,
		Status:   constants.UserActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

func createTestEquipment(t *testing.T, db *gorm.DB, name, serial string) *models.Equipment {
	t.Helper()

	item := models.Equipment{
		Name:         name,
		SerialNumber: serial,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create equipment: %v", err)
	}
	return &item
}
