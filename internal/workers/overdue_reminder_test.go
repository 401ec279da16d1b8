package workers

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"blueline/reservehub/internal/common"
	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/db/repositories"
	models "blueline/reservehub/internal/models/gorm"
	"blueline/reservehub/internal/services"
)

func setupWorkerDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Equipment{},
		&models.AssignedEquipment{},
		&models.Notification{},
		&models.NotificationRecipient{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func seedOverdueAssignment(t *testing.T, db *gorm.DB, holderID string, dueDaysAgo int) *models.AssignedEquipment {
	t.Helper()

	item := models.Equipment{Name: "Radio", SerialNumber: "SN-" + holderID + "-1"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create equipment: %v", err)
	}

	due := time.Now().AddDate(0, 0, -dueDaysAgo)
	assignment := models.AssignedEquipment{
		EquipmentID:        item.ID,
		UserID:             holderID,
		Condition:          constants.ConditionGood,
		CheckedOutAt:       time.Now().AddDate(0, 0, -dueDaysAgo-7),
		ExpectedReturnDate: &due,
	}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("Failed to create assignment: %v", err)
	}
	return &assignment
}

func TestOverdueReminderWorker_NotifiesHolderAndAdmins(t *testing.T) {
	db := setupWorkerDB(t)
	users := repositories.NewUserRepositoryGORM(db)
	notifier := services.NewNotificationService(db, users, nil)
	cache := common.NewCacheService(60, 600)

	holder := models.User{Email: "holder@example.com", Name: "Holder", Role: constants.RoleMember, Position: constants.PositionReserve, Status: constants.UserActive}
	admin := models.User{Email: "admin@example.com", Name: "Admin", Role: constants.RoleAdmin, Position: constants.PositionStaff, Status: constants.UserActive}
	if err := db.Create(&holder).Error; err != nil {
		t.Fatalf("Failed to create holder: %v", err)
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}

	seedOverdueAssignment(t, db, holder.ID, 3)

	w := NewOverdueReminderWorker(db, notifier, cache, nil, time.Hour)
	if err := w.scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	var holderCount int64
	db.Model(&models.NotificationRecipient{}).Where("user_id = ?", holder.ID).Count(&holderCount)
	if holderCount != 1 {
		t.Errorf("Expected 1 reminder for holder, got %d", holderCount)
	}

	var adminCount int64
	db.Model(&models.NotificationRecipient{}).Where("user_id = ?", admin.ID).Count(&adminCount)
	if adminCount != 1 {
		t.Errorf("Expected 1 reminder for admin, got %d", adminCount)
	}
}

func TestOverdueReminderWorker_DedupesWithinWindow(t *testing.T) {
	db := setupWorkerDB(t)
	users := repositories.NewUserRepositoryGORM(db)
	notifier := services.NewNotificationService(db, users, nil)
	cache := common.NewCacheService(60, 600)

	holder := models.User{Email: "holder2@example.com", Name: "Holder", Role: constants.RoleMember, Position: constants.PositionReserve, Status: constants.UserActive}
	if err := db.Create(&holder).Error; err != nil {
		t.Fatalf("Failed to create holder: %v", err)
	}

	seedOverdueAssignment(t, db, holder.ID, 2)

	w := NewOverdueReminderWorker(db, notifier, cache, nil, time.Hour)
	ctx := context.Background()

	if err := w.scan(ctx); err != nil {
		t.Fatalf("First scan failed: %v", err)
	}
	if err := w.scan(ctx); err != nil {
		t.Fatalf("Second scan failed: %v", err)
	}

	var count int64
	db.Model(&models.NotificationRecipient{}).Where("user_id = ?", holder.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected dedupe to keep reminders at 1, got %d", count)
	}
}

func TestOverdueReminderWorker_SkipsReturnedAndFutureDue(t *testing.T) {
	db := setupWorkerDB(t)
	users := repositories.NewUserRepositoryGORM(db)
	notifier := services.NewNotificationService(db, users, nil)
	cache := common.NewCacheService(60, 600)

	holder := models.User{Email: "holder3@example.com", Name: "Holder", Role: constants.RoleMember, Position: constants.PositionReserve, Status: constants.UserActive}
	if err := db.Create(&holder).Error; err != nil {
		t.Fatalf("Failed to create holder: %v", err)
	}

	// Returned assignment, past due date
	returned := seedOverdueAssignment(t, db, holder.ID, 5)
	now := time.Now()
	if err := db.Model(returned).Update("checked_in_at", &now).Error; err != nil {
		t.Fatalf("Failed to mark returned: %v", err)
	}

	// Active assignment, due next week
	item := models.Equipment{Name: "Vest", SerialNumber: "SN-vest-1"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create equipment: %v", err)
	}
	future := time.Now().AddDate(0, 0, 7)
	active := models.AssignedEquipment{
		EquipmentID:        item.ID,
		UserID:             holder.ID,
		Condition:          constants.ConditionGood,
		CheckedOutAt:       time.Now(),
		ExpectedReturnDate: &future,
	}
	if err := db.Create(&active).Error; err != nil {
		t.Fatalf("Failed to create assignment: %v", err)
	}

	w := NewOverdueReminderWorker(db, notifier, cache, nil, time.Hour)
	if err := w.scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	var count int64
	db.Model(&models.NotificationRecipient{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no reminders, got %d", count)
	}
}
