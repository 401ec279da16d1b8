package services

import (
	"context"
	"testing"
	"time"

	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/db/repositories"
	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/gorm"
)

func newTrainingService(db *gorm.DB, enforceCapacity bool) *TrainingService {
	users := repositories.NewUserRepositoryGORM(db)
	return NewTrainingService(repositories.NewTrainingRepository(db), users, NewNotificationService(db, users, nil), nil, enforceCapacity)
}

func createTestTraining(t *testing.T, db *gorm.DB, title string) *models.Training {
	t.Helper()

	training := models.Training{
		Title:    title,
		StartsAt: time.Now().Add(72 * time.Hour),
		EndsAt:   time.Now().Add(76 * time.Hour),
		Type:     constants.TrainingFirearms,
	}
	if err := db.Create(&training).Error; err != nil {
		t.Fatalf("Failed to create training: %v", err)
	}
	return &training
}

func TestTrainingService_SignUpAndCompletion(t *testing.T) {
	db := setupTestDB(t)
	service := newTrainingService(db, false)
	ctx := context.Background()

	user := createTestUser(t, db, "member@pd.test", "Mel Member", constants.RoleMember, constants.PositionReserve)
	training := createTestTraining(t, db, "Range Qualification")

	assignment, err := service.SignUp(ctx, training.ID, user.ID)
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if assignment.CompletionStatus != nil {
		t.Error("Expected completion status nil until the session has passed")
	}

	updated, err := service.UpdateCompletion(ctx, training.ID, user.ID, constants.CompletionCompleted, "passed with 92")
	if err != nil {
		t.Fatalf("UpdateCompletion failed: %v", err)
	}
	if updated.CompletionStatus == nil || *updated.CompletionStatus != constants.CompletionCompleted {
		t.Error("Expected completion status completed")
	}
	if updated.CompletionNotes != "passed with 92" {
		t.Errorf("Expected completion notes set, got %q", updated.CompletionNotes)
	}

	// Any status may transition to any other
	reverted, err := service.UpdateCompletion(ctx, training.ID, user.ID, constants.CompletionExcused, "family emergency")
	if err != nil {
		t.Fatalf("Second UpdateCompletion failed: %v", err)
	}
	if *reverted.CompletionStatus != constants.CompletionExcused {
		t.Error("Expected status transition to excused")
	}
}

func TestTrainingService_UpdateCompletionRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	service := newTrainingService(db, false)
	ctx := context.Background()

	user := createTestUser(t, db, "member@pd.test", "Mel Member", constants.RoleMember, constants.PositionReserve)
	training := createTestTraining(t, db, "First Aid Refresher")

	if _, err := service.SignUp(ctx, training.ID, user.ID); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	if _, err := service.UpdateCompletion(ctx, training.ID, user.ID, constants.CompletionStatus("attended"), ""); err == nil {
		t.Error("Expected error for unknown completion status")
	}
}

func TestTrainingService_DuplicateSignUpRejected(t *testing.T) {
	db := setupTestDB(t)
	service := newTrainingService(db, false)
	ctx := context.Background()

	user := createTestUser(t, db, "member@pd.test", "Mel Member", constants.RoleMember, constants.PositionReserve)
	training := createTestTraining(t, db, "Defensive Tactics")

	if _, err := service.SignUp(ctx, training.ID, user.ID); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if _, err := service.SignUp(ctx, training.ID, user.ID); err == nil {
		t.Error("Expected error for duplicate sign-up")
	}

	var count int64
	db.Model(&models.TrainingAssignment{}).
		Where("training_id = ? AND user_id = ?", training.ID, user.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly 1 sign-up row, got %d", count)
	}
}

func TestTrainingService_LeaveMissingIsNonFatal(t *testing.T) {
	db := setupTestDB(t)
	service := newTrainingService(db, false)

	user := createTestUser(t, db, "member@pd.test", "Mel Member", constants.RoleMember, constants.PositionReserve)
	training := createTestTraining(t, db, "Range Qualification")

	left, err := service.Leave(context.Background(), training.ID, user.ID)
	if err != nil {
		t.Fatalf("Expected no error for missing sign-up, got %v", err)
	}
	if left != nil {
		t.Error("Expected nil assignment for missing sign-up")
	}
}
