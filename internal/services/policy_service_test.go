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

func newPolicyService(db *gorm.DB) *PolicyService {
	users := repositories.NewUserRepositoryGORM(db)
	return NewPolicyService(repositories.NewPolicyRepository(db), NewNotificationService(db, users, nil))
}

func createTestPolicy(t *testing.T, db *gorm.DB, number string) *models.Policy {
	t.Helper()

	policy := models.Policy{
		PolicyNumber:  number,
		Title:         "Use of Force",
		PolicyURL:     "https://storage.example/policies/" + number + ".pdf",
		EffectiveDate: time.Now().AddDate(0, -1, 0),
	}
	if err := db.Create(&policy).Error; err != nil {
		t.Fatalf("Failed to create policy: %v", err)
	}
	return &policy
}

func TestPolicyService_AcknowledgeAndIsCompleted(t *testing.T) {
	db := setupTestDB(t)
	service := newPolicyService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "member@pd.test", "Mel Member", constants.RoleMember, constants.PositionReserve)
	policy := createTestPolicy(t, db, "P-100")

	done, err := service.IsCompleted(ctx, policy.ID, user.ID)
	if err != nil {
		t.Fatalf("IsCompleted failed: %v", err)
	}
	if done {
		t.Error("Expected not completed before acknowledge")
	}

	if _, err := service.Acknowledge(ctx, policy.ID, user.ID); err != nil {
		t.Fatalf("Acknowledge failed: %v", err)
	}

	done, err = service.IsCompleted(ctx, policy.ID, user.ID)
	if err != nil {
		t.Fatalf("IsCompleted failed: %v", err)
	}
	if !done {
		t.Error("Expected completed after acknowledge")
	}
}

func TestPolicyService_DuplicateAcknowledgeRejected(t *testing.T) {
	db := setupTestDB(t)
	service := newPolicyService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "member@pd.test", "Mel Member", constants.RoleMember, constants.PositionReserve)
	policy := createTestPolicy(t, db, "P-101")

	if _, err := service.Acknowledge(ctx, policy.ID, user.ID); err != nil {
		t.Fatalf("Acknowledge failed: %v", err)
	}
	if _, err := service.Acknowledge(ctx, policy.ID, user.ID); err == nil {
		t.Error("Expected error for duplicate acknowledge")
	}

	var count int64
	db.Model(&models.PolicyCompletion{}).
		Where("policy_id = ? AND user_id = ?", policy.ID, user.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly 1 completion row, got %d", count)
	}
}

func TestPolicyService_ResetCompletionScope(t *testing.T) {
	db := setupTestDB(t)
	service := newPolicyService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@pd.test", "Alice", constants.RoleMember, constants.PositionReserve)
	bob := createTestUser(t, db, "bob@pd.test", "Bob", constants.RoleMember, constants.PositionReserve)
	target := createTestPolicy(t, db, "P-200")
	other := createTestPolicy(t, db, "P-201")

	for _, pair := range []struct{ policyID, userID string }{
		{target.ID, alice.ID},
		{target.ID, bob.ID},
		{other.ID, alice.ID},
	} {
		if _, err := service.Acknowledge(ctx, pair.policyID, pair.userID); err != nil {
			t.Fatalf("Acknowledge failed: %v", err)
		}
	}

	// Single-user reset only touches that user's row
	if err := service.ResetCompletion(ctx, target.ID, &bob.ID); err != nil {
		t.Fatalf("ResetCompletion failed: %v", err)
	}

	var count int64
	db.Model(&models.PolicyCompletion{}).Where("policy_id = ?", target.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 completion left on target policy, got %d", count)
	}

	// Bulk reset clears the policy for everyone but leaves other policies alone
	if _, err := service.Acknowledge(ctx, target.ID, bob.ID); err != nil {
		t.Fatalf("Re-acknowledge failed: %v", err)
	}
	if err := service.ResetCompletion(ctx, target.ID, nil); err != nil {
		t.Fatalf("Bulk ResetCompletion failed: %v", err)
	}

	db.Model(&models.PolicyCompletion{}).Where("policy_id = ?", target.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected 0 completions on target policy after bulk reset, got %d", count)
	}

	db.Model(&models.PolicyCompletion{}).Where("policy_id = ?", other.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected other policy untouched, got %d completions", count)
	}
}

func TestPolicyService_CompletionMatrix(t *testing.T) {
	db := setupTestDB(t)
	service := newPolicyService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@pd.test", "Alice", constants.RoleMember, constants.PositionReserve)
	bob := createTestUser(t, db, "bob@pd.test", "Bob", constants.RoleMember, constants.PositionReserve)
	policy := createTestPolicy(t, db, "P-300")

	if _, err := service.Acknowledge(ctx, policy.ID, alice.ID); err != nil {
		t.Fatalf("Acknowledge failed: %v", err)
	}

	var users []models.User
	if err := db.Order("name ASC").Find(&users).Error; err != nil {
		t.Fatalf("Failed to list users: %v", err)
	}

	matrix, err := service.CompletionMatrix(ctx, policy.ID, users)
	if err != nil {
		t.Fatalf("CompletionMatrix failed: %v", err)
	}
	if len(matrix) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(matrix))
	}

	byID := make(map[string]bool, len(matrix))
	for _, e := range matrix {
		byID[e.UserID] = e.Completed
	}
	if !byID[alice.ID] {
		t.Error("Expected Alice marked completed")
	}
	if byID[bob.ID] {
		t.Error("Expected Bob not completed")
	}
}
