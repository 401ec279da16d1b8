package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"blueline/reservehub/internal/constants"
	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/gorm"
)

func TestEquipmentService_AssignAndReturnFlow(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db, newTestNotifier(db), nil)
	ctx := context.Background()

	user := createTestUser(t, db, "reserve@pd.test", "Pat Reserve", constants.RoleMember, constants.PositionReserve)
	item := createTestEquipment(t, db, "Radio 7", "RAD-007")

	assignment, err := service.Assign(ctx, item.ID, user.ID, constants.ConditionGood, "", nil, nil)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if assignment.CheckedInAt != nil {
		t.Error("Expected new assignment to be active (nil CheckedInAt)")
	}

	// Equipment flags flipped with the insert
	var equipment models.Equipment
	if err := db.First(&equipment, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("Equipment not found: %v", err)
	}
	if !equipment.IsAssigned {
		t.Error("Expected is_assigned true after assign")
	}
	if equipment.AssignedTo == nil || *equipment.AssignedTo != user.ID {
		t.Error("Expected assigned_to to point at the user")
	}

	// Invariant: exactly one active row for the item
	var active int64
	db.Model(&models.AssignedEquipment{}).
		Where("equipment_id = ? AND checked_in_at IS NULL", item.ID).
		Count(&active)
	if active != 1 {
		t.Errorf("Expected exactly 1 active assignment, got %d", active)
	}

	if err := service.Return(ctx, assignment.ID, constants.ConditionFair, "scuffed"); err != nil {
		t.Fatalf("Return failed: %v", err)
	}

	if err := db.First(&equipment, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("Equipment not found: %v", err)
	}
	if equipment.IsAssigned {
		t.Error("Expected is_assigned false after return")
	}
	if equipment.AssignedTo != nil {
		t.Error("Expected assigned_to nil after return")
	}

	var returned models.AssignedEquipment
	if err := db.First(&returned, "id = ?", assignment.ID).Error; err != nil {
		t.Fatalf("Assignment not found: %v", err)
	}
	if returned.CheckedInAt == nil {
		t.Error("Expected checked_in_at set after return")
	}
	if returned.Condition != constants.ConditionFair {
		t.Errorf("Expected condition fair, got %s", returned.Condition)
	}
	if returned.Notes != "scuffed" {
		t.Errorf("Expected notes 'scuffed', got %q", returned.Notes)
	}

	db.Model(&models.AssignedEquipment{}).
		Where("equipment_id = ? AND checked_in_at IS NULL", item.ID).
		Count(&active)
	if active != 0 {
		t.Errorf("Expected 0 active assignments after return, got %d", active)
	}
}

func TestEquipmentService_DuplicatePairRejected(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db, nil, nil)
	ctx := context.Background()

	user := createTestUser(t, db, "reserve@pd.test", "Pat Reserve", constants.RoleMember, constants.PositionReserve)
	item := createTestEquipment(t, db, "Vest 3", "VST-003")

	assignment, err := service.Assign(ctx, item.ID, user.ID, constants.ConditionNew, "", nil, nil)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if err := service.Return(ctx, assignment.ID, constants.ConditionGood, ""); err != nil {
		t.Fatalf("Return failed: %v", err)
	}

	// Re-issuing the same item to the same user is rejected even after return
	if _, err := service.Assign(ctx, item.ID, user.ID, constants.ConditionGood, "", nil, nil); err == nil {
		t.Error("Expected error for duplicate (equipment, user) pair")
	}

	var count int64
	db.Model(&models.AssignedEquipment{}).
		Where("equipment_id = ? AND user_id = ?", item.ID, user.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly 1 assignment row, got %d", count)
	}
}

func TestEquipmentService_SecondActiveAssignmentRejected(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db, nil, nil)
	ctx := context.Background()

	first := createTestUser(t, db, "one@pd.test", "User One", constants.RoleMember, constants.PositionReserve)
	second := createTestUser(t, db, "two@pd.test", "User Two", constants.RoleMember, constants.PositionReserve)
	item := createTestEquipment(t, db, "Radio 9", "RAD-009")

	if _, err := service.Assign(ctx, item.ID, first.ID, constants.ConditionGood, "", nil, nil); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	if _, err := service.Assign(ctx, item.ID, second.ID, constants.ConditionGood, "", nil, nil); err == nil {
		t.Error("Expected error assigning equipment that is already checked out")
	}

	var active int64
	db.Model(&models.AssignedEquipment{}).
		Where("equipment_id = ? AND checked_in_at IS NULL", item.ID).
		Count(&active)
	if active != 1 {
		t.Errorf("Expected exactly 1 active assignment, got %d", active)
	}
}

func TestEquipmentService_ObsoleteNotAssignable(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db, nil, nil)
	ctx := context.Background()

	user := createTestUser(t, db, "reserve@pd.test", "Pat Reserve", constants.RoleMember, constants.PositionReserve)
	item := createTestEquipment(t, db, "Old Radio", "RAD-001")

	if err := service.MarkObsolete(ctx, item.ID); err != nil {
		t.Fatalf("MarkObsolete failed: %v", err)
	}

	if _, err := service.Assign(ctx, item.ID, user.ID, constants.ConditionPoor, "", nil, nil); err == nil {
		t.Error("Expected error assigning obsolete equipment")
	}
}

func TestEquipmentService_MarkObsoleteWhileCheckedOutRejected(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db, nil, nil)
	ctx := context.Background()

	user := createTestUser(t, db, "reserve@pd.test", "Pat Reserve", constants.RoleMember, constants.PositionReserve)
	item := createTestEquipment(t, db, "Vest 5", "VST-005")

	if _, err := service.Assign(ctx, item.ID, user.ID, constants.ConditionGood, "", nil, nil); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	if err := service.MarkObsolete(ctx, item.ID); err == nil {
		t.Error("Expected error retiring checked-out equipment")
	}
}

func TestEquipmentService_AssignMissingEquipmentLeavesNoRows(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db, nil, nil)
	ctx := context.Background()

	user := createTestUser(t, db, "reserve@pd.test", "Pat Reserve", constants.RoleMember, constants.PositionReserve)

	if _, err := service.Assign(ctx, "no-such-id", user.ID, constants.ConditionGood, "", nil, nil); err == nil {
		t.Fatal("Expected error assigning nonexistent equipment")
	}

	// Transaction rolled back: nothing persisted
	var count int64
	db.Model(&models.AssignedEquipment{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected 0 assignment rows after failed assign, got %d", count)
	}
}

func TestEquipmentService_AssignRollsBackInsertWhenFlagUpdateFails(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db, nil, nil)
	ctx := context.Background()

	user := createTestUser(t, db, "reserve@pd.test", "Pat Reserve", constants.RoleMember, constants.PositionReserve)
	item := createTestEquipment(t, db, "Radio 7", "RAD-007")

	// Fail the equipment flag update after the assignment row is already
	// inserted, so the failure lands between the two writes
	err := db.Callback().Update().Before("gorm:update").Register("fail_equipment_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "equipment" {
			tx.AddError(errors.New("connection lost"))
		}
	})
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}
	defer db.Callback().Update().Remove("fail_equipment_update")

	if _, err := service.Assign(ctx, item.ID, user.ID, constants.ConditionGood, "", nil, nil); err == nil {
		t.Fatal("Expected assign to fail when the flag update errors")
	}

	// Both writes rolled back: no orphan assignment row
	var count int64
	db.Model(&models.AssignedEquipment{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected 0 assignment rows after rollback, got %d", count)
	}

	var equipment models.Equipment
	if err := db.First(&equipment, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("Equipment not found: %v", err)
	}
	if equipment.IsAssigned {
		t.Error("Expected is_assigned to stay false after rollback")
	}
	if equipment.AssignedTo != nil {
		t.Error("Expected assigned_to to stay nil after rollback")
	}
}

func TestEquipmentService_ReturnMissingAssignmentFails(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db, nil, nil)

	if err := service.Return(context.Background(), "no-such-id", constants.ConditionGood, ""); err == nil {
		t.Error("Expected error returning nonexistent assignment")
	}
}

func TestEquipmentService_ListForUserOrdering(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db, nil, nil)
	ctx := context.Background()

	user := createTestUser(t, db, "reserve@pd.test", "Pat Reserve", constants.RoleMember, constants.PositionReserve)
	itemA := createTestEquipment(t, db, "Item A", "SN-A")
	itemB := createTestEquipment(t, db, "Item B", "SN-B")
	itemC := createTestEquipment(t, db, "Item C", "SN-C")

	now := time.Now()
	fiveDaysAgo := now.AddDate(0, 0, -5)
	tenDaysAgo := now.AddDate(0, 0, -10)
	twoDaysAgo := now.AddDate(0, 0, -2)

	// B: returned, checked out 10 days ago
	b, err := service.Assign(ctx, itemB.ID, user.ID, constants.ConditionGood, "", &tenDaysAgo, nil)
	if err != nil {
		t.Fatalf("Assign B failed: %v", err)
	}
	if err := service.Return(ctx, b.ID, constants.ConditionGood, ""); err != nil {
		t.Fatalf("Return B failed: %v", err)
	}

	// C: returned, checked out 2 days ago
	c, err := service.Assign(ctx, itemC.ID, user.ID, constants.ConditionGood, "", &twoDaysAgo, nil)
	if err != nil {
		t.Fatalf("Assign C failed: %v", err)
	}
	if err := service.Return(ctx, c.ID, constants.ConditionGood, ""); err != nil {
		t.Fatalf("Return C failed: %v", err)
	}

	// A: active, checked out 5 days ago
	a, err := service.Assign(ctx, itemA.ID, user.ID, constants.ConditionGood, "", &fiveDaysAgo, nil)
	if err != nil {
		t.Fatalf("Assign A failed: %v", err)
	}

	list, err := service.ListForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 assignments, got %d", len(list))
	}

	want := []string{a.ID, c.ID, b.ID}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("Position %d: expected assignment %s, got %s", i, id, list[i].ID)
		}
	}

	// Idempotent read: same ordering and contents on a second call
	again, err := service.ListForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("Second ListForUser failed: %v", err)
	}
	if len(again) != len(list) {
		t.Fatalf("Expected identical result sets, got %d vs %d", len(again), len(list))
	}
	for i := range list {
		if again[i].ID != list[i].ID {
			t.Errorf("Position %d differs between reads: %s vs %s", i, list[i].ID, again[i].ID)
		}
	}
}

func TestEquipmentService_UpdateNotes(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db, nil, nil)
	ctx := context.Background()

	user := createTestUser(t, db, "reserve@pd.test", "Pat Reserve", constants.RoleMember, constants.PositionReserve)
	item := createTestEquipment(t, db, "Radio 2", "RAD-002")

	assignment, err := service.Assign(ctx, item.ID, user.ID, constants.ConditionGood, "", nil, nil)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	updated, err := service.UpdateNotes(ctx, assignment.ID, "antenna bent")
	if err != nil {
		t.Fatalf("UpdateNotes failed: %v", err)
	}
	if updated.Notes != "antenna bent" {
		t.Errorf("Expected updated notes, got %q", updated.Notes)
	}
}

func TestEquipmentService_AssignNotifiesAssignee(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db, newTestNotifier(db), nil)
	ctx := context.Background()

	user := createTestUser(t, db, "reserve@pd.test", "Pat Reserve", constants.RoleMember, constants.PositionReserve)
	item := createTestEquipment(t, db, "Radio 4", "RAD-004")

	if _, err := service.Assign(ctx, item.ID, user.ID, constants.ConditionGood, "", nil, nil); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	var recipients []models.NotificationRecipient
	if err := db.Where("user_id = ?", user.ID).Find(&recipients).Error; err != nil {
		t.Fatalf("Failed to fetch recipients: %v", err)
	}
	if len(recipients) != 1 {
		t.Fatalf("Expected 1 notification for assignee, got %d", len(recipients))
	}
	if recipients[0].IsRead {
		t.Error("Expected new notification to be unread")
	}
}
