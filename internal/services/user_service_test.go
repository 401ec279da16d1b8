package services

import (
	"context"
	"testing"

	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/db/repositories"
	"blueline/reservehub/internal/models/dtos"
)

func TestUserService_GetOrCreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepositoryGORM(db))
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, "pat@example.com", "Pat Doe")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first.Role != constants.RoleGuest {
		t.Errorf("Expected new user role guest, got %s", first.Role)
	}
	if first.Position != constants.PositionCandidate {
		t.Errorf("Expected new user position candidate, got %s", first.Position)
	}

	second, err := svc.GetOrCreate(ctx, "pat@example.com", "Pat Doe")
	if err != nil {
		t.Fatalf("Second GetOrCreate failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected same user row, got %s and %s", first.ID, second.ID)
	}
}

func TestUserService_AdminUpdateValidatesEnums(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepositoryGORM(db))
	ctx := context.Background()

	user := createTestUser(t, db, "new@example.com", "New Guest", constants.RoleGuest, constants.PositionCandidate)

	if _, err := svc.AdminUpdate(ctx, user.ID, dtos.AdminUpdateUserReq{Role: "overlord"}); err == nil {
		t.Error("Expected invalid role to be rejected")
	}
	if _, err := svc.AdminUpdate(ctx, user.ID, dtos.AdminUpdateUserReq{Status: "banned"}); err == nil {
		t.Error("Expected invalid status to be rejected")
	}

	badge := "R-42"
	updated, err := svc.AdminUpdate(ctx, user.ID, dtos.AdminUpdateUserReq{
		Role:        constants.RoleMember.String(),
		Position:    constants.PositionReserve.String(),
		BadgeNumber: &badge,
	})
	if err != nil {
		t.Fatalf("AdminUpdate failed: %v", err)
	}
	if updated.Role != constants.RoleMember {
		t.Errorf("Expected role member, got %s", updated.Role)
	}
	if updated.BadgeNumber == nil || *updated.BadgeNumber != "R-42" {
		t.Error("Expected badge number to be set")
	}
}

func TestUserService_DeactivationLeavesRow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepositoryGORM(db))
	ctx := context.Background()

	user := createTestUser(t, db, "leaver@example.com", "Leaving Member", constants.RoleMember, constants.PositionReserve)

	updated, err := svc.AdminUpdate(ctx, user.ID, dtos.AdminUpdateUserReq{Status: string(constants.UserInactive)})
	if err != nil {
		t.Fatalf("AdminUpdate failed: %v", err)
	}
	if updated.Status != constants.UserInactive {
		t.Errorf("Expected status inactive, got %s", updated.Status)
	}

	// History stays queryable after deactivation
	got, err := svc.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get after deactivation failed: %v", err)
	}
	if got.Email != "leaver@example.com" {
		t.Errorf("Unexpected user row: %+v", got)
	}
}

func TestUserService_UpdateProfileLeavesAdminFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepositoryGORM(db))
	ctx := context.Background()

	user := createTestUser(t, db, "self@example.com", "Self Edit", constants.RoleMember, constants.PositionReserve)

	phone := "555-0199"
	updated, err := svc.UpdateProfile(ctx, user.ID, dtos.UpdateProfileReq{Name: "Self Edited", Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "Self Edited" {
		t.Errorf("Expected updated name, got %s", updated.Name)
	}
	if updated.Role != constants.RoleMember {
		t.Errorf("Profile edit must not touch role, got %s", updated.Role)
	}
}
