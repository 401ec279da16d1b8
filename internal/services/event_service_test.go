package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/db/repositories"
	"blueline/reservehub/internal/models/dtos"
	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/gorm"
)

func newEventService(db *gorm.DB, enforceCapacity bool) *EventService {
	users := repositories.NewUserRepositoryGORM(db)
	return NewEventService(repositories.NewEventRepository(db), users, NewNotificationService(db, users, nil), nil, enforceCapacity)
}

func createTestEvent(t *testing.T, db *gorm.DB, title string, maxParticipants int) *models.Event {
	t.Helper()

	event := models.Event{
		Title:           title,
		StartsAt:        time.Now().Add(48 * time.Hour),
		EndsAt:          time.Now().Add(52 * time.Hour),
		Type:            constants.EventPatrol,
		MaxParticipants: maxParticipants,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	return &event
}

func TestEventService_DuplicateSignUpRejected(t *testing.T) {
	db := setupTestDB(t)
	service := newEventService(db, false)
	ctx := context.Background()

	user := createTestUser(t, db, "member@pd.test", "Mel Member", constants.RoleMember, constants.PositionReserve)
	event := createTestEvent(t, db, "Night Patrol", 0)

	if _, err := service.SignUp(ctx, event.ID, user.ID); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	if _, err := service.SignUp(ctx, event.ID, user.ID); err == nil {
		t.Error("Expected error for duplicate sign-up")
	}

	var count int64
	db.Model(&models.EventAssignment{}).
		Where("event_id = ? AND user_id = ?", event.ID, user.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly 1 sign-up row, got %d", count)
	}
}

func TestEventService_SignUpMissingEventFails(t *testing.T) {
	db := setupTestDB(t)
	service := newEventService(db, false)

	user := createTestUser(t, db, "member@pd.test", "Mel Member", constants.RoleMember, constants.PositionReserve)

	if _, err := service.SignUp(context.Background(), "no-such-event", user.ID); err == nil {
		t.Error("Expected error signing up for nonexistent event")
	}
}

func TestEventService_LeaveThenNotifyAdmins(t *testing.T) {
	db := setupTestDB(t)
	service := newEventService(db, false)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin@pd.test", "Ada Admin", constants.RoleAdmin, constants.PositionAdmin)
	user := createTestUser(t, db, "member@pd.test", "Mel Member", constants.RoleMember, constants.PositionReserve)
	event := createTestEvent(t, db, "Parade Detail", 0)

	if _, err := service.SignUp(ctx, event.ID, user.ID); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	left, err := service.Leave(ctx, event.ID, user.ID)
	if err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if left == nil {
		t.Fatal("Expected the deleted assignment back from Leave")
	}

	var count int64
	db.Model(&models.EventAssignment{}).Where("event_id = ?", event.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected sign-up row deleted, got %d rows", count)
	}

	var notification models.Notification
	if err := db.Where("type = ?", constants.NotifEventLeave).First(&notification).Error; err != nil {
		t.Fatalf("Expected a leave notification: %v", err)
	}
	if !strings.Contains(notification.Message, "Mel Member") || !strings.Contains(notification.Message, "Parade Detail") {
		t.Errorf("Expected message to name user and event, got %q", notification.Message)
	}

	var recipients []models.NotificationRecipient
	db.Where("notification_id = ?", notification.ID).Find(&recipients)
	if len(recipients) != 1 || recipients[0].UserID != admin.ID {
		t.Errorf("Expected the admin audience as recipients, got %v", recipients)
	}
}

func TestEventService_LeaveMissingIsNonFatal(t *testing.T) {
	db := setupTestDB(t)
	service := newEventService(db, false)

	user := createTestUser(t, db, "member@pd.test", "Mel Member", constants.RoleMember, constants.PositionReserve)
	event := createTestEvent(t, db, "Night Patrol", 0)

	left, err := service.Leave(context.Background(), event.ID, user.ID)
	if err != nil {
		t.Fatalf("Expected no error for missing sign-up, got %v", err)
	}
	if left != nil {
		t.Error("Expected nil assignment for missing sign-up")
	}
}

func TestEventService_CapacityToggle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := createTestUser(t, db, "one@pd.test", "One", constants.RoleMember, constants.PositionReserve)
	second := createTestUser(t, db, "two@pd.test", "Two", constants.RoleMember, constants.PositionReserve)

	// Off: capacity fields are stored but not enforced
	relaxed := newEventService(db, false)
	open := createTestEvent(t, db, "Small Detail", 1)
	if _, err := relaxed.SignUp(ctx, open.ID, first.ID); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if _, err := relaxed.SignUp(ctx, open.ID, second.ID); err != nil {
		t.Errorf("Expected over-capacity sign-up admitted with enforcement off, got %v", err)
	}

	// On: sign-ups rejected at max_participants
	strict := newEventService(db, true)
	capped := createTestEvent(t, db, "Capped Detail", 1)
	if _, err := strict.SignUp(ctx, capped.ID, first.ID); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if _, err := strict.SignUp(ctx, capped.ID, second.ID); err == nil {
		t.Error("Expected over-capacity sign-up rejected with enforcement on")
	}
}

func TestEventService_DeleteCascadesToSignUps(t *testing.T) {
	db := setupTestDB(t)
	service := newEventService(db, false)
	ctx := context.Background()

	user := createTestUser(t, db, "member@pd.test", "Mel Member", constants.RoleMember, constants.PositionReserve)
	event := createTestEvent(t, db, "Night Patrol", 0)

	if _, err := service.SignUp(ctx, event.ID, user.ID); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	if err := service.Delete(ctx, event.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var count int64
	db.Model(&models.EventAssignment{}).Where("event_id = ?", event.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected sign-up rows deleted with the event, got %d", count)
	}
}

func TestEventService_CreateNotifiesReserveAudience(t *testing.T) {
	db := setupTestDB(t)
	service := newEventService(db, false)
	ctx := context.Background()

	reserve := createTestUser(t, db, "res@pd.test", "Reserve", constants.RoleMember, constants.PositionReserve)
	createTestUser(t, db, "disp@pd.test", "Dispatch", constants.RoleMember, constants.PositionDispatcher)

	admin := createTestUser(t, db, "admin@pd.test", "Ada Admin", constants.RoleAdmin, constants.PositionAdmin)

	event, err := service.Create(ctx, dtos.CreateActivityReq{
		Title:    "River Search",
		StartsAt: time.Now().Add(24 * time.Hour),
		EndsAt:   time.Now().Add(30 * time.Hour),
		Type:     string(constants.EventOther),
	}, admin.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if event.ID == "" {
		t.Fatal("Expected created event to have an id")
	}

	var notification models.Notification
	if err := db.Where("type = ?", constants.NotifEventCreated).First(&notification).Error; err != nil {
		t.Fatalf("Expected a created notification: %v", err)
	}

	var recipients []models.NotificationRecipient
	db.Where("notification_id = ?", notification.ID).Find(&recipients)
	if len(recipients) != 1 || recipients[0].UserID != reserve.ID {
		t.Errorf("Expected only the reserve-position user notified, got %v", recipients)
	}
}
