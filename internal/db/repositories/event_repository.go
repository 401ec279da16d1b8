package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/gorm"
)

// EventRepository manages events and their sign-up rows
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// GetByID retrieves one event
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&event).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event not found")
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}

	return &event, nil
}

// Create adds an event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// Update persists event edits
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// Delete removes an event and cascades to its sign-up rows
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Event{}).Error
	})

	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// ListUpcoming retrieves events that have not started yet, soonest first
func (r *EventRepository) ListUpcoming(ctx context.Context, now time.Time) ([]models.Event, error) {
	var events []models.Event

	err := r.db.WithContext(ctx).
		Where("starts_at > ?", now).
		Order("starts_at ASC").
		Find(&events).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	return events, nil
}

// Participants retrieves the sign-up rows with user details preloaded
func (r *EventRepository) Participants(ctx context.Context, eventID string) ([]models.EventAssignment, error) {
	var assignments []models.EventAssignment

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Find(&assignments).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}

	return assignments, nil
}

// CountParticipants returns the current sign-up count
func (r *EventRepository) CountParticipants(ctx context.Context, eventID string) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.EventAssignment{}).
		Where("event_id = ?", eventID).
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}

	return count, nil
}

// FindAssignment retrieves the sign-up row for one (event, user) pair.
// Returns (nil, nil) when no such row exists.
func (r *EventRepository) FindAssignment(ctx context.Context, eventID, userID string) (*models.EventAssignment, error) {
	var assignment models.EventAssignment

	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&assignment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch sign-up: %w", err)
	}

	return &assignment, nil
}

// CreateAssignment inserts a sign-up row. The (event_id, user_id) unique
// index is the authoritative duplicate signal.
func (r *EventRepository) CreateAssignment(ctx context.Context, assignment *models.EventAssignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return gorm.ErrDuplicatedKey
		}
		return fmt.Errorf("failed to create sign-up: %w", err)
	}
	return nil
}

// DeleteAssignment removes a sign-up row, reporting how many rows matched
func (r *EventRepository) DeleteAssignment(ctx context.Context, eventID, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventAssignment{})

	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete sign-up: %w", res.Error)
	}

	return res.RowsAffected, nil
}
