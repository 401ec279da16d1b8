package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blueline/reservehub/internal/constants"
	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/gorm"
)

// TrainingRepository manages trainings and their attendance rows
type TrainingRepository struct {
	db *gorm.DB
}

// NewTrainingRepository creates a new training repository
func NewTrainingRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

// GetByID retrieves one training
func (r *TrainingRepository) GetByID(ctx context.Context, id string) (*models.Training, error) {
	var training models.Training

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&training).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("training not found")
		}
		return nil, fmt.Errorf("failed to fetch training: %w", err)
	}

	return &training, nil
}

// Create adds a training
func (r *TrainingRepository) Create(ctx context.Context, training *models.Training) error {
	if err := r.db.WithContext(ctx).Create(training).Error; err != nil {
		return fmt.Errorf("failed to create training: %w", err)
	}
	return nil
}

// Update persists training edits
func (r *TrainingRepository) Update(ctx context.Context, training *models.Training) error {
	if err := r.db.WithContext(ctx).Save(training).Error; err != nil {
		return fmt.Errorf("failed to update training: %w", err)
	}
	return nil
}

// Delete removes a training and cascades to its attendance rows
func (r *TrainingRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("training_id = ?", id).Delete(&models.TrainingAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Training{}).Error
	})

	if err != nil {
		return fmt.Errorf("failed to delete training: %w", err)
	}
	return nil
}

// ListUpcoming retrieves trainings that have not started yet, soonest first
func (r *TrainingRepository) ListUpcoming(ctx context.Context, now time.Time) ([]models.Training, error) {
	var trainings []models.Training

	err := r.db.WithContext(ctx).
		Where("starts_at > ?", now).
		Order("starts_at ASC").
		Find(&trainings).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch trainings: %w", err)
	}

	return trainings, nil
}

// Participants retrieves the attendance rows with user details preloaded
func (r *TrainingRepository) Participants(ctx context.Context, trainingID string) ([]models.TrainingAssignment, error) {
	var assignments []models.TrainingAssignment

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("training_id = ?", trainingID).
		Find(&assignments).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}

	return assignments, nil
}

// CountParticipants returns the current sign-up count
func (r *TrainingRepository) CountParticipants(ctx context.Context, trainingID string) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.TrainingAssignment{}).
		Where("training_id = ?", trainingID).
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}

	return count, nil
}

// FindAssignment retrieves the attendance row for one (training, user) pair.
// Returns (nil, nil) when no such row exists.
func (r *TrainingRepository) FindAssignment(ctx context.Context, trainingID, userID string) (*models.TrainingAssignment, error) {
	var assignment models.TrainingAssignment

	err := r.db.WithContext(ctx).
		Where("training_id = ? AND user_id = ?", trainingID, userID).
		First(&assignment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch sign-up: %w", err)
	}

	return &assignment, nil
}

// CreateAssignment inserts an attendance row
func (r *TrainingRepository) CreateAssignment(ctx context.Context, assignment *models.TrainingAssignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return gorm.ErrDuplicatedKey
		}
		return fmt.Errorf("failed to create sign-up: %w", err)
	}
	return nil
}

// DeleteAssignment removes an attendance row, reporting how many rows matched
func (r *TrainingRepository) DeleteAssignment(ctx context.Context, trainingID, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("training_id = ? AND user_id = ?", trainingID, userID).
		Delete(&models.TrainingAssignment{})

	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete sign-up: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// UpdateCompletion sets the completion status and notes on an attendance row
func (r *TrainingRepository) UpdateCompletion(ctx context.Context, trainingID, userID string, status constants.CompletionStatus, notes string) (*models.TrainingAssignment, error) {
	var assignment models.TrainingAssignment

	err := r.db.WithContext(ctx).
		Where("training_id = ? AND user_id = ?", trainingID, userID).
		First(&assignment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sign-up not found")
		}
		return nil, fmt.Errorf("failed to fetch sign-up: %w", err)
	}

	assignment.CompletionStatus = &status
	assignment.CompletionNotes = notes

	if err := r.db.WithContext(ctx).Save(&assignment).Error; err != nil {
		return nil, fmt.Errorf("failed to update completion: %w", err)
	}

	return &assignment, nil
}
