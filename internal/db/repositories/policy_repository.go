package repositories

import (
	"context"
	"errors"
	"fmt"

	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/gorm"
)

// PolicyRepository manages policy documents and acknowledgement rows
type PolicyRepository struct {
	db *gorm.DB
}

// NewPolicyRepository creates a new policy repository
func NewPolicyRepository(db *gorm.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

// GetByID retrieves one policy
func (r *PolicyRepository) GetByID(ctx context.Context, id string) (*models.Policy, error) {
	var policy models.Policy

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&policy).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("policy not found")
		}
		return nil, fmt.Errorf("failed to fetch policy: %w", err)
	}

	return &policy, nil
}

// Create adds a policy
func (r *PolicyRepository) Create(ctx context.Context, policy *models.Policy) error {
	if err := r.db.WithContext(ctx).Create(policy).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("policy with this number already exists")
		}
		return fmt.Errorf("failed to create policy: %w", err)
	}
	return nil
}

// Update persists policy edits
func (r *PolicyRepository) Update(ctx context.Context, policy *models.Policy) error {
	if err := r.db.WithContext(ctx).Save(policy).Error; err != nil {
		return fmt.Errorf("failed to update policy: %w", err)
	}
	return nil
}

// List retrieves all policies, newest effective date first
func (r *PolicyRepository) List(ctx context.Context) ([]models.Policy, error) {
	var policies []models.Policy

	err := r.db.WithContext(ctx).
		Order("effective_date DESC").
		Find(&policies).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch policies: %w", err)
	}

	return policies, nil
}

// CreateCompletion inserts an acknowledgement row. The (policy_id, user_id)
// unique index is the authoritative duplicate signal.
func (r *PolicyRepository) CreateCompletion(ctx context.Context, completion *models.PolicyCompletion) error {
	if err := r.db.WithContext(ctx).Create(completion).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return gorm.ErrDuplicatedKey
		}
		return fmt.Errorf("failed to create completion: %w", err)
	}
	return nil
}

// CountCompletions returns the number of acknowledgement rows for the pair
func (r *PolicyRepository) CountCompletions(ctx context.Context, policyID, userID string) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.PolicyCompletion{}).
		Where("policy_id = ? AND user_id = ?", policyID, userID).
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}

	return count, nil
}

// DeleteCompletions deletes acknowledgement rows for a policy; a nil userID
// clears the policy for every user (bulk reset).
func (r *PolicyRepository) DeleteCompletions(ctx context.Context, policyID string, userID *string) error {
	q := r.db.WithContext(ctx).Where("policy_id = ?", policyID)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	if err := q.Delete(&models.PolicyCompletion{}).Error; err != nil {
		return fmt.Errorf("failed to delete completions: %w", err)
	}
	return nil
}

// CompletionsForPolicy retrieves all acknowledgement rows with users preloaded
func (r *PolicyRepository) CompletionsForPolicy(ctx context.Context, policyID string) ([]models.PolicyCompletion, error) {
	var completions []models.PolicyCompletion

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("policy_id = ?", policyID).
		Find(&completions).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch completions: %w", err)
	}

	return completions, nil
}
