package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/db/repositories"
	"blueline/reservehub/internal/models/dtos"
	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/gorm"
)

// PolicyService handles policy documents and append-only acknowledgements.
// "Not acknowledged" is the absence of a completion row; the unique index on
// (policy_id, user_id) prevents duplicate rows outright.
type PolicyService struct {
	repo     *repositories.PolicyRepository
	notifier *NotificationService
}

func NewPolicyService(repo *repositories.PolicyRepository, notifier *NotificationService) *PolicyService {
	return &PolicyService{
		repo:     repo,
		notifier: notifier,
	}
}

// Create publishes a policy and notifies every active user
func (s *PolicyService) Create(ctx context.Context, req dtos.CreatePolicyReq) (*models.Policy, error) {
	policy := models.Policy{
		PolicyNumber:  req.PolicyNumber,
		Title:         req.Title,
		PolicyURL:     req.PolicyURL,
		EffectiveDate: req.EffectiveDate,
	}

	if err := s.repo.Create(ctx, &policy); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		audience, err := s.notifier.AllActiveAudience(ctx)
		if err != nil {
			log.Printf("failed to resolve audience: %v", err)
		} else {
			msg := fmt.Sprintf("New policy %s: %s", policy.PolicyNumber, policy.Title)
			if _, err := s.notifier.Notify(ctx, constants.NotifPolicyPublished, msg, &policy.PolicyURL, audience); err != nil {
				log.Printf("policy notification failed: %v", err)
			}
		}
	}

	return &policy, nil
}

// Update persists policy edits
func (s *PolicyService) Update(ctx context.Context, id string, req dtos.CreatePolicyReq) (*models.Policy, error) {
	policy, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	policy.PolicyNumber = req.PolicyNumber
	policy.Title = req.Title
	policy.PolicyURL = req.PolicyURL
	policy.EffectiveDate = req.EffectiveDate

	if err := s.repo.Update(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

// List returns all policies
func (s *PolicyService) List(ctx context.Context) ([]models.Policy, error) {
	return s.repo.List(ctx)
}

// Acknowledge records that a user has read a policy. A second call fails
// with an "already acknowledged" precondition error from the unique index.
func (s *PolicyService) Acknowledge(ctx context.Context, policyID, userID string) (*models.PolicyCompletion, error) {
	if _, err := s.repo.GetByID(ctx, policyID); err != nil {
		return nil, err
	}

	completion := models.PolicyCompletion{
		PolicyID: policyID,
		UserID:   userID,
	}

	if err := s.repo.CreateCompletion(ctx, &completion); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New(constants.ErrMsgAlreadyCompleted)
		}
		return nil, err
	}

	return &completion, nil
}

// IsCompleted reports whether the user has acknowledged the policy
func (s *PolicyService) IsCompleted(ctx context.Context, policyID, userID string) (bool, error) {
	count, err := s.repo.CountCompletions(ctx, policyID, userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ResetCompletion clears acknowledgements for one user, or for every user
// when userID is nil (bulk reset). Admin-only at the route layer.
func (s *PolicyService) ResetCompletion(ctx context.Context, policyID string, userID *string) error {
	if _, err := s.repo.GetByID(ctx, policyID); err != nil {
		return err
	}
	return s.repo.DeleteCompletions(ctx, policyID, userID)
}

// CompletionMatrix reports per-user acknowledgement state for one policy,
// for the admin compliance view.
func (s *PolicyService) CompletionMatrix(ctx context.Context, policyID string, users []models.User) ([]dtos.PolicyCompletionEntry, error) {
	completions, err := s.repo.CompletionsForPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	completedAt := make(map[string]time.Time, len(completions))
	for _, c := range completions {
		completedAt[c.UserID] = c.CreatedAt
	}

	entries := make([]dtos.PolicyCompletionEntry, 0, len(users))
	for _, u := range users {
		entry := dtos.PolicyCompletionEntry{
			UserID: u.ID,
			Name:   u.Name,
			Email:  u.Email,
		}
		if at, ok := completedAt[u.ID]; ok {
			entry.Completed = true
			t := at
			entry.CompletedAt = &t
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
