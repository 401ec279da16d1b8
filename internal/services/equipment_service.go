package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/metrics"
	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/gorm"
)

// EquipmentService owns the checkout lifecycle. Assign and Return each move
// two tables (equipment + assigned_equipment) inside one transaction; a
// failure rolls back both writes, never leaving the item flagged assigned
// without an active checkout row or vice versa.
type EquipmentService struct {
	db       *gorm.DB
	notifier *NotificationService
	metrics  *metrics.MetricsRegistry
}

func NewEquipmentService(db *gorm.DB, notifier *NotificationService, m *metrics.MetricsRegistry) *EquipmentService {
	return &EquipmentService{
		db:       db,
		notifier: notifier,
		metrics:  m,
	}
}

// Assign checks equipment out to a user.
//
// Preconditions, checked inside the transaction: the item exists, is not
// obsolete, has no active checkout, and this exact (equipment, user) pair has
// never been assigned before — re-issuing the same item to the same user is
// rejected even after a return. The (equipment_id, user_id) unique index
// backs the pair check, so a concurrent duplicate loses at commit rather
// than slipping past the read.
func (s *EquipmentService) Assign(ctx context.Context, equipmentID, userID string, condition constants.EquipmentCondition, notes string, checkedOutAt, expectedReturnDate *time.Time) (*models.AssignedEquipment, error) {
	if !condition.Valid() {
		return nil, fmt.Errorf("invalid condition: %q", condition)
	}

	outAt := time.Now()
	if checkedOutAt != nil {
		outAt = *checkedOutAt
	}

	assignment := models.AssignedEquipment{
		EquipmentID:        equipmentID,
		UserID:             userID,
		Condition:          condition,
		CheckedOutAt:       outAt,
		ExpectedReturnDate: expectedReturnDate,
		Notes:              notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var equipment models.Equipment
		if err := tx.Where("id = ?", equipmentID).First(&equipment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("equipment not found")
			}
			return err
		}

		if equipment.IsObsolete {
			return errors.New(constants.ErrMsgEquipmentObsolete)
		}
		if equipment.IsAssigned {
			return errors.New("equipment is already checked out")
		}

		var pairCount int64
		if err := tx.Model(&models.AssignedEquipment{}).
			Where("equipment_id = ? AND user_id = ?", equipmentID, userID).
			Count(&pairCount).Error; err != nil {
			return err
		}
		if pairCount > 0 {
			return errors.New(constants.ErrMsgAlreadyAssigned)
		}

		if err := tx.Create(&assignment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.New(constants.ErrMsgAlreadyAssigned)
			}
			return err
		}

		return tx.Model(&models.Equipment{}).
			Where("id = ?", equipmentID).
			Updates(map[string]interface{}{"is_assigned": true, "assigned_to": userID}).Error
	})

	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrMsgAssignmentFailed, err)
	}

	if s.metrics != nil {
		s.metrics.EquipmentAssignments.Inc()
	}

	s.notifyAssignee(ctx, assignment.EquipmentID, userID)

	return &assignment, nil
}

// Return checks an item back in: stamps checked_in_at and the return-time
// condition on the assignment, and clears the assigned flags on the item.
// A missing assignment aborts the transaction.
func (s *EquipmentService) Return(ctx context.Context, assignmentID string, condition constants.EquipmentCondition, notes string) error {
	if !condition.Valid() {
		return fmt.Errorf("invalid condition: %q", condition)
	}

	var equipmentID string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assignment models.AssignedEquipment
		if err := tx.Where("id = ?", assignmentID).First(&assignment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New(constants.ErrMsgAssignmentMissing)
			}
			return err
		}

		if assignment.CheckedInAt != nil {
			return errors.New("assignment is already returned")
		}

		now := time.Now()
		assignment.CheckedInAt = &now
		assignment.Condition = condition
		if notes != "" {
			assignment.Notes = notes
		}
		if err := tx.Save(&assignment).Error; err != nil {
			return err
		}

		equipmentID = assignment.EquipmentID
		return tx.Model(&models.Equipment{}).
			Where("id = ?", assignment.EquipmentID).
			Updates(map[string]interface{}{"is_assigned": false, "assigned_to": nil}).Error
	})

	if err != nil {
		return fmt.Errorf("failed to return equipment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.EquipmentReturns.Inc()
	}

	s.notifyAdminsReturned(ctx, equipmentID)

	return nil
}

// UpdateNotes edits the notes on an assignment. Single-row update, no
// cross-entity invariant to protect, so no transaction.
func (s *EquipmentService) UpdateNotes(ctx context.Context, assignmentID, notes string) (*models.AssignedEquipment, error) {
	var assignment models.AssignedEquipment

	err := s.db.WithContext(ctx).
		Where("id = ?", assignmentID).
		First(&assignment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(constants.ErrMsgAssignmentMissing)
		}
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}

	assignment.Notes = notes
	if err := s.db.WithContext(ctx).Save(&assignment).Error; err != nil {
		return nil, fmt.Errorf("failed to update notes: %w", err)
	}

	return &assignment, nil
}

// ListForUser returns a user's checkout history: active assignments first,
// ties broken by checked_out_at descending. The presentation layer relies on
// this ordering to show current equipment at the top.
func (s *EquipmentService) ListForUser(ctx context.Context, userID string) ([]models.AssignedEquipment, error) {
	var assignments []models.AssignedEquipment

	err := s.db.WithContext(ctx).
		Preload("Equipment").
		Where("user_id = ?", userID).
		Order("(checked_in_at IS NULL) DESC").
		Order("checked_out_at DESC").
		Find(&assignments).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	return assignments, nil
}

// MarkObsolete retires an item permanently. Obsolete is terminal: there is
// no un-obsolete transition anywhere in the system. An item with an active
// checkout must be returned first.
func (s *EquipmentService) MarkObsolete(ctx context.Context, equipmentID string) error {
	var equipment models.Equipment

	err := s.db.WithContext(ctx).
		Where("id = ?", equipmentID).
		First(&equipment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("equipment not found")
		}
		return fmt.Errorf("failed to fetch equipment: %w", err)
	}

	if equipment.IsAssigned {
		return errors.New("equipment is checked out; return it before retiring")
	}

	equipment.IsObsolete = true
	if err := s.db.WithContext(ctx).Save(&equipment).Error; err != nil {
		return fmt.Errorf("failed to mark equipment obsolete: %w", err)
	}

	return nil
}

// Notification side-effects run after commit and are best-effort: a failed
// fan-out is logged, never unwinds the checkout.

func (s *EquipmentService) notifyAssignee(ctx context.Context, equipmentID, userID string) {
	if s.notifier == nil {
		return
	}

	var equipment models.Equipment
	name := "equipment"
	if err := s.db.WithContext(ctx).Where("id = ?", equipmentID).First(&equipment).Error; err == nil {
		name = equipment.Name
	}

	msg := fmt.Sprintf("%s has been assigned to you", name)
	if _, err := s.notifier.Notify(ctx, constants.NotifEquipmentAssigned, msg, nil, []string{userID}); err != nil {
		log.Printf("equipment assign notification failed: %v", err)
	}
}

func (s *EquipmentService) notifyAdminsReturned(ctx context.Context, equipmentID string) {
	if s.notifier == nil {
		return
	}

	audience, err := s.notifier.AdminAudience(ctx)
	if err != nil {
		log.Printf("failed to resolve admin audience: %v", err)
		return
	}

	var equipment models.Equipment
	name := "equipment"
	if err := s.db.WithContext(ctx).Where("id = ?", equipmentID).First(&equipment).Error; err == nil {
		name = equipment.Name
	}

	msg := fmt.Sprintf("%s has been returned", name)
	if _, err := s.notifier.Notify(ctx, constants.NotifEquipmentReturned, msg, nil, audience); err != nil {
		log.Printf("equipment return notification failed: %v", err)
	}
}
