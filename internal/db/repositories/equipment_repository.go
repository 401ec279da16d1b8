package repositories

import (
	"context"
	"errors"
	"fmt"

	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/gorm"
)

// EquipmentRepository manages the equipment catalog. Checkout state
// transitions live in services.EquipmentService, which needs transaction
// control across equipment and assigned_equipment.
type EquipmentRepository struct {
	db *gorm.DB
}

// NewEquipmentRepository creates a new equipment repository
func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// GetByID retrieves one equipment item
func (r *EquipmentRepository) GetByID(ctx context.Context, id string) (*models.Equipment, error) {
	var item models.Equipment

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("equipment not found")
		}
		return nil, fmt.Errorf("failed to fetch equipment: %w", err)
	}

	return &item, nil
}

// Create adds a catalog item
func (r *EquipmentRepository) Create(ctx context.Context, item *models.Equipment) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("equipment with this serial number already exists")
		}
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	return nil
}

// Update persists name/serial edits
func (r *EquipmentRepository) Update(ctx context.Context, item *models.Equipment) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("failed to update equipment: %w", err)
	}
	return nil
}

// List retrieves catalog items; assignableOnly filters to items that can be
// handed out right now (not assigned, not obsolete).
func (r *EquipmentRepository) List(ctx context.Context, assignableOnly bool) ([]models.Equipment, error) {
	var items []models.Equipment

	q := r.db.WithContext(ctx).Order("name ASC")
	if assignableOnly {
		q = q.Where("is_assigned = ? AND is_obsolete = ?", false, false)
	}

	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch equipment: %w", err)
	}

	return items, nil
}
