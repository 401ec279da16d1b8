package gorm

import (
	"time"

	"blueline/reservehub/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Equipment is an issuable item (radio, vest, sidearm, ...).
// Invariant: IsAssigned is true iff exactly one AssignedEquipment row for
// this item has a null CheckedInAt. Obsolete items are never assignable.
type Equipment struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid"`
	Name         string    `gorm:"column:name;type:varchar(200);not null"`
	SerialNumber string    `gorm:"column:serial_number;type:varchar(120);uniqueIndex;not null"`
	IsAssigned   bool      `gorm:"column:is_assigned;default:false"`
	AssignedTo   *string   `gorm:"column:assigned_to;type:uuid"`
	IsObsolete   bool      `gorm:"column:is_obsolete;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Assignments []AssignedEquipment `gorm:"foreignKey:EquipmentID"`
	Holder      *User               `gorm:"foreignKey:AssignedTo"`
}

// TableName specifies the table name for GORM
func (Equipment) TableName() string {
	return "equipment"
}

func (e *Equipment) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// AssignedEquipment is one checkout episode linking an item to a user.
// A null CheckedInAt marks the episode as currently active; the composite
// unique index on (equipment_id, user_id) is the authoritative duplicate
// signal for assign.
type AssignedEquipment struct {
	ID                 string                       `gorm:"column:id;primaryKey;type:uuid"`
	EquipmentID        string                       `gorm:"column:equipment_id;type:uuid;not null;uniqueIndex:,composite:equipment_user_unique"`
	UserID             string                       `gorm:"column:user_id;type:uuid;not null;uniqueIndex:,composite:equipment_user_unique"`
	Condition          constants.EquipmentCondition `gorm:"column:condition;type:equipment_condition;not null"`
	CheckedOutAt       time.Time                    `gorm:"column:checked_out_at;index;not null"`
	CheckedInAt        *time.Time                   `gorm:"column:checked_in_at;index"`
	ExpectedReturnDate *time.Time                   `gorm:"column:expected_return_date"`
	Notes              string                       `gorm:"column:notes;type:text"`
	CreatedAt          time.Time                    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                    `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Equipment Equipment `gorm:"foreignKey:EquipmentID"`
	User      User      `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (AssignedEquipment) TableName() string {
	return "assigned_equipment"
}

func (a *AssignedEquipment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
