package gorm

import (
	"time"

	"blueline/reservehub/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Training is a scheduled training session with completion tracking.
type Training struct {
	ID              string                 `gorm:"column:id;primaryKey;type:uuid"`
	Title           string                 `gorm:"column:title;type:varchar(200);not null"`
	Description     string                 `gorm:"column:description;type:text"`
	Location        string                 `gorm:"column:location;type:varchar(200)"`
	StartsAt        time.Time              `gorm:"column:starts_at;index;not null"`
	EndsAt          time.Time              `gorm:"column:ends_at;not null"`
	Type            constants.TrainingType `gorm:"column:type;type:training_type;default:'other'"`
	MinParticipants int                    `gorm:"column:min_participants;default:0"`
	MaxParticipants int                    `gorm:"column:max_participants;default:0"`
	CreatedBy       *string                `gorm:"column:created_by;type:uuid"`
	CreatedAt       time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time              `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Assignments []TrainingAssignment `gorm:"foreignKey:TrainingID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Training) TableName() string {
	return "trainings"
}

func (t *Training) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TrainingAssignment links one user to one training. Unlike events, sign-ups
// are kept as the historical attendance record; completion is tracked on the
// row after the session instead of deleting it.
type TrainingAssignment struct {
	ID               string                      `gorm:"column:id;primaryKey;type:uuid"`
	TrainingID       string                      `gorm:"column:training_id;type:uuid;not null;uniqueIndex:,composite:training_user_unique"`
	UserID           string                      `gorm:"column:user_id;type:uuid;not null;uniqueIndex:,composite:training_user_unique"`
	CompletionStatus *constants.CompletionStatus `gorm:"column:completion_status;type:completion_status"`
	CompletionNotes  string                      `gorm:"column:completion_notes;type:text"`
	CreatedAt        time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time                   `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Training Training `gorm:"foreignKey:TrainingID"`
	User     User     `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (TrainingAssignment) TableName() string {
	return "training_assignments"
}

func (a *TrainingAssignment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
