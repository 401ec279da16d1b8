package gorm

import (
	"time"

	"blueline/reservehub/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a scheduled duty activity members sign up for.
type Event struct {
	ID              string              `gorm:"column:id;primaryKey;type:uuid"`
	Title           string              `gorm:"column:title;type:varchar(200);not null"`
	Description     string              `gorm:"column:description;type:text"`
	Location        string              `gorm:"column:location;type:varchar(200)"`
	StartsAt        time.Time           `gorm:"column:starts_at;index;not null"`
	EndsAt          time.Time           `gorm:"column:ends_at;not null"`
	Type            constants.EventType `gorm:"column:type;type:event_type;default:'other'"`
	MinParticipants int                 `gorm:"column:min_participants;default:0"`
	MaxParticipants int                 `gorm:"column:max_participants;default:0"`
	CreatedBy       *string             `gorm:"column:created_by;type:uuid"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Assignments []EventAssignment `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// EventAssignment links one user to one event; unique per pair.
type EventAssignment struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	EventID   string    `gorm:"column:event_id;type:uuid;not null;uniqueIndex:,composite:event_user_unique"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:,composite:event_user_unique"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID"`
	User  User  `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (EventAssignment) TableName() string {
	return "event_assignments"
}

func (a *EventAssignment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
