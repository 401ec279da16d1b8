package gorm

import (
	"time"

	"blueline/reservehub/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is created once with N recipient rows in the same
// transaction; is_read is mutated independently per recipient.
type Notification struct {
	ID        string                     `gorm:"column:id;primaryKey;type:uuid"`
	Type      constants.NotificationType `gorm:"column:type;type:notification_type;not null"`
	Message   string                     `gorm:"column:message;type:text;not null"`
	URL       *string                    `gorm:"column:url;type:text"`
	CreatedAt time.Time                  `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time                  `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Recipients []NotificationRecipient `gorm:"foreignKey:NotificationID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// NotificationRecipient joins a notification to one user.
type NotificationRecipient struct {
	ID             string     `gorm:"column:id;primaryKey;type:uuid"`
	NotificationID string     `gorm:"column:notification_id;type:uuid;not null;uniqueIndex:,composite:notification_user_unique"`
	UserID         string     `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:,composite:notification_user_unique"`
	IsRead         bool       `gorm:"column:is_read;default:false;index"`
	ReadAt         *time.Time `gorm:"column:read_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`

	// Relationships
	Notification Notification `gorm:"foreignKey:NotificationID"`
	User         User         `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (NotificationRecipient) TableName() string {
	return "notification_recipients"
}

func (r *NotificationRecipient) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
