package constants

import (
	"database/sql/driver"
	"fmt"
)

// NotificationType mirrors the Postgres ENUM 'notification_type'
type NotificationType string

const (
	NotifEquipmentAssigned NotificationType = "equipment_assigned"
	NotifEquipmentReturned NotificationType = "equipment_returned"
	NotifEquipmentOverdue  NotificationType = "equipment_overdue"
	NotifEventCreated      NotificationType = "event_created"
	NotifEventSignup       NotificationType = "event_signup"
	NotifEventLeave        NotificationType = "event_leave"
	NotifTrainingCreated   NotificationType = "training_created"
	NotifTrainingSignup    NotificationType = "training_signup"
	NotifTrainingLeave     NotificationType = "training_leave"
	NotifPolicyPublished   NotificationType = "policy_published"
	NotifGeneral           NotificationType = "general"
)

func (t NotificationType) String() string { return string(t) }

// Scan implements the sql.Scanner interface
func (t *NotificationType) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*t = NotificationType(v)
	case []byte:
		*t = NotificationType(v)
	default:
		return fmt.Errorf("NotificationType: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (t NotificationType) Value() (driver.Value, error) { return string(t), nil }
