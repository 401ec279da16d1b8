package constants

import (
	"database/sql/driver"
	"fmt"
)

// EventType mirrors the Postgres ENUM 'event_type'
type EventType string

const (
	EventPatrol    EventType = "patrol"
	EventCommunity EventType = "community"
	EventMeeting   EventType = "meeting"
	EventOther     EventType = "other"
)

func (t EventType) String() string { return string(t) }

// Scan implements the sql.Scanner interface
func (t *EventType) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*t = EventType(v)
	case []byte:
		*t = EventType(v)
	default:
		return fmt.Errorf("EventType: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (t EventType) Value() (driver.Value, error) { return string(t), nil }

// TrainingType mirrors the Postgres ENUM 'training_type'
type TrainingType string

const (
	TrainingFirearms   TrainingType = "firearms"
	TrainingDefensive  TrainingType = "defensive_tactics"
	TrainingFirstAid   TrainingType = "first_aid"
	TrainingClassroom  TrainingType = "classroom"
	TrainingFieldOther TrainingType = "other"
)

func (t TrainingType) String() string { return string(t) }

// Scan implements the sql.Scanner interface
func (t *TrainingType) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*t = TrainingType(v)
	case []byte:
		*t = TrainingType(v)
	default:
		return fmt.Errorf("TrainingType: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (t TrainingType) Value() (driver.Value, error) { return string(t), nil }

// CompletionStatus mirrors the Postgres ENUM 'completion_status'.
// Null on the assignment row until the session has passed; any status may
// transition to any other.
type CompletionStatus string

const (
	CompletionCompleted  CompletionStatus = "completed"
	CompletionIncomplete CompletionStatus = "incomplete"
	CompletionExcused    CompletionStatus = "excused"
	CompletionUnexcused  CompletionStatus = "unexcused"
)

func (s CompletionStatus) String() string { return string(s) }

func (s CompletionStatus) Valid() bool {
	switch s {
	case CompletionCompleted, CompletionIncomplete, CompletionExcused, CompletionUnexcused:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface
func (s *CompletionStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = CompletionStatus(v)
	case []byte:
		*s = CompletionStatus(v)
	default:
		return fmt.Errorf("CompletionStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s CompletionStatus) Value() (driver.Value, error) { return string(s), nil }
