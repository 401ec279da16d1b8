package dtos

import (
	"time"

	"blueline/reservehub/internal/constants"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// ---- Health ----

type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Uptime   string                   `json:"uptime"`
	Services map[string]ServiceStatus `json:"services"`
}

// ---- Users ----

type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Position    string  `json:"position"`
	Status      string  `json:"status"`
	Phone       *string `json:"phone,omitempty"`
	BadgeNumber *string `json:"badge_number,omitempty"`
}

// ---- Equipment ----

type AssignmentResponse struct {
	ID                 string     `json:"id"`
	EquipmentID        string     `json:"equipment_id"`
	EquipmentName      string     `json:"equipment_name,omitempty"`
	SerialNumber       string     `json:"serial_number,omitempty"`
	UserID             string     `json:"user_id"`
	Condition          string     `json:"condition"`
	CheckedOutAt       time.Time  `json:"checked_out_at"`
	CheckedInAt        *time.Time `json:"checked_in_at,omitempty"`
	ExpectedReturnDate *time.Time `json:"expected_return_date,omitempty"`
	Notes              string     `json:"notes,omitempty"`
}

// ---- Notifications ----

type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	URL       *string   `json:"url,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// ---- Policies ----

type PolicyCompletionEntry struct {
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ---- Dashboard ----

type DashboardCounts struct {
	ActiveMembers     int64                      `json:"active_members"`
	MembersByPosition map[constants.Position]int `json:"members_by_position"`
	EquipmentOut      int64                      `json:"equipment_out"`
	UpcomingEvents    int64                      `json:"upcoming_events"`
	UpcomingTrainings int64                      `json:"upcoming_trainings"`
}
