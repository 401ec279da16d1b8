package dtos

import "time"

// ---- Users ----

type UpdateProfileReq struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

type AdminUpdateUserReq struct {
	Role        string  `json:"role"`
	Position    string  `json:"position"`
	Status      string  `json:"status"`
	BadgeNumber *string `json:"badge_number"`
}

// ---- Equipment ----

type CreateEquipmentReq struct {
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
}

type UpdateEquipmentReq struct {
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
}

type AssignEquipmentReq struct {
	UserID             string     `json:"user_id"`
	Condition          string     `json:"condition"`
	Notes              string     `json:"notes"`
	CheckedOutAt       *time.Time `json:"checked_out_at"`
	ExpectedReturnDate *time.Time `json:"expected_return_date"`
}

type ReturnEquipmentReq struct {
	Condition string `json:"condition"`
	Notes     string `json:"notes"`
}

type UpdateNotesReq struct {
	Notes string `json:"notes"`
}

// ---- Events / Trainings ----

type CreateActivityReq struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	Type            string    `json:"type"`
	MinParticipants int       `json:"min_participants"`
	MaxParticipants int       `json:"max_participants"`
}

type UpdateCompletionReq struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// ---- Policies ----

type CreatePolicyReq struct {
	PolicyNumber  string    `json:"policy_number"`
	Title         string    `json:"title"`
	PolicyURL     string    `json:"policy_url"`
	EffectiveDate time.Time `json:"effective_date"`
}
