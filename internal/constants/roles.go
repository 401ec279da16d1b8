package constants

import (
	"database/sql/driver"
	"fmt"
)

// Role mirrors the Postgres ENUM 'user_role'
type Role string

const (
	RoleGuest  Role = "guest"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Stringer ­– convenient for fmt / logs
func (r Role) String() string { return string(r) }

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleMember, RoleAdmin:
		return true
	}
	return false
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *Role) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(v)
	default:
		return fmt.Errorf("Role: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r Role) Value() (driver.Value, error) { return string(r), nil }

// Position mirrors the Postgres ENUM 'user_position'
type Position string

const (
	PositionReserve    Position = "reserve"
	PositionOfficer    Position = "officer"
	PositionAdmin      Position = "admin"
	PositionStaff      Position = "staff"
	PositionDispatcher Position = "dispatcher"
	PositionCandidate  Position = "candidate"
)

func (p Position) String() string { return string(p) }

func (p Position) Valid() bool {
	switch p {
	case PositionReserve, PositionOfficer, PositionAdmin,
		PositionStaff, PositionDispatcher, PositionCandidate:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface
func (p *Position) Scan(src interface{}) error {
	if src == nil {
		*p = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*p = Position(v)
	case []byte:
		*p = Position(v)
	default:
		return fmt.Errorf("Position: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (p Position) Value() (driver.Value, error) { return string(p), nil }

// UserStatus mirrors the Postgres ENUM 'user_status'
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

func (s UserStatus) String() string { return string(s) }

// Scan implements the sql.Scanner interface
func (s *UserStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = UserStatus(v)
	case []byte:
		*s = UserStatus(v)
	default:
		return fmt.Errorf("UserStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s UserStatus) Value() (driver.Value, error) { return string(s), nil }
