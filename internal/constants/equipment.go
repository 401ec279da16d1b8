package constants

import (
	"database/sql/driver"
	"fmt"
)

// EquipmentCondition mirrors the Postgres ENUM 'equipment_condition'.
// Recorded at checkout and again at check-in.
type EquipmentCondition string

const (
	ConditionNew           EquipmentCondition = "new"
	ConditionGood          EquipmentCondition = "good"
	ConditionFair          EquipmentCondition = "fair"
	ConditionPoor          EquipmentCondition = "poor"
	ConditionDamagedBroken EquipmentCondition = "damaged_broken"
)

func (c EquipmentCondition) String() string { return string(c) }

func (c EquipmentCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionFair, ConditionPoor, ConditionDamagedBroken:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface
func (c *EquipmentCondition) Scan(src interface{}) error {
	if src == nil {
		*c = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*c = EquipmentCondition(v)
	case []byte:
		*c = EquipmentCondition(v)
	default:
		return fmt.Errorf("EquipmentCondition: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (c EquipmentCondition) Value() (driver.Value, error) { return string(c), nil }
