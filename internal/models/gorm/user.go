package gorm

import (
	"time"

	"blueline/reservehub/internal/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string               `gorm:"column:id;primaryKey;type:uuid"`
	Email       string               `gorm:"column:email;uniqueIndex;not null"`
	Name        string               `gorm:"column:name;type:varchar(200);not null"`
	Role        constants.Role       `gorm:"column:role;type:user_role;default:'guest'"`
	Position    constants.Position   `gorm:"column:position;type:user_position;default:'candidate'"`
	Status      constants.UserStatus `gorm:"column:status;type:user_status;default:'active'"`
	Phone       *string              `gorm:"column:phone;type:varchar(30)"`
	BadgeNumber *string              `gorm:"column:badge_number;type:varchar(30)"`
	ResumePath  *string              `gorm:"column:resume_path;type:text"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	AssignedEquipment []AssignedEquipment `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate mints the row id so the same model works on Postgres and the
// sqlite test driver.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
