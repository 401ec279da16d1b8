package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Policy is a versioned department policy document.
type Policy struct {
	ID            string    `gorm:"column:id;primaryKey;type:uuid"`
	PolicyNumber  string    `gorm:"column:policy_number;type:varchar(50);uniqueIndex;not null"`
	Title         string    `gorm:"column:title;type:varchar(200);not null"`
	PolicyURL     string    `gorm:"column:policy_url;type:text;not null"`
	EffectiveDate time.Time `gorm:"column:effective_date;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Completions []PolicyCompletion `gorm:"foreignKey:PolicyID"`
}

// TableName specifies the table name for GORM
func (Policy) TableName() string {
	return "policies"
}

func (p *Policy) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// PolicyCompletion is an append-only acknowledgement of a policy by a user.
// Absence of a row means "not acknowledged"; the composite unique index
// closes the double-acknowledge race.
type PolicyCompletion struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	PolicyID  string    `gorm:"column:policy_id;type:uuid;not null;uniqueIndex:,composite:policy_user_unique"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:,composite:policy_user_unique"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	// Relationships
	Policy Policy `gorm:"foreignKey:PolicyID"`
	User   User   `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (PolicyCompletion) TableName() string {
	return "policy_completions"
}

func (c *PolicyCompletion) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
