package model

import (
	"time"

	"github.com/google/uuid"
)

// InvestorProfileModel mirrors the 'investor_profiles' table. Stage and
// industry preferences are stored comma-joined; the repository converts them
// to and from slices.
type InvestorProfileModel struct {
	AccountID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PreferredStages  string    `gorm:"type:text"`
	Industries       string    `gorm:"type:text"`
	MinFunding       float64   `gorm:"not null"`
	MaxFunding       float64   `gorm:"not null"`
	InvestmentThesis string    `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Account *AccountModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (InvestorProfileModel) TableName() string {
	return "investor_profiles"
}
