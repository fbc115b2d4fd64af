package model

import (
	"time"

	"github.com/google/uuid"
)

// IdeaModel mirrors the 'ideas' table.
type IdeaModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	FounderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	StartupName   string    `gorm:"type:varchar(255);not null"`
	PitchTitle    string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	Industry      string    `gorm:"type:varchar(100);index"`
	Stage         string    `gorm:"type:varchar(50);index"`
	FundingAmount float64   `gorm:"not null"`
	RoundType     *string   `gorm:"type:varchar(50)"`
	EquityOffered float64
	Region        string  `gorm:"type:varchar(100);index"`
	PitchDeckURL  *string `gorm:"type:varchar(512)"`
	PitchDeckKey  *string `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Founder *AccountModel `gorm:"foreignKey:FounderID"`
}

// TableName explicitly sets the table name for GORM.
func (IdeaModel) TableName() string {
	return "ideas"
}
