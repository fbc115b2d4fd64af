package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. A single row carries identity,
// the login credential and the outstanding OTP / refresh / reset state, so
// every credential transition is one atomic row update.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	FullName     string    `gorm:"type:varchar(100);not null"`
	Role         string    `gorm:"type:varchar(32);not null"`
	Provider     string    `gorm:"type:varchar(32);not null;default:'local'"`
	PasswordHash string    `gorm:"type:varchar(255)"`

	EmailVerified bool `gorm:"not null;default:false"`
	IsActive      bool `gorm:"not null;default:true"`
	IsOnboarded   bool `gorm:"not null;default:false"`

	OTPHash      *string    `gorm:"column:otp_hash;type:varchar(255)"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`

	RefreshTokenHash *string `gorm:"type:varchar(255)"`

	ResetTokenHash      *string    `gorm:"type:varchar(255)"`
	ResetTokenExpiresAt *time.Time `gorm:""`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
