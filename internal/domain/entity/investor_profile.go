// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// InvestorProfile holds the investment preferences a capital provider fills
// in during onboarding. One profile per account, updated in place.
type InvestorProfile struct {
	AccountID        uuid.UUID
	PreferredStages  []string
	Industries       []string
	MinFunding       float64
	MaxFunding       float64
	InvestmentThesis string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
