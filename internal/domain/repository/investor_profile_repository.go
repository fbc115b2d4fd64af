// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"ideamatch/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrInvestorProfileNotFound is returned when an account has no investor profile yet.
var ErrInvestorProfileNotFound = errors.New("investor profile not found")

// InvestorProfileRepository persists capital-provider onboarding preferences.
type InvestorProfileRepository interface {
	// FindByAccountID retrieves the profile owned by the given account.
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.InvestorProfile, error)

	// Create persists a new profile.
	Create(ctx context.Context, profile *entity.InvestorProfile) error

	// Update overwrites an existing profile's preferences.
	Update(ctx context.Context, profile *entity.InvestorProfile) error
}
