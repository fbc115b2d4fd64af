package usecase

import (
	"context"

	"ideamatch/internal/domain/entity"

	"github.com/google/uuid"
)

// OnboardingInput defines the preferences a capital provider submits during onboarding.
type OnboardingInput struct {
	AccountID        uuid.UUID
	PreferredStages  []string
	Industries       []string
	MinFunding       float64
	MaxFunding       float64
	InvestmentThesis string
}

// BrowseIdeasInput defines the filters for the investor-side idea feed.
type BrowseIdeasInput struct {
	Industry   string
	Stage      string
	Region     string
	MinFunding float64
	MaxFunding float64
	Search     string
	Page       int
	Limit      int
	SortBy     string
	Descending bool
}

// BrowseIdeasOutput is one page of the feed plus the total match count.
type BrowseIdeasOutput struct {
	Ideas []*entity.Idea
	Total int64
	Page  int
	Limit int
}

// InvestorUsecase covers the capital-provider side of the marketplace.
type InvestorUsecase interface {
	// CompleteOnboarding records the investor's preferences and marks the
	// account onboarded. Submitting again overwrites the profile.
	CompleteOnboarding(ctx context.Context, input OnboardingInput) (*entity.InvestorProfile, error)

	// GetProfile retrieves the investor's own onboarding profile.
	GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.InvestorProfile, error)

	// BrowseIdeas returns a filtered, paginated page of published pitches.
	BrowseIdeas(ctx context.Context, input BrowseIdeasInput) (*BrowseIdeasOutput, error)
}
