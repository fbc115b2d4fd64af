// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Idea is a startup pitch published by an idea submitter and browsed by
// capital providers.
type Idea struct {
	ID            uuid.UUID
	FounderID     uuid.UUID // Account that submitted the idea.
	StartupName   string
	PitchTitle    string
	Description   string
	Industry      string
	Stage         string // e.g. "seed", "series-a"; free-form, validated at the boundary.
	FundingAmount float64
	RoundType     *string // Optional round label, e.g. "SAFE", "priced".
	EquityOffered float64
	Region        string
	PitchDeckURL  *string // Public URL of the uploaded deck, when one was provided.
	PitchDeckKey  *string // Storage key of the deck, kept for later deletion.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
