// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"ideamatch/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrIdeaNotFound is returned when an idea does not exist.
var ErrIdeaNotFound = errors.New("idea not found")

// IdeaQuery describes the filters, ordering and pagination capital providers
// use when browsing ideas. Zero values mean "no constraint".
type IdeaQuery struct {
	FounderID  uuid.UUID // Restrict to one submitter's ideas; uuid.Nil means all.
	Industry   string
	Stage      string
	Region     string
	MinFunding float64
	MaxFunding float64
	Search     string // Case-insensitive match over startup name and pitch title.
	Page       int
	Limit      int
	SortBy     string // Whitelisted column; defaults to created_at.
	Descending bool
}

// IdeaRepository persists startup pitches.
type IdeaRepository interface {
	// Create persists a new idea.
	Create(ctx context.Context, idea *entity.Idea) error

	// FindByID retrieves a single idea.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Idea, error)

	// Search returns the matching page of ideas plus the total match count.
	Search(ctx context.Context, query IdeaQuery) ([]*entity.Idea, int64, error)
}
