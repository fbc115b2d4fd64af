package usecase

import (
	"context"
	"io"

	"ideamatch/internal/domain/entity"

	"github.com/google/uuid"
)

// PitchDeckUpload carries an uploaded deck stream. Content is read once.
type PitchDeckUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// CreateIdeaInput defines the data an idea submitter provides for a new pitch.
type CreateIdeaInput struct {
	FounderID     uuid.UUID
	StartupName   string
	PitchTitle    string
	Description   string
	Industry      string
	Stage         string
	FundingAmount float64
	RoundType     *string
	EquityOffered float64
	Region        string
	PitchDeck     *PitchDeckUpload
}

// IdeaUsecase covers the idea-submitter side of the marketplace.
type IdeaUsecase interface {
	// CreateIdea publishes a pitch, uploading the deck first when one is attached.
	CreateIdea(ctx context.Context, input CreateIdeaInput) (*entity.Idea, error)

	// GetIdea retrieves a single pitch.
	GetIdea(ctx context.Context, id uuid.UUID) (*entity.Idea, error)

	// ListMyIdeas returns the submitter's own pitches, newest first.
	ListMyIdeas(ctx context.Context, founderID uuid.UUID) ([]*entity.Idea, error)
}
