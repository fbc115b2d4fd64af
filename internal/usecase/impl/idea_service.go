package impl

import (
	"context"
	"log/slog"
	"path"
	"strings"

	deliverycontext "ideamatch/internal/delivery/context"
	"ideamatch/internal/domain/entity"
	domainerrors "ideamatch/internal/domain/errors"
	"ideamatch/internal/domain/repository"
	"ideamatch/internal/domain/service"
	"ideamatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ideaService implements the IdeaUsecase interface.
type ideaService struct {
	txManager repository.TransactionManager
	storage   service.FileStorage
	logger    *slog.Logger
}

// NewIdeaService is the constructor for ideaService.
func NewIdeaService(
	txManager repository.TransactionManager,
	storage service.FileStorage,
	logger *slog.Logger,
) usecase.IdeaUsecase {
	return &ideaService{
		txManager: txManager,
		storage:   storage,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *ideaService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateIdea publishes a pitch for the founder. When a deck is attached it is
// uploaded before the row is written; a failed write deletes the orphan blob.
func (srv *ideaService) CreateIdea(ctx context.Context, input usecase.CreateIdeaInput) (*entity.Idea, error) {
	srv.log(ctx).Info("Creating idea", slog.Any("founder_id", input.FounderID), slog.String("startup", input.StartupName))

	idea := &entity.Idea{
		FounderID:     input.FounderID,
		StartupName:   input.StartupName,
		PitchTitle:    input.PitchTitle,
		Description:   input.Description,
		Industry:      input.Industry,
		Stage:         input.Stage,
		FundingAmount: input.FundingAmount,
		RoundType:     input.RoundType,
		EquityOffered: input.EquityOffered,
		Region:        input.Region,
	}

	var deckKey string
	if input.PitchDeck != nil {
		key := pitchDeckKey(input.FounderID, input.PitchDeck.Filename)
		deckURL, err := srv.storage.Upload(ctx, key, input.PitchDeck.ContentType, input.PitchDeck.Content)
		if err != nil {
			srv.log(ctx).Error("Failed to upload pitch deck", slog.Any("error", err), slog.Any("founder_id", input.FounderID))

			return nil, errors.Wrap(err, "failed to upload pitch deck")
		}
		deckKey = key
		idea.PitchDeckURL = &deckURL
		idea.PitchDeckKey = &key
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		ideaRepo := repoFactory.IdeaRepo()

		founder, err := accountRepo.FindByID(ctx, input.FounderID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(err, "failed to find founder")
		}

		if founder.Role != entity.RoleIdeaSubmitter {
			return domainerrors.ErrRoleNotAllowed
		}

		return ideaRepo.Create(ctx, idea)
	})
	if err != nil {
		if deckKey != "" {
			if delErr := srv.storage.Delete(ctx, deckKey); delErr != nil {
				srv.log(ctx).Warn("Failed to delete orphan pitch deck", slog.Any("error", delErr), slog.String("key", deckKey))
			}
		}
		srv.log(ctx).Error("Failed to create idea", slog.Any("error", err), slog.Any("founder_id", input.FounderID))

		return nil, err
	}

	srv.log(ctx).Info("Idea created", slog.Any("idea_id", idea.ID), slog.Any("founder_id", input.FounderID))

	return idea, nil
}

// GetIdea retrieves a single pitch.
func (srv *ideaService) GetIdea(ctx context.Context, id uuid.UUID) (*entity.Idea, error) {
	var idea *entity.Idea

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.IdeaRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrIdeaNotFound) {
				return domainerrors.ErrIdeaNotFound
			}

			return errors.Wrap(err, "failed to find idea")
		}
		idea = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return idea, nil
}

// ListMyIdeas returns the founder's own pitches, newest first.
func (srv *ideaService) ListMyIdeas(ctx context.Context, founderID uuid.UUID) ([]*entity.Idea, error) {
	var ideas []*entity.Idea

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, _, err := repoFactory.IdeaRepo().Search(ctx, repository.IdeaQuery{
			FounderID:  founderID,
			SortBy:     "created_at",
			Descending: true,
			Limit:      100,
		})
		if err != nil {
			return errors.Wrap(err, "failed to list ideas")
		}
		ideas = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list ideas", slog.Any("error", err), slog.Any("founder_id", founderID))

		return nil, err
	}

	return ideas, nil
}

// pitchDeckKey builds a collision-free storage key keeping the original extension.
func pitchDeckKey(founderID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))

	return "pitch-decks/" + founderID.String() + "/" + uuid.New().String() + ext
}
