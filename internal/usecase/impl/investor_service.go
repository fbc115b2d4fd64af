package impl

import (
	"context"
	"log/slog"

	deliverycontext "ideamatch/internal/delivery/context"
	"ideamatch/internal/domain/entity"
	domainerrors "ideamatch/internal/domain/errors"
	"ideamatch/internal/domain/repository"
	"ideamatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// investorService implements the InvestorUsecase interface.
type investorService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewInvestorService is the constructor for investorService.
func NewInvestorService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.InvestorUsecase {
	return &investorService{
		txManager: txManager,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *investorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CompleteOnboarding records the investor's preferences and marks the account
// onboarded. A second submission overwrites the existing profile.
func (srv *investorService) CompleteOnboarding(ctx context.Context, input usecase.OnboardingInput) (*entity.InvestorProfile, error) {
	srv.log(ctx).Info("Completing investor onboarding", slog.Any("account_id", input.AccountID))

	if input.MinFunding >= input.MaxFunding {
		return nil, domainerrors.ErrFundingRange
	}

	profile := &entity.InvestorProfile{
		AccountID:        input.AccountID,
		PreferredStages:  input.PreferredStages,
		Industries:       input.Industries,
		MinFunding:       input.MinFunding,
		MaxFunding:       input.MaxFunding,
		InvestmentThesis: input.InvestmentThesis,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		profileRepo := repoFactory.InvestorProfileRepo()

		account, err := accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(err, "failed to find account")
		}

		if account.Role != entity.RoleCapitalProvider {
			return domainerrors.ErrRoleNotAllowed
		}

		_, err = profileRepo.FindByAccountID(ctx, input.AccountID)
		switch {
		case err == nil:
			if err := profileRepo.Update(ctx, profile); err != nil {
				return errors.Wrap(err, "failed to update investor profile")
			}
		case errors.Is(err, repository.ErrInvestorProfileNotFound):
			if err := profileRepo.Create(ctx, profile); err != nil {
				return errors.Wrap(err, "failed to create investor profile")
			}
		default:
			return errors.Wrap(err, "failed to find investor profile")
		}

		if !account.IsOnboarded {
			account.IsOnboarded = true
			if err := accountRepo.Update(ctx, account); err != nil {
				return errors.Wrap(err, "failed to mark account onboarded")
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to complete onboarding", slog.Any("error", err), slog.Any("account_id", input.AccountID))

		return nil, err
	}

	srv.log(ctx).Info("Investor onboarding completed", slog.Any("account_id", input.AccountID))

	return profile, nil
}

// GetProfile retrieves the investor's own onboarding profile.
func (srv *investorService) GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.InvestorProfile, error) {
	var profile *entity.InvestorProfile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.InvestorProfileRepo().FindByAccountID(ctx, accountID)
		if err != nil {
			if errors.Is(err, repository.ErrInvestorProfileNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("investor profile not found")
			}

			return errors.Wrap(err, "failed to find investor profile")
		}
		profile = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// BrowseIdeas returns a filtered, paginated page of published pitches.
func (srv *investorService) BrowseIdeas(ctx context.Context, input usecase.BrowseIdeasInput) (*usecase.BrowseIdeasOutput, error) {
	if input.MinFunding > 0 && input.MaxFunding > 0 && input.MinFunding > input.MaxFunding {
		return nil, domainerrors.ErrFundingRange
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	var (
		ideas []*entity.Idea
		total int64
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, count, err := repoFactory.IdeaRepo().Search(ctx, repository.IdeaQuery{
			Industry:   input.Industry,
			Stage:      input.Stage,
			Region:     input.Region,
			MinFunding: input.MinFunding,
			MaxFunding: input.MaxFunding,
			Search:     input.Search,
			Page:       page,
			Limit:      limit,
			SortBy:     input.SortBy,
			Descending: input.Descending,
		})
		if err != nil {
			return errors.Wrap(err, "failed to search ideas")
		}
		ideas = found
		total = count

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to browse ideas", slog.Any("error", err))

		return nil, err
	}

	return &usecase.BrowseIdeasOutput{
		Ideas: ideas,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}
