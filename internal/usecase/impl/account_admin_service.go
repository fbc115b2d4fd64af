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

// accountAdminService implements the AccountAdminUsecase interface.
type accountAdminService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewAccountAdminService is the constructor for accountAdminService.
func NewAccountAdminService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.AccountAdminUsecase {
	return &accountAdminService{
		txManager: txManager,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountAdminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetAccount retrieves one account.
func (srv *accountAdminService) GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var account *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AccountRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(err, "failed to find account")
		}
		account = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// ListAccounts retrieves accounts matching the filter, newest first.
func (srv *accountAdminService) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*entity.Account, error) {
	var accounts []*entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AccountRepo().List(ctx, repository.AccountFilter{
			Role:     input.Role,
			IsActive: input.IsActive,
		})
		if err != nil {
			return errors.Wrap(err, "failed to list accounts")
		}
		accounts = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list accounts", slog.Any("error", err))

		return nil, err
	}

	return accounts, nil
}

// UpdateAccount applies the given field changes.
func (srv *accountAdminService) UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (*entity.Account, error) {
	srv.log(ctx).Info("Updating account", slog.Any("account_id", input.ID))

	var account *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		found, err := accountRepo.FindByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(err, "failed to find account")
		}

		if input.FullName != nil {
			found.FullName = *input.FullName
		}
		if input.IsActive != nil {
			found.IsActive = *input.IsActive
			// Deactivation ends the active session as well.
			if !*input.IsActive {
				found.ClearRefreshTokenHash()
			}
		}

		if err := accountRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update account")
		}
		account = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update account", slog.Any("error", err), slog.Any("account_id", input.ID))

		return nil, err
	}

	return account, nil
}

// DeleteAccount removes an account permanently.
func (srv *accountAdminService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting account", slog.Any("account_id", id))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.AccountRepo().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return err
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete account", slog.Any("error", err), slog.Any("account_id", id))

		return err
	}

	return nil
}
