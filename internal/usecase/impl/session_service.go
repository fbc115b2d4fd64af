package impl

import (
	"context"
	"log/slog"
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

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager    repository.TransactionManager
	hasher       service.CredentialHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	txManager repository.TransactionManager,
	hasher service.CredentialHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		txManager:    txManager,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the password and opens the account's single session.
// Unknown email and wrong password fail with the same flat error.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	srv.log(ctx).Info("Login attempt", slog.String("email", email))

	var output *usecase.TokenPairOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to look up email")
		}

		// Only the local-password pathway can log in here.
		if account.Provider != entity.ProviderLocal || account.PasswordHash == "" {
			return domainerrors.ErrInvalidCredentials
		}

		// Checked before the password so the outcome does not depend on
		// password correctness.
		if !account.EmailVerified {
			return domainerrors.ErrEmailNotVerified
		}

		if !srv.hasher.Check(input.Password, account.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}
		if !account.IsActive {
			return domainerrors.ErrAccountDisabled
		}

		pair, err := srv.issueSession(ctx, accountRepo, account)
		if err != nil {
			return err
		}
		output = pair

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.Any("error", err), slog.String("email", email))

		return nil, err
	}

	srv.log(ctx).Info("Login succeeded", slog.String("email", email), slog.Any("user_id", output.User.ID))

	return output, nil
}

// Refresh rotates the session. The presented refresh token must match the
// stored hash; any discrepancy fails with the same flat error.
func (srv *sessionService) Refresh(ctx context.Context, userID uuid.UUID, refreshToken string) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Debug("Refreshing session", slog.Any("user_id", userID))

	var output *usecase.TokenPairOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccessDenied
			}

			return errors.Wrap(err, "failed to find account")
		}

		if !account.IsActive {
			return domainerrors.ErrAccessDenied
		}
		if account.RefreshTokenHash == nil {
			return domainerrors.ErrAccessDenied
		}
		if !srv.hasher.CheckToken(refreshToken, *account.RefreshTokenHash) {
			return domainerrors.ErrAccessDenied
		}

		pair, err := srv.issueSession(ctx, accountRepo, account)
		if err != nil {
			return err
		}
		output = pair

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Refresh failed", slog.Any("error", err), slog.Any("user_id", userID))

		return nil, err
	}

	srv.log(ctx).Debug("Session refreshed", slog.Any("user_id", userID))

	return output, nil
}

// Logout clears the stored refresh-token hash. An account that is already
// logged out stays logged out; the call still succeeds.
func (srv *sessionService) Logout(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Info("Logging out", slog.Any("user_id", userID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccessDenied
			}

			return errors.Wrap(err, "failed to find account")
		}

		if account.RefreshTokenHash == nil {
			return nil
		}

		account.ClearRefreshTokenHash()

		return accountRepo.Update(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Warn("Logout failed", slog.Any("error", err), slog.Any("user_id", userID))

		return err
	}

	return nil
}

// issueSession signs a fresh token pair and stores the new refresh-token
// hash, invalidating whichever token was active before.
func (srv *sessionService) issueSession(ctx context.Context, accountRepo repository.AccountRepository, account *entity.Account) (*usecase.TokenPairOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokenPair(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token pair")
	}

	refreshHash, err := srv.hasher.HashToken(refreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash refresh token")
	}

	account.SetRefreshTokenHash(refreshHash)
	if err := accountRepo.Update(ctx, account); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token hash")
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         account.Public(),
	}, nil
}
