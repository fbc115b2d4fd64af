package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"ideamatch/config"
	deliverycontext "ideamatch/internal/delivery/context"
	domainerrors "ideamatch/internal/domain/errors"
	"ideamatch/internal/domain/repository"
	"ideamatch/internal/domain/service"
	"ideamatch/internal/usecase"

	"github.com/pkg/errors"
)

// passwordResetService implements the PasswordResetUsecase interface.
type passwordResetService struct {
	txManager       repository.TransactionManager
	hasher          service.CredentialHasher
	mailer          service.MailService
	resetTTL        time.Duration
	frontendBaseURL string
	logger          *slog.Logger
}

// NewPasswordResetService is the constructor for passwordResetService.
func NewPasswordResetService(
	txManager repository.TransactionManager,
	hasher service.CredentialHasher,
	mailer service.MailService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.PasswordResetUsecase {
	frontendBaseURL := ""
	if cfg.Mail != nil {
		frontendBaseURL = strings.TrimRight(cfg.Mail.FrontendBaseURL, "/")
	}

	return &passwordResetService{
		txManager:       txManager,
		hasher:          hasher,
		mailer:          mailer,
		resetTTL:        cfg.Auth.ResetTokenTTL,
		frontendBaseURL: frontendBaseURL,
		logger:          logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *passwordResetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RequestReset starts a reset cycle for a verified account. Unknown and
// unverified emails return the same success as known ones, so the endpoint
// reveals nothing about which addresses exist.
func (srv *passwordResetService) RequestReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	srv.log(ctx).Info("Password reset requested", slog.String("email", email))

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	tokenHash, err := srv.hasher.Hash(token)
	if err != nil {
		return errors.Wrap(err, "failed to hash reset token")
	}

	eligible := false

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to look up email")
		}

		if !account.EmailVerified || !account.IsActive {
			return nil
		}

		account.SetResetToken(tokenHash, time.Now().Add(srv.resetTTL))
		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to store reset token")
		}
		eligible = true

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to start reset cycle", slog.Any("error", err), slog.String("email", email))

		return err
	}

	if !eligible {
		// Same outward result as the happy path.
		return nil
	}

	resetURL := srv.frontendBaseURL + "/reset-password?email=" + url.QueryEscape(email) + "&token=" + token
	if err := srv.mailer.SendResetLink(ctx, email, resetURL); err != nil {
		srv.log(ctx).Error("Failed to send reset mail", slog.Any("error", err), slog.String("email", email))

		return domainerrors.ErrNotificationFailed.WrapMessage("failed to send reset mail")
	}

	return nil
}

// ResetPassword consumes the reset token and replaces the password. Every
// failure mode returns the same flat error, so a caller cannot tell a wrong
// token from an expired or absent one.
func (srv *passwordResetService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	srv.log(ctx).Info("Password reset submitted", slog.String("email", email))

	passwordHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrResetTokenInvalid
			}

			return errors.Wrap(err, "failed to look up email")
		}

		if account.ResetTokenHash == nil {
			return domainerrors.ErrResetTokenInvalid
		}

		// A stale token is extinguished on sight so it cannot be retried.
		if account.ResetTokenExpired(time.Now()) {
			account.ClearResetToken()
			if err := accountRepo.Update(ctx, account); err != nil {
				return errors.Wrap(err, "failed to clear expired reset token")
			}

			return domainerrors.ErrResetTokenInvalid
		}

		if !srv.hasher.Check(input.Token, *account.ResetTokenHash) {
			return domainerrors.ErrResetTokenInvalid
		}

		account.PasswordHash = passwordHash
		account.ClearResetToken()
		// The old credential may have an open session; kill it.
		account.ClearRefreshTokenHash()

		return accountRepo.Update(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Warn("Password reset failed", slog.Any("error", err), slog.String("email", email))

		return err
	}

	srv.log(ctx).Info("Password reset completed", slog.String("email", email))

	return nil
}
