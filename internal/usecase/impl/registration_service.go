// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ideamatch/config"
	deliverycontext "ideamatch/internal/delivery/context"
	"ideamatch/internal/domain/entity"
	domainerrors "ideamatch/internal/domain/errors"
	"ideamatch/internal/domain/repository"
	"ideamatch/internal/domain/service"
	"ideamatch/internal/usecase"

	"github.com/pkg/errors"
)

// registrationService implements the RegistrationUsecase interface.
type registrationService struct {
	txManager repository.TransactionManager
	hasher    service.CredentialHasher
	mailer    service.MailService
	otpTTL    time.Duration
	logger    *slog.Logger
}

// NewRegistrationService is the constructor for registrationService.
func NewRegistrationService(
	txManager repository.TransactionManager,
	hasher service.CredentialHasher,
	mailer service.MailService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.RegistrationUsecase {
	return &registrationService{
		txManager: txManager,
		hasher:    hasher,
		mailer:    mailer,
		otpTTL:    cfg.Auth.OTPTTL,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *registrationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new unverified account, or overwrites an existing
// unverified one, and mails a fresh OTP. A verified account with the same
// email is a conflict.
func (srv *registrationService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	srv.log(ctx).Info("Registering account", slog.String("email", email), slog.String("role", input.Role.String()))

	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}

	otpHash, err := srv.hasher.Hash(otp)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash OTP")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	expiresAt := time.Now().Add(srv.otpTTL)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// 1. Check what already exists under this email.
		existing, err := accountRepo.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to look up email")
		}

		// 2. A verified account owns the email for good.
		if existing != nil && existing.EmailVerified {
			return domainerrors.ErrEmailConflict
		}

		// 3. An unverified leftover is overwritten in place, so an abandoned
		// signup never blocks the address.
		if existing != nil {
			existing.FullName = input.FullName
			existing.Role = input.Role
			existing.PasswordHash = passwordHash
			existing.SetOTP(otpHash, expiresAt)

			return accountRepo.Update(ctx, existing)
		}

		account := &entity.Account{
			Email:        email,
			FullName:     input.FullName,
			Role:         input.Role,
			Provider:     entity.ProviderLocal,
			PasswordHash: passwordHash,
			IsActive:     true,
		}
		account.SetOTP(otpHash, expiresAt)

		return accountRepo.Create(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to register account", slog.Any("error", err), slog.String("email", email))

		return nil, err
	}

	// Mail outside the transaction; the plaintext OTP is never stored.
	if err := srv.mailer.SendOTP(ctx, email, otp); err != nil {
		srv.log(ctx).Error("Failed to send OTP mail", slog.Any("error", err), slog.String("email", email))

		return nil, domainerrors.ErrNotificationFailed.WrapMessage("failed to send OTP mail")
	}

	srv.log(ctx).Info("Registration pending verification", slog.String("email", email))

	return &usecase.RegisterOutput{Email: email, OTPExpiresAt: expiresAt}, nil
}

// VerifyEmail consumes the pending OTP and marks the account verified.
func (srv *registrationService) VerifyEmail(ctx context.Context, input usecase.VerifyEmailInput) error {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	srv.log(ctx).Info("Verifying email", slog.String("email", email))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrInvalidOTPRequest
			}

			return errors.Wrap(err, "failed to look up email")
		}

		// A verified account has no pending cycle, so a replayed or stray
		// OTP lands here too.
		if !account.HasPendingOTP() {
			return domainerrors.ErrInvalidOTPRequest
		}

		// An expired passcode is dead even if the digits match; it is
		// extinguished so the same code can never be retried.
		if account.OTPExpired(time.Now()) {
			account.ClearOTP()
			if err := accountRepo.Update(ctx, account); err != nil {
				return errors.Wrap(err, "failed to clear expired OTP")
			}

			return domainerrors.ErrOTPExpired
		}

		if !srv.hasher.Check(input.OTP, *account.OTPHash) {
			return domainerrors.ErrInvalidOTP
		}

		account.EmailVerified = true
		account.ClearOTP()

		return accountRepo.Update(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Warn("Email verification failed", slog.Any("error", err), slog.String("email", email))

		return err
	}

	srv.log(ctx).Info("Email verified", slog.String("email", email))

	return nil
}

// ResendOTP supersedes the pending passcode with a fresh one.
func (srv *registrationService) ResendOTP(ctx context.Context, input usecase.ResendOTPInput) (*usecase.RegisterOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	srv.log(ctx).Info("Resending OTP", slog.String("email", email))

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}

	otpHash, err := srv.hasher.Hash(otp)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash OTP")
	}

	expiresAt := time.Now().Add(srv.otpTTL)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(err, "failed to look up email")
		}

		if account.EmailVerified {
			return domainerrors.ErrAlreadyVerified
		}

		account.SetOTP(otpHash, expiresAt)

		return accountRepo.Update(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to resend OTP", slog.Any("error", err), slog.String("email", email))

		return nil, err
	}

	if err := srv.mailer.SendOTP(ctx, email, otp); err != nil {
		srv.log(ctx).Error("Failed to send OTP mail", slog.Any("error", err), slog.String("email", email))

		return nil, domainerrors.ErrNotificationFailed.WrapMessage("failed to send OTP mail")
	}

	return &usecase.RegisterOutput{Email: email, OTPExpiresAt: expiresAt}, nil
}
