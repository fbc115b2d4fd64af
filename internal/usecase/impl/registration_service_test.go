package impl

import (
	"context"
	"net/http"
	"testing"
	"time"

	"ideamatch/internal/domain/entity"
	domainerrors "ideamatch/internal/domain/errors"
	"ideamatch/internal/infra/auth"
	"ideamatch/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationFixtures struct {
	service  usecase.RegistrationUsecase
	accounts *fakeAccountRepo
	mailer   *recordingMailer
}

func createTestRegistrationService(t *testing.T) registrationFixtures {
	t.Helper()

	cfg := testConfig()
	accounts := newFakeAccountRepo()
	factory := &stubFactory{
		accounts: accounts,
		ideas:    newFakeIdeaRepo(),
		profiles: newFakeInvestorProfileRepo(),
	}
	mailer := newRecordingMailer()
	hasher := auth.NewBcryptHasher(cfg)

	service := NewRegistrationService(&stubTxManager{factory: factory}, hasher, mailer, cfg, discardLogger())

	return registrationFixtures{
		service:  service,
		accounts: accounts,
		mailer:   mailer,
	}
}

func registerTestAccount(t *testing.T, fx registrationFixtures, email string, role entity.Role) {
	t.Helper()

	_, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		FullName: "Test Person",
		Email:    email,
		Password: "Password123!",
		Role:     role,
	})
	require.NoError(t, err)
}

func TestRegistrationService_Register_CreatesUnverifiedAccountAndMailsOTP(t *testing.T) {
	fx := createTestRegistrationService(t)

	output, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		FullName: "Ada Founder",
		Email:    "Ada@Example.com",
		Password: "Password123!",
		Role:     entity.RoleIdeaSubmitter,
	})

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", output.Email)

	stored := fx.accounts.getByEmail("ada@example.com")
	require.NotNil(t, stored)
	assert.False(t, stored.EmailVerified)
	assert.True(t, stored.IsActive)
	assert.Equal(t, entity.RoleIdeaSubmitter, stored.Role)
	assert.Equal(t, entity.ProviderLocal, stored.Provider)
	require.NotNil(t, stored.OTPHash)
	assert.NotEqual(t, "Password123!", stored.PasswordHash)

	otp := fx.mailer.lastOTP("ada@example.com")
	require.Len(t, otp, 6)
	// The passcode is stored only as a hash.
	assert.NotEqual(t, otp, *stored.OTPHash)
}

func TestRegistrationService_Register_VerifiedEmailConflicts(t *testing.T) {
	fx := createTestRegistrationService(t)

	registerTestAccount(t, fx, "taken@example.com", entity.RoleIdeaSubmitter)

	otp := fx.mailer.lastOTP("taken@example.com")
	require.NoError(t, fx.service.VerifyEmail(context.Background(), usecase.VerifyEmailInput{
		Email: "taken@example.com",
		OTP:   otp,
	}))

	_, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		FullName: "Second Try",
		Email:    "taken@example.com",
		Password: "OtherPassword1!",
		Role:     entity.RoleCapitalProvider,
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailConflict)
}

func TestRegistrationService_Register_UnverifiedAccountIsOverwritten(t *testing.T) {
	fx := createTestRegistrationService(t)

	registerTestAccount(t, fx, "pending@example.com", entity.RoleIdeaSubmitter)
	firstOTP := fx.mailer.lastOTP("pending@example.com")

	_, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		FullName: "New Name",
		Email:    "pending@example.com",
		Password: "FreshPassword1!",
		Role:     entity.RoleCapitalProvider,
	})
	require.NoError(t, err)

	stored := fx.accounts.getByEmail("pending@example.com")
	assert.Equal(t, "New Name", stored.FullName)
	assert.Equal(t, entity.RoleCapitalProvider, stored.Role)
	assert.False(t, stored.EmailVerified)

	// The first OTP died with the overwrite.
	err = fx.service.VerifyEmail(context.Background(), usecase.VerifyEmailInput{
		Email: "pending@example.com",
		OTP:   firstOTP,
	})
	if firstOTP != fx.mailer.lastOTP("pending@example.com") {
		assert.ErrorIs(t, err, domainerrors.ErrInvalidOTP)
	}
}

func TestRegistrationService_VerifyEmail_Succeeds(t *testing.T) {
	fx := createTestRegistrationService(t)

	registerTestAccount(t, fx, "verify@example.com", entity.RoleIdeaSubmitter)
	otp := fx.mailer.lastOTP("verify@example.com")

	err := fx.service.VerifyEmail(context.Background(), usecase.VerifyEmailInput{
		Email: "verify@example.com",
		OTP:   otp,
	})
	require.NoError(t, err)

	stored := fx.accounts.getByEmail("verify@example.com")
	assert.True(t, stored.EmailVerified)
	assert.Nil(t, stored.OTPHash)
	assert.Nil(t, stored.OTPExpiresAt)
}

func TestRegistrationService_VerifyEmail_OTPIsSingleUse(t *testing.T) {
	fx := createTestRegistrationService(t)

	registerTestAccount(t, fx, "once@example.com", entity.RoleIdeaSubmitter)
	otp := fx.mailer.lastOTP("once@example.com")

	require.NoError(t, fx.service.VerifyEmail(context.Background(), usecase.VerifyEmailInput{
		Email: "once@example.com",
		OTP:   otp,
	}))

	// The code was consumed on success; replaying it is an unauthorized
	// request, same as any OTP with no pending cycle behind it.
	err := fx.service.VerifyEmail(context.Background(), usecase.VerifyEmailInput{
		Email: "once@example.com",
		OTP:   otp,
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidOTPRequest)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
}

func TestRegistrationService_VerifyEmail_WrongOTP(t *testing.T) {
	fx := createTestRegistrationService(t)

	registerTestAccount(t, fx, "wrong@example.com", entity.RoleIdeaSubmitter)

	otp := fx.mailer.lastOTP("wrong@example.com")
	wrong := "000000"
	if otp == wrong {
		wrong = "000001"
	}

	err := fx.service.VerifyEmail(context.Background(), usecase.VerifyEmailInput{
		Email: "wrong@example.com",
		OTP:   wrong,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOTP)

	stored := fx.accounts.getByEmail("wrong@example.com")
	assert.False(t, stored.EmailVerified)
}

func TestRegistrationService_VerifyEmail_ExpiredOTPIsExtinguished(t *testing.T) {
	fx := createTestRegistrationService(t)

	registerTestAccount(t, fx, "late@example.com", entity.RoleIdeaSubmitter)
	otp := fx.mailer.lastOTP("late@example.com")

	// Force the cycle past its deadline.
	stored := fx.accounts.getByEmail("late@example.com")
	past := time.Now().Add(-time.Minute)
	stored.OTPExpiresAt = &past
	require.NoError(t, fx.accounts.Update(context.Background(), stored))

	err := fx.service.VerifyEmail(context.Background(), usecase.VerifyEmailInput{
		Email: "late@example.com",
		OTP:   otp,
	})
	assert.ErrorIs(t, err, domainerrors.ErrOTPExpired)

	// The expired code is gone; retrying with the right digits now fails as
	// "no pending request", not as expired.
	err = fx.service.VerifyEmail(context.Background(), usecase.VerifyEmailInput{
		Email: "late@example.com",
		OTP:   otp,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOTPRequest)
}

func TestRegistrationService_VerifyEmail_UnknownEmail(t *testing.T) {
	fx := createTestRegistrationService(t)

	err := fx.service.VerifyEmail(context.Background(), usecase.VerifyEmailInput{
		Email: "ghost@example.com",
		OTP:   "123456",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOTPRequest)
}

func TestRegistrationService_ResendOTP_SupersedesPendingCode(t *testing.T) {
	fx := createTestRegistrationService(t)

	registerTestAccount(t, fx, "resend@example.com", entity.RoleIdeaSubmitter)
	firstOTP := fx.mailer.lastOTP("resend@example.com")

	output, err := fx.service.ResendOTP(context.Background(), usecase.ResendOTPInput{Email: "resend@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "resend@example.com", output.Email)

	secondOTP := fx.mailer.lastOTP("resend@example.com")
	require.Len(t, secondOTP, 6)

	// The fresh code verifies; the old one is dead unless the draw repeated.
	if firstOTP != secondOTP {
		err = fx.service.VerifyEmail(context.Background(), usecase.VerifyEmailInput{
			Email: "resend@example.com",
			OTP:   firstOTP,
		})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidOTP)
	}

	require.NoError(t, fx.service.VerifyEmail(context.Background(), usecase.VerifyEmailInput{
		Email: "resend@example.com",
		OTP:   secondOTP,
	}))
}

func TestRegistrationService_ResendOTP_VerifiedAccountRejected(t *testing.T) {
	fx := createTestRegistrationService(t)

	registerTestAccount(t, fx, "done@example.com", entity.RoleIdeaSubmitter)
	otp := fx.mailer.lastOTP("done@example.com")
	require.NoError(t, fx.service.VerifyEmail(context.Background(), usecase.VerifyEmailInput{
		Email: "done@example.com",
		OTP:   otp,
	}))

	_, err := fx.service.ResendOTP(context.Background(), usecase.ResendOTPInput{Email: "done@example.com"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyVerified)
}

func TestRegistrationService_ResendOTP_UnknownEmail(t *testing.T) {
	fx := createTestRegistrationService(t)

	_, err := fx.service.ResendOTP(context.Background(), usecase.ResendOTPInput{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestRegistrationService_Register_MailFailureSurfaces(t *testing.T) {
	fx := createTestRegistrationService(t)
	fx.mailer.failNext = true

	_, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		FullName: "No Mail",
		Email:    "nomail@example.com",
		Password: "Password123!",
		Role:     entity.RoleIdeaSubmitter,
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotificationFailed)
}
