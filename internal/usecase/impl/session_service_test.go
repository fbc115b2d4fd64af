package impl

import (
	"context"
	"testing"

	"ideamatch/internal/domain/entity"
	domainerrors "ideamatch/internal/domain/errors"
	"ideamatch/internal/domain/service"
	"ideamatch/internal/infra/auth"
	"ideamatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixtures struct {
	service      usecase.SessionUsecase
	registration usecase.RegistrationUsecase
	accounts     *fakeAccountRepo
	mailer       *recordingMailer
	tokenService service.TokenService
}

func createTestSessionService(t *testing.T) sessionFixtures {
	t.Helper()

	cfg := testConfig()
	accounts := newFakeAccountRepo()
	factory := &stubFactory{
		accounts: accounts,
		ideas:    newFakeIdeaRepo(),
		profiles: newFakeInvestorProfileRepo(),
	}
	txManager := &stubTxManager{factory: factory}
	mailer := newRecordingMailer()
	hasher := auth.NewBcryptHasher(cfg)

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return sessionFixtures{
		service:      NewSessionService(txManager, hasher, tokenService, discardLogger()),
		registration: NewRegistrationService(txManager, hasher, mailer, cfg, discardLogger()),
		accounts:     accounts,
		mailer:       mailer,
		tokenService: tokenService,
	}
}

// createVerifiedAccount walks the registration handshake so login tests run
// against the same state production accounts are in.
func createVerifiedAccount(t *testing.T, fx sessionFixtures, email, password string, role entity.Role) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	_, err := fx.registration.Register(ctx, usecase.RegisterInput{
		FullName: "Session Tester",
		Email:    email,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)

	require.NoError(t, fx.registration.VerifyEmail(ctx, usecase.VerifyEmailInput{
		Email: email,
		OTP:   fx.mailer.lastOTP(email),
	}))

	return fx.accounts.getByEmail(email).ID
}

func TestSessionService_Login_IssuesVerifiableTokenPair(t *testing.T) {
	fx := createTestSessionService(t)
	userID := createVerifiedAccount(t, fx, "login@example.com", "Password123!", entity.RoleIdeaSubmitter)

	output, err := fx.service.Login(context.Background(), usecase.LoginInput{
		Email:    "login@example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	require.NotNil(t, output.User)
	assert.Equal(t, userID, output.User.ID)
	assert.Equal(t, "login@example.com", output.User.Email)

	accessClaims, err := fx.tokenService.VerifyAccessToken(output.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, entity.RoleIdeaSubmitter, accessClaims.Role)

	refreshClaims, err := fx.tokenService.VerifyRefreshToken(output.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)

	// Tokens never pass the other verifier.
	_, err = fx.tokenService.VerifyRefreshToken(output.AccessToken)
	assert.Error(t, err)
	_, err = fx.tokenService.VerifyAccessToken(output.RefreshToken)
	assert.Error(t, err)

	// Only the hash of the refresh token is stored.
	stored := fx.accounts.get(userID)
	require.NotNil(t, stored.RefreshTokenHash)
	assert.NotEqual(t, output.RefreshToken, *stored.RefreshTokenHash)
}

func TestSessionService_Login_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	fx := createTestSessionService(t)
	createVerifiedAccount(t, fx, "real@example.com", "Password123!", entity.RoleIdeaSubmitter)

	ctx := context.Background()

	_, errUnknown := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "Password123!",
	})
	_, errWrongPass := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "real@example.com",
		Password: "NotThePassword1!",
	})

	require.ErrorIs(t, errUnknown, domainerrors.ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPass, domainerrors.ErrInvalidCredentials)

	// A caller probing for registered emails sees the same message either way.
	var appErrUnknown, appErrWrong domainerrors.AppError
	require.ErrorAs(t, errUnknown, &appErrUnknown)
	require.ErrorAs(t, errWrongPass, &appErrWrong)
	assert.Equal(t, appErrUnknown.Message(), appErrWrong.Message())
	assert.Equal(t, appErrUnknown.HTTPCode(), appErrWrong.HTTPCode())
}

func TestSessionService_Login_UnverifiedAccountForbidden(t *testing.T) {
	fx := createTestSessionService(t)

	_, err := fx.registration.Register(context.Background(), usecase.RegisterInput{
		FullName: "Pending",
		Email:    "pending@example.com",
		Password: "Password123!",
		Role:     entity.RoleIdeaSubmitter,
	})
	require.NoError(t, err)

	_, err = fx.service.Login(context.Background(), usecase.LoginInput{
		Email:    "pending@example.com",
		Password: "Password123!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailNotVerified)

	// The outcome does not depend on password correctness.
	_, err = fx.service.Login(context.Background(), usecase.LoginInput{
		Email:    "pending@example.com",
		Password: "NotThePassword1!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailNotVerified)
}

func TestSessionService_Login_DisabledAccountForbidden(t *testing.T) {
	fx := createTestSessionService(t)
	userID := createVerifiedAccount(t, fx, "disabled@example.com", "Password123!", entity.RoleIdeaSubmitter)

	stored := fx.accounts.get(userID)
	stored.IsActive = false
	require.NoError(t, fx.accounts.Update(context.Background(), stored))

	_, err := fx.service.Login(context.Background(), usecase.LoginInput{
		Email:    "disabled@example.com",
		Password: "Password123!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAccountDisabled)
}

func TestSessionService_Refresh_RotatesToken(t *testing.T) {
	fx := createTestSessionService(t)
	userID := createVerifiedAccount(t, fx, "rotate@example.com", "Password123!", entity.RoleIdeaSubmitter)

	ctx := context.Background()
	first, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "rotate@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	second, err := fx.service.Refresh(ctx, userID, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The superseded token is dead; the new one still works.
	_, err = fx.service.Refresh(ctx, userID, first.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrAccessDenied)

	_, err = fx.service.Refresh(ctx, userID, second.RefreshToken)
	require.NoError(t, err)
}

func TestSessionService_Refresh_AfterLogoutDenied(t *testing.T) {
	fx := createTestSessionService(t)
	userID := createVerifiedAccount(t, fx, "logout@example.com", "Password123!", entity.RoleIdeaSubmitter)

	ctx := context.Background()
	pair, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "logout@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(ctx, userID))

	_, err = fx.service.Refresh(ctx, userID, pair.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrAccessDenied)
}

func TestSessionService_Refresh_UnknownAccountDenied(t *testing.T) {
	fx := createTestSessionService(t)

	_, err := fx.service.Refresh(context.Background(), uuid.New(), "whatever")
	assert.ErrorIs(t, err, domainerrors.ErrAccessDenied)
}

func TestSessionService_Logout_IsIdempotent(t *testing.T) {
	fx := createTestSessionService(t)
	userID := createVerifiedAccount(t, fx, "idem@example.com", "Password123!", entity.RoleIdeaSubmitter)

	ctx := context.Background()
	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "idem@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(ctx, userID))
	require.NoError(t, fx.service.Logout(ctx, userID))

	assert.Nil(t, fx.accounts.get(userID).RefreshTokenHash)
}

func TestSessionService_NewLoginSupersedesPreviousSession(t *testing.T) {
	fx := createTestSessionService(t)
	userID := createVerifiedAccount(t, fx, "single@example.com", "Password123!", entity.RoleIdeaSubmitter)

	ctx := context.Background()
	first, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "single@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	second, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "single@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	// One live session per account: the earlier refresh token is dead.
	_, err = fx.service.Refresh(ctx, userID, first.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrAccessDenied)

	_, err = fx.service.Refresh(ctx, userID, second.RefreshToken)
	require.NoError(t, err)
}
