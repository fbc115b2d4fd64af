package auth

import (
	"testing"
	"time"

	"ideamatch/config"
	"ideamatch/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret-for-tests"
	cfg.SecretKey.Refresh = "refresh-secret-for-tests"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	return cfg
}

func jwtTestAccount() *entity.Account {
	return &entity.Account{
		ID:    uuid.New(),
		Email: "claims@example.com",
		Role:  entity.RoleCapitalProvider,
	}
}

func TestNewJWTService_RejectsBadSecrets(t *testing.T) {
	cfg := jwtTestConfig()
	cfg.SecretKey.Access = ""
	_, err := NewJWTService(cfg)
	assert.Error(t, err)

	cfg = jwtTestConfig()
	cfg.SecretKey.Refresh = cfg.SecretKey.Access
	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_GenerateTokenPair_ClaimsRoundTrip(t *testing.T) {
	service, err := NewJWTService(jwtTestConfig())
	require.NoError(t, err)

	account := jwtTestAccount()
	access, refresh, err := service.GenerateTokenPair(account)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	claims, err := service.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.UserID)
	assert.Equal(t, account.Email, claims.Email)
	assert.Equal(t, entity.RoleCapitalProvider, claims.Role)
	assert.Equal(t, "access", claims.Type)

	claims, err = service.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.UserID)
	assert.Equal(t, "refresh", claims.Type)
}

func TestJWTService_Verify_RejectsCrossTypeTokens(t *testing.T) {
	service, err := NewJWTService(jwtTestConfig())
	require.NoError(t, err)

	access, refresh, err := service.GenerateTokenPair(jwtTestAccount())
	require.NoError(t, err)

	_, err = service.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = service.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_Verify_RejectsForeignSignature(t *testing.T) {
	service, err := NewJWTService(jwtTestConfig())
	require.NoError(t, err)

	other := jwtTestConfig()
	other.SecretKey.Access = "a-different-access-secret"
	other.SecretKey.Refresh = "a-different-refresh-secret"
	foreignService, err := NewJWTService(other)
	require.NoError(t, err)

	access, _, err := foreignService.GenerateTokenPair(jwtTestAccount())
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_Verify_RejectsGarbage(t *testing.T) {
	service, err := NewJWTService(jwtTestConfig())
	require.NoError(t, err)

	_, err = service.VerifyAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = service.VerifyAccessToken("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_SameSecondTokensDiffer(t *testing.T) {
	service, err := NewJWTService(jwtTestConfig())
	require.NoError(t, err)

	account := jwtTestAccount()
	_, first, err := service.GenerateTokenPair(account)
	require.NoError(t, err)
	_, second, err := service.GenerateTokenPair(account)
	require.NoError(t, err)

	// Rotation relies on superseded tokens never matching the new one.
	assert.NotEqual(t, first, second)
}

func TestJWTService_RefreshTokenDuration(t *testing.T) {
	service, err := NewJWTService(jwtTestConfig())
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, service.RefreshTokenDuration())
}
