package service

import (
	"time"

	"ideamatch/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by both session tokens.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   entity.Role
	Type   string // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenService issues and verifies the signed session token pair. Access and
// refresh tokens use distinct signing secrets, so possession of one can never
// forge the other. The issuer is stateless; revocation happens only through
// the stored refresh-token hash on the account.
type TokenService interface {
	// GenerateTokenPair signs a short-lived access token and a long-lived
	// refresh token for the account. Both are signed before either is
	// returned; a pair is never partially issued.
	GenerateTokenPair(account *entity.Account) (accessToken string, refreshToken string, err error)

	// VerifyAccessToken validates an access-signed token and returns its claims.
	VerifyAccessToken(tokenString string) (*Claims, error)

	// VerifyRefreshToken validates a refresh-signed token and returns its claims.
	VerifyRefreshToken(tokenString string) (*Claims, error)

	// RefreshTokenDuration returns the configured refresh-token lifetime.
	RefreshTokenDuration() time.Duration
}
