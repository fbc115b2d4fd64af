package usecase

import (
	"context"

	"ideamatch/internal/domain/entity"

	"github.com/google/uuid"
)

// LoginInput defines the data required to open a session.
type LoginInput struct {
	Email    string
	Password string
}

// TokenPairOutput returns the freshly signed session tokens. Login and
// refresh both produce one; the previous refresh token is dead once the new
// pair exists.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.PublicProfile
}

// SessionUsecase manages the single active session per account: password
// login, refresh-token rotation and logout.
type SessionUsecase interface {
	// Login verifies the password and issues a token pair. The response
	// never reveals whether the email or the password was wrong.
	Login(ctx context.Context, input LoginInput) (*TokenPairOutput, error)

	// Refresh rotates the session: the presented refresh token must match
	// the stored hash, and a new pair replaces it atomically.
	Refresh(ctx context.Context, userID uuid.UUID, refreshToken string) (*TokenPairOutput, error)

	// Logout clears the stored refresh-token hash, ending the session.
	// Logging out an already logged-out account is a no-op.
	Logout(ctx context.Context, userID uuid.UUID) error
}
