package usecase

import "context"

// ResetPasswordInput carries the token-authenticated password replacement.
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}

// PasswordResetUsecase covers the mail-based credential recovery loop.
type PasswordResetUsecase interface {
	// RequestReset mails a single-use reset link when the email belongs to a
	// verified account. It returns success either way, so the endpoint
	// cannot be used to probe which emails are registered.
	RequestReset(ctx context.Context, email string) error

	// ResetPassword consumes the reset token and replaces the password.
	// It also clears the stored refresh-token hash, ending any session
	// opened with the old credential.
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
}
