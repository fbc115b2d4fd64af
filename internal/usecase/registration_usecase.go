// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"ideamatch/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to start a registration.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     entity.Role
}

// VerifyEmailInput carries the OTP handshake submission.
type VerifyEmailInput struct {
	Email string
	OTP   string
}

// ResendOTPInput asks for a fresh passcode for a pending registration.
type ResendOTPInput struct {
	Email string
}

// --- Output DTOs ---

// RegisterOutput returns the pending registration's public state. The OTP
// itself only travels by mail.
type RegisterOutput struct {
	Email        string
	OTPExpiresAt time.Time
}

// RegistrationUsecase covers the OTP-gated signup handshake. An account stays
// unverified, and unable to log in, until VerifyEmail succeeds.
type RegistrationUsecase interface {
	// Register creates (or overwrites an unverified) account and mails an OTP.
	// A verified account with the same email yields a conflict.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// VerifyEmail consumes the pending OTP. The passcode is single-use:
	// success and expiry both extinguish it.
	VerifyEmail(ctx context.Context, input VerifyEmailInput) error

	// ResendOTP supersedes the pending passcode with a fresh one.
	ResendOTP(ctx context.Context, input ResendOTPInput) (*RegisterOutput, error)
}
