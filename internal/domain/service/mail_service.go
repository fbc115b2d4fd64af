package service

import "context"

// MailService is the out-of-band Notifier. It is the only channel through
// which a plaintext OTP or raw reset link ever leaves the system. Delivery
// failure is reported to the caller, never swallowed.
type MailService interface {
	// SendOTP delivers a one-time passcode to the given address.
	SendOTP(ctx context.Context, email, otp string) error

	// SendResetLink delivers a password-reset deep link to the given address.
	SendResetLink(ctx context.Context, email, resetURL string) error
}
