// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthProvider identifies the credential pathway an account was created with.
type AuthProvider string

const (
	// ProviderLocal is the email/password pathway.
	ProviderLocal AuthProvider = "local"
)

// Account is the central identity record of the marketplace. It carries the
// login credential, the email-verification state and the single outstanding
// refresh-token and password-reset secrets (stored hashed, never raw).
type Account struct {
	ID           uuid.UUID    // Stable opaque identifier, immutable after creation.
	Email        string       // Unique login identifier, stored lowercased.
	FullName     string       // Display name given at registration.
	Role         Role         // Which side of the marketplace this account is on.
	Provider     AuthProvider // Credential pathway; only "local" is issued today.
	PasswordHash string       // bcrypt hash of the password. Set for every local account.

	EmailVerified bool // False until the OTP handshake completes. Unverified accounts cannot log in.
	IsActive      bool // Soft-delete flag managed by account administration.
	IsOnboarded   bool // Set once a capital provider completes investor onboarding.

	// Outstanding one-time passcode cycle. Both fields are nil when no
	// verification is pending; a new cycle overwrites the previous one.
	OTPHash      *string
	OTPExpiresAt *time.Time

	// Hash of the single currently valid refresh token. Nil when logged out.
	RefreshTokenHash *string

	// Outstanding password-reset cycle, same pairing rule as the OTP fields.
	ResetTokenHash      *string
	ResetTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetOTP starts (or supersedes) a verification cycle.
func (a *Account) SetOTP(hash string, expiresAt time.Time) {
	a.OTPHash = &hash
	a.OTPExpiresAt = &expiresAt
}

// ClearOTP extinguishes the outstanding verification cycle.
func (a *Account) ClearOTP() {
	a.OTPHash = nil
	a.OTPExpiresAt = nil
}

// HasPendingOTP reports whether a verification cycle is outstanding.
func (a *Account) HasPendingOTP() bool {
	return a.OTPHash != nil
}

// OTPExpired reports whether the outstanding OTP is past its expiry at the
// given instant. An account without a pending OTP is treated as expired.
func (a *Account) OTPExpired(now time.Time) bool {
	return a.OTPExpiresAt == nil || a.OTPExpiresAt.Before(now)
}

// SetRefreshTokenHash records the hash of the newly issued refresh token,
// invalidating whichever token was stored before (rotation).
func (a *Account) SetRefreshTokenHash(hash string) {
	a.RefreshTokenHash = &hash
}

// ClearRefreshTokenHash ends the active session.
func (a *Account) ClearRefreshTokenHash() {
	a.RefreshTokenHash = nil
}

// SetResetToken starts (or supersedes) a password-reset cycle.
func (a *Account) SetResetToken(hash string, expiresAt time.Time) {
	a.ResetTokenHash = &hash
	a.ResetTokenExpiresAt = &expiresAt
}

// ClearResetToken extinguishes the outstanding password-reset cycle.
func (a *Account) ClearResetToken() {
	a.ResetTokenHash = nil
	a.ResetTokenExpiresAt = nil
}

// ResetTokenExpired reports whether the outstanding reset token is past its
// expiry at the given instant. No pending cycle counts as expired.
func (a *Account) ResetTokenExpired(now time.Time) bool {
	return a.ResetTokenExpiresAt == nil || a.ResetTokenExpiresAt.Before(now)
}

// PublicProfile is the safe subset of an Account returned to clients after
// login or refresh. It never carries credential material.
type PublicProfile struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Role     Role      `json:"role"`
}

// Public maps the account to its client-visible summary.
func (a *Account) Public() *PublicProfile {
	return &PublicProfile{
		ID:       a.ID,
		Email:    a.Email,
		FullName: a.FullName,
		Role:     a.Role,
	}
}
