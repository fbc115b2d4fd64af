// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"ideamatch/config"
	"ideamatch/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the CredentialHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.CredentialHasher interface.
func NewBcryptHasher(cfg *config.Config) service.CredentialHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext secret using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)

	return string(bytes), err
}

// Check compares a plaintext secret with a bcrypt hash.
func (h *bcryptHasher) Check(secret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	// err is nil if the secret and hash match. A malformed stored hash also
	// fails closed here; the caller surfaces it as an internal failure.
	return err == nil
}

// HashToken bcrypt-hashes a token of arbitrary length. bcrypt rejects inputs
// over 72 bytes and a signed JWT is far longer, so the token is reduced to a
// SHA-256 hex digest (64 bytes) first.
func (h *bcryptHasher) HashToken(token string) (string, error) {
	return h.Hash(digestToken(token))
}

// CheckToken verifies a token against a hash produced by HashToken.
func (h *bcryptHasher) CheckToken(token, hash string) bool {
	return h.Check(digestToken(token), hash)
}

func digestToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
