// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// CredentialHasher defines one-way hashing and verification for every secret
// the system stores: passwords, OTPs, reset tokens and refresh tokens.
// Implementations must use a slow, salted algorithm; stored secrets are never
// compared with plain equality.
type CredentialHasher interface {
	// Hash generates a salted hash from a plaintext secret.
	Hash(secret string) (string, error)

	// Check compares a plaintext secret with a hash to see if they match.
	Check(secret, hash string) bool

	// HashToken hashes an arbitrarily long token (such as a signed JWT) by
	// first reducing it to a fixed-size digest. Required because bcrypt
	// rejects inputs longer than 72 bytes.
	HashToken(token string) (string, error)

	// CheckToken verifies a token against a hash produced by HashToken.
	CheckToken(token, hash string) bool
}
