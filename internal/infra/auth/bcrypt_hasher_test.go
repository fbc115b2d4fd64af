package auth

import (
	"strings"
	"testing"

	"ideamatch/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHasher() *bcryptHasher {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := testHasher()

	hash, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123!", hash)

	assert.True(t, hasher.Check("Password123!", hash))
	assert.False(t, hasher.Check("password123!", hash))
	assert.False(t, hasher.Check("Password123!", "not-a-bcrypt-hash"))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := testHasher()

	first, err := hasher.Hash("same-secret")
	require.NoError(t, err)
	second, err := hasher.Hash("same-secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("same-secret", first))
	assert.True(t, hasher.Check("same-secret", second))
}

func TestBcryptHasher_HashTokenAcceptsLongInput(t *testing.T) {
	hasher := testHasher()

	// A signed JWT is far past bcrypt's 72-byte input limit.
	token := strings.Repeat("eyJhbGciOiJIUzI1NiJ9.", 20)

	hash, err := hasher.HashToken(token)
	require.NoError(t, err)

	assert.True(t, hasher.CheckToken(token, hash))
	assert.False(t, hasher.CheckToken(token+"x", hash))
}

func TestBcryptHasher_TokenAndPasswordHashesAreNotInterchangeable(t *testing.T) {
	hasher := testHasher()

	hash, err := hasher.HashToken("short-token")
	require.NoError(t, err)

	// Check compares the raw token, HashToken stores its digest.
	assert.False(t, hasher.Check("short-token", hash))
	assert.True(t, hasher.CheckToken("short-token", hash))
}

func TestNewBcryptHasher_FallsBackToDefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{}).(*bcryptHasher)
	assert.Equal(t, 10, hasher.cost)

	hasher = NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 99}}).(*bcryptHasher)
	assert.Equal(t, 10, hasher.cost)
}
