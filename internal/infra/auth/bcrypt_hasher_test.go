package auth

import (
	"testing"

	"tasktrack/config"

	"github.com/stretchr/testify/assert"
)

func newTestHasher() *bcryptHasher {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}} // min cost keeps tests fast
	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newTestHasher()

	password := "Secret123"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := newTestHasher()

	// Two hashes of the same plaintext must differ.
	first, err := hasher.Hash("Secret123")
	assert.NoError(t, err)
	second, err := hasher.Hash("Secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)

	assert.True(t, hasher.Check("Secret123", first))
	assert.True(t, hasher.Check("Secret123", second))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher()
	password := "Secret123"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("WrongPassword", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Malformed digest compares as false, it never panics or errors.
	assert.False(t, hasher.Check(password, "invalid_hash"))
	assert.False(t, hasher.Check(password, ""))
}

func TestNewBcryptHasher_DefaultsCostWhenUnconfigured(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{}).(*bcryptHasher)
	assert.Equal(t, 10, hasher.cost) // bcrypt.DefaultCost

	hasher = NewBcryptHasher(nil).(*bcryptHasher)
	assert.Equal(t, 10, hasher.cost)
}
