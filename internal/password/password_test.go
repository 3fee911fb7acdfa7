package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Tests use bcrypt.MinCost; the work factor changes timing, not semantics.

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "correct horse", "hash must not embed the plaintext")

	ok, err := h.Verify("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHash_SaltedOutputsDiffer(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("p")
	require.NoError(t, err)
	second, err := h.Hash("p")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "bcrypt salts must make repeated hashes differ")
}

// TestVerify_CorruptHashIsAnError pins the failure mode: a broken stored
// hash is an internal fault, never a plain "password incorrect".
func TestVerify_CorruptHashIsAnError(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	ok, err := h.Verify("p", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestNewHasher_ClampsInvalidCost(t *testing.T) {
	h := NewHasher(99)

	hash, err := h.Hash("p")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
