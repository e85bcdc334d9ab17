package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	passwords := []string{"p1", "correct horse battery staple", "päss🔒word", ""}
	for _, p := range passwords {
		hash, err := h.Hash(p)
		require.NoError(t, err)
		assert.NotEqual(t, p, hash)
		assert.True(t, h.Verify(p, hash), "verify(p, hash(p)) must hold for %q", p)
	}
}

func TestHasher_VerifyMismatch(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("q-different")
	require.NoError(t, err)

	assert.False(t, h.Verify("p1", hash))
	assert.False(t, h.Verify("", hash))
}

func TestHasher_MalformedHashReportsFalse(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("p1", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("p1", ""))
}

func TestNewHasher_CostFallback(t *testing.T) {
	assert.Equal(t, DefaultCost, NewHasher(0).cost)
	assert.Equal(t, DefaultCost, NewHasher(99).cost)
	assert.Equal(t, 12, NewHasher(12).cost)
}
