package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fast parameters; production defaults would slow the suite down
func testParams() Params {
	return Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(testParams())

	encoded, err := h.Hash("abc123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	assert.True(t, h.Verify("abc123", encoded))
	assert.False(t, h.Verify("abc124", encoded))
	assert.False(t, h.Verify("", encoded))
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher(testParams())
	a, err := h.Hash("same-password1")
	require.NoError(t, err)
	b, err := h.Hash("same-password1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "each hash draws a fresh salt")
	assert.True(t, h.Verify("same-password1", a))
	assert.True(t, h.Verify("same-password1", b))
}

func TestVerifySelfDescribingParams(t *testing.T) {
	// A hash produced under one parameter set verifies under a hasher
	// configured with another, because the PHC string carries its params.
	old := NewHasher(testParams())
	encoded, err := old.Hash("abc123")
	require.NoError(t, err)

	current := NewHasher(DefaultParams())
	assert.True(t, current.Verify("abc123", encoded))
}

func TestVerifyMalformedHash(t *testing.T) {
	h := NewHasher(testParams())
	assert.False(t, h.Verify("abc123", ""))
	assert.False(t, h.Verify("abc123", "not-a-hash"))
	assert.False(t, h.Verify("abc123", "$argon2i$v=19$m=8192,t=1,p=1$AAAA$BBBB"))
}
