package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher()

	digest, err := h.Hash("p")
	require.NoError(t, err)
	assert.NotEqual(t, "p", digest)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)

	assert.True(t, h.Verify("p", digest))
	assert.False(t, h.Verify("q", digest))
}

func TestPasswordHasher_SaltsEachDigest(t *testing.T) {
	h := newPasswordHasher(bcrypt.MinCost)
	a, err := h.Hash("secret")
	require.NoError(t, err)
	b, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	h := newPasswordHasher(bcrypt.MinCost)
	assert.NotPanics(t, func() {
		assert.False(t, h.Verify("secret", "not-a-bcrypt-digest"))
		assert.False(t, h.Verify("secret", ""))
	})
}
