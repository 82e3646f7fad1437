package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	first, err := GenerateResetToken()
	require.NoError(t, err)
	second, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

func TestHashResetToken(t *testing.T) {
	plaintext, err := GenerateResetToken()
	require.NoError(t, err)

	hash := HashResetToken(plaintext)

	assert.NotEqual(t, plaintext, hash)
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashResetToken(plaintext), "hashing must be deterministic for lookup")
}
