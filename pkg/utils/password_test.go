package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pass1234")
	require.NoError(t, err)

	assert.NotEqual(t, "pass1234", hash)
	assert.True(t, CheckPassword(hash, "pass1234"))
	assert.False(t, CheckPassword(hash, "pass12345"))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("pass1234")
	require.NoError(t, err)
	second, err := HashPassword("pass1234")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "pass1234", false},
		{"too short", "pa12", true},
		{"letters only", "passwords", true},
		{"numbers only", "12345678", true},
		{"unicode letters", "pässwort1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
