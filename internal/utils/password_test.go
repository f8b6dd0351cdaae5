package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery-1")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery-1", hash)

	assert.True(t, CheckPasswordHash("correct-horse-battery-1", hash))
	assert.False(t, CheckPasswordHash("wrong-password-2", hash))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "passw0rd", false},
		{"valid with symbols", "s3cure!pass", false},
		{"too short", "abc1", true},
		{"no number", "passwordonly", true},
		{"no letter", "12345678", true},
		{"empty", "", true},
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
