package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReference(t *testing.T) {
	ref := GenerateReference("TXN")

	parts := strings.Split(ref, "_")
	assert.Len(t, parts, 3)
	assert.Equal(t, "TXN", parts[0])
	assert.Equal(t, time.Now().Format("20060102"), parts[1])
	assert.Len(t, parts[2], 8)

	// Ambiguous characters are excluded from the random suffix
	for _, ch := range parts[2] {
		assert.NotContains(t, "01OIL", string(ch))
	}
}

func TestGenerateReferenceUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref := GenerateReference("WDR")
		assert.False(t, seen[ref], "duplicate reference generated: %s", ref)
		seen[ref] = true
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"already rounded", 10.50, 10.50},
		{"rounds down", 10.554, 10.55},
		{"rounds up", 10.555, 10.56},
		{"float drift", 0.1 + 0.2, 0.30},
		{"zero", 0, 0},
		{"negative", -5.119, -5.12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Round2(tt.input), 1e-9)
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$19.99", FormatCurrency(19.99, "USD"))
	assert.Equal(t, "€5.00", FormatCurrency(5, "EUR"))
	assert.Equal(t, "150.00 KES", FormatCurrency(150, "KES"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last@sub.example.co.uk"))
	assert.False(t, IsValidEmail("no-at-sign"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("user@nodot"))
	assert.False(t, IsValidEmail("user@domain."))
}
