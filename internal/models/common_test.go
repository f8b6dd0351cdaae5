package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONScanValue(t *testing.T) {
	original := JSON{"paybill": "522522", "priority": float64(2)}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned JSON
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestJSONScanNil(t *testing.T) {
	var j JSON
	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j)
}

func TestJSONListScanValue(t *testing.T) {
	original := JSONList{
		{"name": "Unlimited likes"},
		{"name": "See who viewed you", "description": "Profile visitors list"},
	}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned JSONList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}
