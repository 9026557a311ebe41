package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunID_Format(t *testing.T) {
	id, err := NewRunID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "run-"))
	assert.Greater(t, len(id), len("run-"))
}

func TestNewRunID_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewRunID()
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
