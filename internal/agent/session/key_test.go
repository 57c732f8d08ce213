package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	for _, key := range []string{"cli:default", "abc-123", "web_1.2", NewKey()} {
		got, err := ParseKey(key)
		require.NoError(t, err, key)
		assert.Equal(t, key, got)
	}

	got, err := ParseKey("  padded  ")
	require.NoError(t, err)
	assert.Equal(t, "padded", got)

	for _, key := range []string{"", "   ", "has space", "../etc", "emoji😀", strings.Repeat("a", MaxKeyLength+1)} {
		_, err := ParseKey(key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestNewKeyIsUnique(t *testing.T) {
	assert.NotEqual(t, NewKey(), NewKey())
}
