package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStringList(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		list, err := DecodeStringList(`["validate_token", "TokenStore"]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"validate_token", "TokenStore"}, list)
	})

	t.Run("object wrapper", func(t *testing.T) {
		list, err := DecodeStringList(`{"searches": ["a", "b"]}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, list)
	})

	t.Run("fenced output", func(t *testing.T) {
		list, err := DecodeStringList("```json\n[\"x\"]\n```")
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, list)
	})

	t.Run("non-string elements are dropped", func(t *testing.T) {
		list, err := DecodeStringList(`["a", 42, null, "b"]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, list)
	})

	t.Run("empty list is valid", func(t *testing.T) {
		list, err := DecodeStringList(`[]`)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("malformed output is rejected", func(t *testing.T) {
		for _, raw := range []string{"", "not json", `{"a": [], "b": []}`, `{"n": 3}`, `42`} {
			_, err := DecodeStringList(raw)
			assert.Error(t, err, "raw %q should be rejected", raw)
		}
	})
}

func TestDecodeBoolFlag(t *testing.T) {
	t.Run("bare boolean", func(t *testing.T) {
		b, err := DecodeBoolFlag(`true`)
		require.NoError(t, err)
		assert.True(t, b)
	})

	t.Run("object wrapper", func(t *testing.T) {
		b, err := DecodeBoolFlag(`{"relevant": false}`)
		require.NoError(t, err)
		assert.False(t, b)
	})

	t.Run("malformed output is rejected", func(t *testing.T) {
		for _, raw := range []string{"", "yes", `{"relevant": "true"}`, `[true]`} {
			_, err := DecodeBoolFlag(raw)
			assert.Error(t, err, "raw %q should be rejected", raw)
		}
	})
}
