package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleBundle(t *testing.T) {
	entries := []Entry{
		{Path: "auth/utils.py", Content: "def validate_token(tok):"},
		{Path: "auth/store.py", Content: "class TokenStore:"},
	}

	t.Run("patch block then one block per entry", func(t *testing.T) {
		bundle := AssembleBundle("PATCH BODY", entries)
		assert.True(t, strings.HasPrefix(bundle, "<Patch File>\nPATCH BODY\n</Patch File>\n\n"))
		assert.Contains(t, bundle, "<auth/utils.py>\ndef validate_token(tok):\n</auth/utils.py>\n\n")
		assert.Contains(t, bundle, "<auth/store.py>\nclass TokenStore:\n</auth/store.py>\n\n")
		assert.Less(t, strings.Index(bundle, "<auth/utils.py>"), strings.Index(bundle, "<auth/store.py>"))
	})

	t.Run("idempotent for identical inputs", func(t *testing.T) {
		assert.Equal(t, AssembleBundle("p", entries), AssembleBundle("p", entries))
	})

	t.Run("no entries yields only the patch block", func(t *testing.T) {
		bundle := AssembleBundle("p", nil)
		assert.Equal(t, "<Patch File>\np\n</Patch File>\n\n", bundle)
	})

	t.Run("empty inputs are treated as empty strings", func(t *testing.T) {
		bundle := AssembleBundle("", []Entry{{Path: "a.go"}})
		assert.Equal(t, "<Patch File>\n\n</Patch File>\n\n<a.go>\n\n</a.go>\n\n", bundle)
	})
}
