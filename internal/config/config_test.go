package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "gemini", cfg.AI.Provider)
		assert.Equal(t, "per-candidate", cfg.Filter.Strategy)
	})

	t.Run("yaml values are read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
github:
  owner: acme
  repo: widgets
  pr_id: "42"
ai:
  provider: openai
  model: gpt-4o-mini
filter:
  strategy: batched
search:
  source_only: true
`), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "acme", cfg.GitHub.Owner)
		assert.Equal(t, "widgets", cfg.GitHub.Repo)
		assert.Equal(t, "42", cfg.GitHub.PRID)
		assert.Equal(t, "openai", cfg.AI.Provider)
		assert.Equal(t, "batched", cfg.Filter.Strategy)
		assert.True(t, cfg.Search.SourceOnly)
	})

	t.Run("environment overrides yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("github:\n  owner: from-yaml\n"), 0o644))

		t.Setenv("REPO_OWNER", "from-env")
		t.Setenv("GITHUB_API_KEY", "secret")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.GitHub.Owner)
		assert.Equal(t, "secret", cfg.GitHub.Token)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("github: [not: a: map"), 0o644))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestGitHubValidate(t *testing.T) {
	full := GitHub{Owner: "a", Repo: "r", PRID: "1", Token: "t"}
	assert.NoError(t, full.Validate())

	for _, tc := range []struct {
		name string
		wipe func(*GitHub)
	}{
		{"owner", func(g *GitHub) { g.Owner = "" }},
		{"repo", func(g *GitHub) { g.Repo = "" }},
		{"pr_id", func(g *GitHub) { g.PRID = "" }},
		{"token", func(g *GitHub) { g.Token = "" }},
	} {
		t.Run("missing "+tc.name, func(t *testing.T) {
			g := full
			tc.wipe(&g)
			err := g.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.name)
		})
	}
}
