package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// GitHub holds the coordinates and credentials for posting a PR comment.
type GitHub struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	PRID  string `yaml:"pr_id"`
	Token string `yaml:"token"`
}

type Config struct {
	GitHub GitHub `yaml:"github"`
	AI     struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		APIKey   string `yaml:"api_key"`
		BaseURL  string `yaml:"base_url"` // OpenAI-compatible endpoints only
	} `yaml:"ai"`
	Filter struct {
		// Strategy selects the relevance filter: "per-candidate" or "batched".
		Strategy string `yaml:"strategy"`
	} `yaml:"filter"`
	Search struct {
		// SourceOnly restricts grep hits to files with a known source extension.
		SourceOnly bool `yaml:"source_only"`
	} `yaml:"search"`
}

// LoadConfig reads the YAML config file, then applies .env and environment
// overrides. A missing config file is not an error; env-only setups are valid.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.AI.Provider = "gemini"
	cfg.Filter.Strategy = "per-candidate"

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	applyEnv(&cfg.GitHub.Owner, "REPO_OWNER")
	applyEnv(&cfg.GitHub.Repo, "REPO_NAME")
	applyEnv(&cfg.GitHub.PRID, "PR_ID")
	applyEnv(&cfg.GitHub.Token, "GITHUB_API_KEY")
	applyEnv(&cfg.AI.APIKey, "PRBRIEF_API_KEY")
	applyEnv(&cfg.AI.Provider, "PRBRIEF_AI_PROVIDER")
	applyEnv(&cfg.AI.Model, "PRBRIEF_AI_MODEL")

	return cfg, nil
}

func applyEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks the GitHub posting configuration. It must be called before
// any network attempt; a missing key is a hard error, never retried.
func (g GitHub) Validate() error {
	var missing []string
	if g.Owner == "" {
		missing = append(missing, "owner")
	}
	if g.Repo == "" {
		missing = append(missing, "repo")
	}
	if g.PRID == "" {
		missing = append(missing, "pr_id")
	}
	if g.Token == "" {
		missing = append(missing, "token")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required GitHub configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
