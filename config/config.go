// Package config loads the service configuration from an optional YAML
// file with environment variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	// Provider selects the model backend, openai or anthropic.
	Provider string `yaml:"provider"`
	// Model drives agent turns and summarization.
	Model string `yaml:"model"`
	// RouterModel drives intent classification. Falls back to Model.
	RouterModel string  `yaml:"router_model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	// MaxContextTokens is the estimated-token budget above which the
	// conversation history is compacted.
	MaxContextTokens int `yaml:"max_context_tokens"`
	// TokenEncoding selects a tiktoken encoding (e.g. "cl100k_base",
	// "o200k_base") for exact token counting. Empty uses the character
	// heuristic.
	TokenEncoding string `yaml:"token_encoding"`
	// KeepRecent is how many trailing messages survive compaction verbatim.
	KeepRecent int `yaml:"keep_recent"`
	// MaxToolSteps caps model steps per agent turn.
	MaxToolSteps int `yaml:"max_tool_steps"`
	// DatabaseURL is the postgres DSN. Empty selects the in-memory store.
	DatabaseURL string `yaml:"database_url"`
	Listen      string `yaml:"listen"`
}

func Default() Config {
	return Config{
		Provider:         ProviderOpenAI,
		Model:            "gpt-4o-mini",
		Temperature:      0.7,
		MaxTokens:        1024,
		MaxContextTokens: 3000,
		KeepRecent:       4,
		MaxToolSteps:     5,
		Listen:           ":3001",
	}
}

// Load reads the YAML file at path when it exists, then applies
// environment overrides. An empty path skips straight to defaults plus
// environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(bs, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Provider, "CONCIERGE_PROVIDER")
	setString(&c.Model, "CONCIERGE_MODEL")
	setString(&c.RouterModel, "CONCIERGE_ROUTER_MODEL")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setInt(&c.MaxContextTokens, "CONCIERGE_MAX_CONTEXT_TOKENS")
	setString(&c.TokenEncoding, "CONCIERGE_TOKEN_ENCODING")
	setInt(&c.KeepRecent, "CONCIERGE_KEEP_RECENT")
	setInt(&c.MaxToolSteps, "CONCIERGE_MAX_TOOL_STEPS")
	setInt(&c.MaxTokens, "CONCIERGE_MAX_TOKENS")
	if v := os.Getenv("PORT"); v != "" {
		c.Listen = ":" + v
	}
	setString(&c.Listen, "CONCIERGE_LISTEN")
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.MaxContextTokens <= 0 {
		return fmt.Errorf("max_context_tokens must be positive, got %d", c.MaxContextTokens)
	}
	if c.MaxToolSteps <= 0 {
		return fmt.Errorf("max_tool_steps must be positive, got %d", c.MaxToolSteps)
	}
	return nil
}

// RouterModelName returns the classification model, defaulting to the
// main model.
func (c Config) RouterModelName() string {
	if c.RouterModel != "" {
		return c.RouterModel
	}
	return c.Model
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
