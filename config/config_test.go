package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.MaxContextTokens != 3000 || cfg.KeepRecent != 4 || cfg.MaxToolSteps != 5 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.RouterModelName() != cfg.Model {
		t.Errorf("router model should fall back to model")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("provider: anthropic\nmodel: claude-3-5-haiku-latest\nrouter_model: claude-3-haiku\nmax_context_tokens: 5000\ntoken_encoding: cl100k_base\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider != ProviderAnthropic || cfg.Model != "claude-3-5-haiku-latest" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.MaxContextTokens != 5000 {
		t.Errorf("max_context_tokens = %d", cfg.MaxContextTokens)
	}
	if cfg.RouterModelName() != "claude-3-haiku" {
		t.Errorf("router model = %q", cfg.RouterModelName())
	}
	if cfg.TokenEncoding != "cl100k_base" {
		t.Errorf("token_encoding = %q", cfg.TokenEncoding)
	}
	// Untouched keys keep their defaults.
	if cfg.KeepRecent != 4 {
		t.Errorf("keep_recent = %d", cfg.KeepRecent)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("provider = %q", cfg.Provider)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CONCIERGE_PROVIDER", "anthropic")
	t.Setenv("CONCIERGE_MAX_CONTEXT_TOKENS", "1234")
	t.Setenv("CONCIERGE_TOKEN_ENCODING", "o200k_base")
	t.Setenv("PORT", "9999")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider != ProviderAnthropic {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.MaxContextTokens != 1234 {
		t.Errorf("max_context_tokens = %d", cfg.MaxContextTokens)
	}
	if cfg.Listen != ":9999" {
		t.Errorf("listen = %q", cfg.Listen)
	}
	if cfg.TokenEncoding != "o200k_base" {
		t.Errorf("token_encoding = %q", cfg.TokenEncoding)
	}
}

func TestUnknownProviderRejected(t *testing.T) {
	t.Setenv("CONCIERGE_PROVIDER", "palantir")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
