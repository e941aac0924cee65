package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
  timeout_seconds: 45
auth:
  enabled: true
  api_key: secret
search:
  api_key: serp-key
  endpoint: https://serp.example.test/search.json
  timeout_seconds: 20
  default_market: NO
openai:
  api_key: ai-key
  model: gpt-4o
  temperature: 0.5
  timeout_seconds: 40
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if !cfg.Auth.Enabled || cfg.Auth.APIKey != "secret" {
		t.Fatalf("expected auth enabled with secret key")
	}
	if cfg.Search.APIKey != "serp-key" || cfg.Search.DefaultMarket != "NO" {
		t.Fatalf("expected search overrides to apply: %+v", cfg.Search)
	}
	if cfg.OpenAI.Model != "gpt-4o" || cfg.OpenAI.Temperature != 0.5 {
		t.Fatalf("expected openai overrides to apply: %+v", cfg.OpenAI)
	}
	if cfg.Logging.Development {
		t.Fatalf("expected logging.development false")
	}
	if got := cfg.SearchTimeout(); got != 20*time.Second {
		t.Fatalf("expected search timeout 20s, got %v", got)
	}
	if got := cfg.OverlayTimeout(); got != 40*time.Second {
		t.Fatalf("expected overlay timeout 40s, got %v", got)
	}
	if got := cfg.ServerTimeout(); got != 45*time.Second {
		t.Fatalf("expected server timeout 45s, got %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
search:
  api_key: serp-key
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Search.Endpoint != "https://serpapi.com/search.json" {
		t.Fatalf("unexpected default endpoint %q", cfg.Search.Endpoint)
	}
	if cfg.Search.DefaultMarket != "SE" {
		t.Fatalf("unexpected default market %q", cfg.Search.DefaultMarket)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" || cfg.OpenAI.Temperature != 0.2 {
		t.Fatalf("unexpected openai defaults: %+v", cfg.OpenAI)
	}
	if cfg.OpenAI.APIKey != "" {
		t.Fatalf("expected overlay disabled by default")
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Server: ServerConfig{Port: 8080, TimeoutSeconds: 60},
		Search: SearchConfig{APIKey: "serp-key", TimeoutSeconds: 15},
		OpenAI: OpenAIConfig{Temperature: 0.2, TimeoutSeconds: 30},
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "invalid port",
			cfg: func() Config {
				c := base
				c.Server.Port = 0
				return c
			}(),
			want: "server.port",
		},
		{
			name: "missing search api key",
			cfg: func() Config {
				c := base
				c.Search.APIKey = ""
				return c
			}(),
			want: "search.api_key",
		},
		{
			name: "invalid search timeout",
			cfg: func() Config {
				c := base
				c.Search.TimeoutSeconds = 0
				return c
			}(),
			want: "search.timeout_seconds",
		},
		{
			name: "temperature out of range",
			cfg: func() Config {
				c := base
				c.OpenAI.Temperature = 3
				return c
			}(),
			want: "openai.temperature",
		},
		{
			name: "auth missing api key",
			cfg: func() Config {
				c := base
				c.Auth.Enabled = true
				return c
			}(),
			want: "auth.api_key",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
