package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected read timeout 10s, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Store.Backend != StoreMemory {
		t.Errorf("expected memory store, got %s", cfg.Store.Backend)
	}
	if cfg.LLM.Provider != ProviderOpenAI || cfg.LLM.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("unexpected LLM defaults: %+v", cfg.LLM)
	}
	if cfg.LLM.OpenAIBaseURL != "https://api.openai.com/v1" {
		t.Errorf("unexpected base URL %s", cfg.LLM.OpenAIBaseURL)
	}
	if cfg.Server.WriteTimeout <= cfg.LLM.OpenAITimeout {
		t.Errorf("expected write timeout %s above completion timeout %s", cfg.Server.WriteTimeout, cfg.LLM.OpenAITimeout)
	}
	if cfg.RabbitMQ.Exchange != "jobtracker.events" {
		t.Errorf("unexpected exchange %s", cfg.RabbitMQ.Exchange)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("JOBS_SEED_SAMPLES", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.LLM.APIKey() != "sk-test" {
		t.Errorf("expected API key from env, got %q", cfg.LLM.APIKey())
	}
	if !cfg.Store.SeedSamples {
		t.Error("expected seed samples enabled")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "LLM_PROVIDER=gemini\nGEMINI_API_KEY=g-key\nAPI_RATE_LIMIT=5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.Provider != ProviderGemini {
		t.Errorf("expected gemini provider, got %s", cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey() != "g-key" {
		t.Errorf("expected gemini key, got %q", cfg.LLM.APIKey())
	}
	if cfg.Server.RateLimit != 5 {
		t.Errorf("expected rate limit 5, got %d", cfg.Server.RateLimit)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080, RateLimit: 20},
			Store:  StoreConfig{Backend: StoreMemory},
			LLM:    LLMConfig{Provider: ProviderOpenAI, OpenAITimeout: 30 * time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "API_PORT"},
		{"postgres without url", func(c *Config) { c.Store.Backend = StorePostgres }, "DATABASE_URL"},
		{"postgres with url", func(c *Config) {
			c.Store.Backend = StorePostgres
			c.Database.URL = "postgres://localhost/jobs"
		}, ""},
		{"unknown store", func(c *Config) { c.Store.Backend = "sqlite" }, "JOB_STORE"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "claude" }, "LLM_PROVIDER"},
		{"negative rate limit", func(c *Config) { c.Server.RateLimit = -1 }, "API_RATE_LIMIT"},
		{"write timeout equals completion timeout", func(c *Config) { c.Server.WriteTimeout = 30 * time.Second }, "API_WRITE_TIMEOUT"},
		{"write timeout above completion timeout", func(c *Config) { c.Server.WriteTimeout = 45 * time.Second }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}
