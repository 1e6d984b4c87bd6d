package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Completion providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds all configuration for the API server.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
	LLM      LLMConfig
}

type ServerConfig struct {
	Port         int           `mapstructure:"API_PORT"`
	ReadTimeout  time.Duration `mapstructure:"API_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"API_WRITE_TIMEOUT"`
	RateLimit    int           `mapstructure:"API_RATE_LIMIT"`
	MaxBodyBytes int64         `mapstructure:"API_MAX_BODY_BYTES"`
	GinMode      string        `mapstructure:"GIN_MODE"`
}

type StoreConfig struct {
	Backend     string `mapstructure:"JOB_STORE"`
	SeedSamples bool   `mapstructure:"JOBS_SEED_SAMPLES"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"DATABASE_URL"`
}

type RabbitMQConfig struct {
	URL      string `mapstructure:"RABBITMQ_URL"`
	Exchange string `mapstructure:"RABBITMQ_EXCHANGE"`
}

type RedisConfig struct {
	URL string `mapstructure:"REDIS_URL"`
}

type LLMConfig struct {
	Provider      string        `mapstructure:"LLM_PROVIDER"`
	OpenAIAPIKey  string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `mapstructure:"OPENAI_BASE_URL"`
	OpenAIModel   string        `mapstructure:"OPENAI_MODEL"`
	OpenAITimeout time.Duration `mapstructure:"OPENAI_TIMEOUT"`
	GeminiAPIKey  string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel   string        `mapstructure:"GEMINI_MODEL"`
}

// APIKey returns the credential of the selected provider.
func (c LLMConfig) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// Load reads configuration from environment variables and the given .env file.
// An empty envFile means ".env"; a missing file is not an error.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	if envFile == "" {
		envFile = ".env"
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_READ_TIMEOUT", "10s")
	v.SetDefault("API_WRITE_TIMEOUT", "45s")
	v.SetDefault("API_RATE_LIMIT", 20)
	v.SetDefault("API_MAX_BODY_BYTES", 1<<20)
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("JOB_STORE", StoreMemory)
	v.SetDefault("JOBS_SEED_SAMPLES", false)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "jobtracker.events")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("LLM_PROVIDER", ProviderOpenAI)
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	v.SetDefault("OPENAI_TIMEOUT", "30s")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// SetConfigFile reports a missing file as a plain fs error.
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	cfg.Server.Port = v.GetInt("API_PORT")
	cfg.Server.ReadTimeout = v.GetDuration("API_READ_TIMEOUT")
	cfg.Server.WriteTimeout = v.GetDuration("API_WRITE_TIMEOUT")
	cfg.Server.RateLimit = v.GetInt("API_RATE_LIMIT")
	cfg.Server.MaxBodyBytes = v.GetInt64("API_MAX_BODY_BYTES")
	cfg.Server.GinMode = v.GetString("GIN_MODE")
	cfg.Store.Backend = strings.ToLower(v.GetString("JOB_STORE"))
	cfg.Store.SeedSamples = v.GetBool("JOBS_SEED_SAMPLES")
	cfg.Database.URL = v.GetString("DATABASE_URL")
	cfg.RabbitMQ.URL = v.GetString("RABBITMQ_URL")
	cfg.RabbitMQ.Exchange = v.GetString("RABBITMQ_EXCHANGE")
	cfg.Redis.URL = v.GetString("REDIS_URL")
	cfg.LLM.Provider = strings.ToLower(v.GetString("LLM_PROVIDER"))
	cfg.LLM.OpenAIAPIKey = v.GetString("OPENAI_API_KEY")
	cfg.LLM.OpenAIBaseURL = v.GetString("OPENAI_BASE_URL")
	cfg.LLM.OpenAIModel = v.GetString("OPENAI_MODEL")
	cfg.LLM.OpenAITimeout = v.GetDuration("OPENAI_TIMEOUT")
	cfg.LLM.GeminiAPIKey = v.GetString("GEMINI_API_KEY")
	cfg.LLM.GeminiModel = v.GetString("GEMINI_MODEL")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects inconsistent settings.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("API_PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("API_RATE_LIMIT must not be negative, got %d", c.Server.RateLimit))
	}
	switch c.Store.Backend {
	case StoreMemory:
	case StorePostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when JOB_STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("JOB_STORE must be %q or %q, got %q", StoreMemory, StorePostgres, c.Store.Backend))
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.LLM.Provider))
	}
	if c.LLM.OpenAITimeout <= 0 {
		errs = append(errs, fmt.Errorf("OPENAI_TIMEOUT must be positive, got %s", c.LLM.OpenAITimeout))
	}
	// The analysis error response has to be written after the completion call gives up.
	if c.Server.WriteTimeout > 0 && c.Server.WriteTimeout <= c.LLM.OpenAITimeout {
		errs = append(errs, fmt.Errorf("API_WRITE_TIMEOUT (%s) must exceed OPENAI_TIMEOUT (%s)", c.Server.WriteTimeout, c.LLM.OpenAITimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
