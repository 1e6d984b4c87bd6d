package main

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/analysis"
	"github.com/Harsh-BH/jobtracker/internal/config"
)

var (
	envFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobtracker",
	Short: "Job application tracker API",
	Long:  "jobtracker serves a REST API for tracking job applications and analyzing job descriptions.",
	// With no subcommand the binary runs the server, so container entrypoints stay simple.
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to an optional .env file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func setupLogger(dbg bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if dbg {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// setupCompleter returns nil when the selected provider has no credential, so the
// gateway reports the analysis feature as not configured instead of failing startup.
func setupCompleter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (analysis.Completer, func(), error) {
	noop := func() {}
	if cfg.LLM.APIKey() == "" {
		logger.Warn("No completion API key configured, analysis requests will be rejected",
			zap.String("provider", cfg.LLM.Provider),
		)
		return nil, noop, nil
	}

	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		c, err := analysis.NewGeminiCompleter(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Using Gemini completer", zap.String("model", cfg.LLM.GeminiModel))
		return c, func() { c.Close() }, nil
	default:
		httpClient := &http.Client{Timeout: cfg.LLM.OpenAITimeout}
		logger.Info("Using OpenAI completer",
			zap.String("model", cfg.LLM.OpenAIModel),
			zap.String("base_url", cfg.LLM.OpenAIBaseURL),
		)
		return analysis.NewOpenAICompleter(cfg.LLM.OpenAIBaseURL, cfg.LLM.OpenAIAPIKey, cfg.LLM.OpenAIModel, httpClient), noop, nil
	}
}
