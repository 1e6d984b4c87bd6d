package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/analysis"
	"github.com/Harsh-BH/jobtracker/internal/config"
	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/usecase"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a job description once and print the result",
	Long:  "Reads a job description from the given file (or stdin) and prints its summary and key skills as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	defer logger.Sync()

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}
	description, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read job description: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	completer, closeCompleter, err := setupCompleter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCompleter()

	uc := usecase.NewAnalyzeJobUsecase(analysis.NewGateway(completer, logger), logger)
	result, err := uc.Execute(ctx, &domain.AnalyzeRequest{JobDescription: string(description)})
	if err != nil {
		logger.Error("Analysis failed", zap.Error(err))
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
