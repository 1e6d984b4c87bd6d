package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/domain"
)

// Analyzer produces an analysis of a job description.
type Analyzer interface {
	Analyze(ctx context.Context, description string) (*domain.JobAnalysis, error)
}

// AnalyzeJobUsecase validates a pasted description and forwards it to the analyzer.
type AnalyzeJobUsecase struct {
	analyzer Analyzer
	logger   *zap.Logger
}

// NewAnalyzeJobUsecase creates a new AnalyzeJobUsecase.
func NewAnalyzeJobUsecase(analyzer Analyzer, logger *zap.Logger) *AnalyzeJobUsecase {
	return &AnalyzeJobUsecase{
		analyzer: analyzer,
		logger:   logger,
	}
}

// Execute rejects short descriptions before any call to the analyzer.
func (uc *AnalyzeJobUsecase) Execute(ctx context.Context, req *domain.AnalyzeRequest) (*domain.JobAnalysis, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	analysis, err := uc.analyzer.Analyze(ctx, req.JobDescription)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Job description analyzed",
		zap.Int("description_len", len(req.JobDescription)),
		zap.Int("key_skills", len(analysis.KeySkills)),
	)
	return analysis, nil
}
