package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/domain"
	"github.com/Harsh-BH/jobtracker/internal/metrics"
)

const (
	analysisTemperature = 0.3
	analysisMaxTokens   = 500
)

// FallbackSummary is returned when the completion reply is not JSON at all.
const FallbackSummary = "Unable to parse the job description analysis. Please try again with a different job description."

// FallbackKeySkills accompany FallbackSummary.
var FallbackKeySkills = []string{"Communication", "Problem Solving", "Technical Skills"}

// Fallback returns a fresh copy of the fixed fallback analysis.
func Fallback() *domain.JobAnalysis {
	skills := make([]string, len(FallbackKeySkills))
	copy(skills, FallbackKeySkills)
	return &domain.JobAnalysis{Summary: FallbackSummary, KeySkills: skills}
}

// Gateway turns a job description into a summary and key skills through a Completer.
type Gateway struct {
	completer Completer
	logger    *zap.Logger
}

// NewGateway creates a Gateway. A nil completer means no credential is configured
// and every Analyze call fails with domain.ErrAnalysisNotConfigured.
func NewGateway(completer Completer, logger *zap.Logger) *Gateway {
	return &Gateway{completer: completer, logger: logger}
}

// Configured reports whether a completer is available.
func (g *Gateway) Configured() bool {
	return g.completer != nil
}

// Analyze sends description to the completion service and normalizes the reply.
// A reply that is not JSON yields Fallback() with a nil error.
func (g *Gateway) Analyze(ctx context.Context, description string) (*domain.JobAnalysis, error) {
	if g.completer == nil {
		metrics.AnalysisTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, domain.ErrAnalysisNotConfigured
	}

	var userBuf bytes.Buffer
	if err := UserPromptTemplate.Execute(&userBuf, struct{ Description string }{
		Description: description,
	}); err != nil {
		return nil, fmt.Errorf("%w: render prompt: %w", domain.ErrAnalysisFailed, err)
	}

	start := time.Now()
	reply, err := g.completer.Complete(ctx, CompletionRequest{
		System:      SystemPrompt,
		User:        userBuf.String(),
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	})
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		classified := Classify(err)
		metrics.AnalysisTotal.WithLabelValues(metrics.OutcomeError).Inc()
		g.logger.Error("Completion request failed",
			zap.Error(err),
			zap.String("classified_as", classified.Error()),
		)
		return nil, classified
	}

	analysis, fellBack, err := ParseAnalysis(reply)
	if err != nil {
		metrics.AnalysisTotal.WithLabelValues(metrics.OutcomeError).Inc()
		g.logger.Error("Completion reply has invalid format", zap.Error(err), zap.Int("reply_len", len(reply)))
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisFailed, err)
	}
	if fellBack {
		metrics.AnalysisTotal.WithLabelValues(metrics.OutcomeFallback).Inc()
		g.logger.Warn("Completion reply is not JSON, returning fallback analysis",
			zap.String("raw_reply", truncate(reply, 500)),
		)
		return analysis, nil
	}

	metrics.AnalysisTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return analysis, nil
}

// ParseAnalysis trims and decodes a completion reply. When the reply is not JSON
// it returns Fallback() and fellBack=true. When it is JSON without a non-empty
// summary string and a keySkills list of strings it returns
// domain.ErrInvalidAnalysisFormat.
func ParseAnalysis(reply string) (analysis *domain.JobAnalysis, fellBack bool, err error) {
	var raw any
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &raw); err != nil {
		return Fallback(), true, nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, false, domain.ErrInvalidAnalysisFormat
	}
	summary, ok := obj["summary"].(string)
	if !ok || summary == "" {
		return nil, false, domain.ErrInvalidAnalysisFormat
	}
	rawSkills, ok := obj["keySkills"].([]any)
	if !ok {
		return nil, false, domain.ErrInvalidAnalysisFormat
	}

	skills := make([]string, 0, len(rawSkills))
	for _, s := range rawSkills {
		skill, ok := s.(string)
		if !ok {
			return nil, false, domain.ErrInvalidAnalysisFormat
		}
		skills = append(skills, skill)
	}

	return &domain.JobAnalysis{Summary: summary, KeySkills: skills}, false, nil
}

// Classify maps a completer failure onto the analysis error taxonomy.
// The returned error always matches exactly one of the domain.ErrAnalysis* sentinels.
func Classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrAnalysisNotConfigured),
		errors.Is(err, domain.ErrAnalysisQuotaExceeded),
		errors.Is(err, domain.ErrAnalysisRateLimited),
		errors.Is(err, domain.ErrAnalysisFailed):
		return err
	}

	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		switch {
		case upstream.StatusCode == 401:
			return fmt.Errorf("%w: %w", domain.ErrAnalysisNotConfigured, err)
		case upstream.Code == "insufficient_quota" || upstream.Type == "insufficient_quota":
			return fmt.Errorf("%w: %w", domain.ErrAnalysisQuotaExceeded, err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"):
		return fmt.Errorf("%w: %w", domain.ErrAnalysisNotConfigured, err)
	case strings.Contains(msg, "quota"):
		return fmt.Errorf("%w: %w", domain.ErrAnalysisQuotaExceeded, err)
	case strings.Contains(msg, "rate limit"):
		return fmt.Errorf("%w: %w", domain.ErrAnalysisRateLimited, err)
	}

	if upstream != nil && upstream.StatusCode == 429 {
		return fmt.Errorf("%w: %w", domain.ErrAnalysisRateLimited, err)
	}

	return fmt.Errorf("%w: %w", domain.ErrAnalysisFailed, err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
