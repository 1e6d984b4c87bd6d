package analysis

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/domain"
)

type fakeCompleter struct {
	reply string
	err   error
	calls int
	last  CompletionRequest
}

func (f *fakeCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	f.calls++
	f.last = req
	return f.reply, f.err
}

func TestAnalyze_WellFormedReply(t *testing.T) {
	fc := &fakeCompleter{reply: `{"summary":"X","keySkills":["a","b","c"]}`}
	gw := NewGateway(fc, zap.NewNop())

	got, err := gw.Analyze(context.Background(), "We are hiring a Go engineer.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Summary != "X" {
		t.Errorf("expected summary X, got %q", got.Summary)
	}
	if !reflect.DeepEqual(got.KeySkills, []string{"a", "b", "c"}) {
		t.Errorf("unexpected key skills: %v", got.KeySkills)
	}
}

func TestAnalyze_SendsFixedPrompt(t *testing.T) {
	fc := &fakeCompleter{reply: `{"summary":"X","keySkills":[]}`}
	gw := NewGateway(fc, zap.NewNop())

	_, _ = gw.Analyze(context.Background(), "Senior Go role, remote.")

	if fc.last.User != "Analyze this job description:\n\nSenior Go role, remote." {
		t.Errorf("unexpected user message: %q", fc.last.User)
	}
	if !strings.HasPrefix(fc.last.System, "You are a career advisor AI.") {
		t.Errorf("unexpected system prompt: %q", fc.last.System)
	}
	if fc.last.Temperature != 0.3 {
		t.Errorf("expected temperature 0.3, got %v", fc.last.Temperature)
	}
	if fc.last.MaxTokens != 500 {
		t.Errorf("expected max tokens 500, got %d", fc.last.MaxTokens)
	}
}

func TestAnalyze_NonJSONReplyReturnsFallback(t *testing.T) {
	fc := &fakeCompleter{reply: "Sorry, I cannot help with that."}
	gw := NewGateway(fc, zap.NewNop())

	got, err := gw.Analyze(context.Background(), "A long enough description")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Summary != FallbackSummary {
		t.Errorf("expected fallback summary, got %q", got.Summary)
	}
	want := []string{"Communication", "Problem Solving", "Technical Skills"}
	if !reflect.DeepEqual(got.KeySkills, want) {
		t.Errorf("expected fallback skills %v, got %v", want, got.KeySkills)
	}
}

func TestAnalyze_NoCompleterFailsWithoutCall(t *testing.T) {
	gw := NewGateway(nil, zap.NewNop())

	_, err := gw.Analyze(context.Background(), "A long enough description")
	if !errors.Is(err, domain.ErrAnalysisNotConfigured) {
		t.Errorf("expected ErrAnalysisNotConfigured, got %v", err)
	}
	if !domain.IsAuthorizationError(err) {
		t.Error("expected authorization-class error")
	}
}

func TestAnalyze_InvalidShapeIsGenericFailure(t *testing.T) {
	fc := &fakeCompleter{reply: `{"summary":"only a summary"}`}
	gw := NewGateway(fc, zap.NewNop())

	_, err := gw.Analyze(context.Background(), "A long enough description")
	if !errors.Is(err, domain.ErrAnalysisFailed) {
		t.Errorf("expected ErrAnalysisFailed, got %v", err)
	}
	if !errors.Is(err, domain.ErrInvalidAnalysisFormat) {
		t.Errorf("expected ErrInvalidAnalysisFormat in chain, got %v", err)
	}
}

func TestAnalyze_CompleterErrorsAreClassified(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"missing key", domain.ErrAnalysisNotConfigured, domain.ErrAnalysisNotConfigured},
		{"unauthorized", &UpstreamError{StatusCode: 401, Message: "Incorrect API key provided"}, domain.ErrAnalysisNotConfigured},
		{"quota code", &UpstreamError{StatusCode: 429, Code: "insufficient_quota", Message: "You exceeded your current quota"}, domain.ErrAnalysisQuotaExceeded},
		{"rate limit message", &UpstreamError{StatusCode: 429, Message: "Rate limit reached for requests"}, domain.ErrAnalysisRateLimited},
		{"bare 429", &UpstreamError{StatusCode: 429, Message: "slow down"}, domain.ErrAnalysisRateLimited},
		{"server error", &UpstreamError{StatusCode: 500, Message: "boom"}, domain.ErrAnalysisFailed},
		{"transport", errors.New("dial tcp: connection refused"), domain.ErrAnalysisFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := NewGateway(&fakeCompleter{err: tt.err}, zap.NewNop())
			_, err := gw.Analyze(context.Background(), "A long enough description")
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		fellBack bool
		wantErr  bool
	}{
		{"valid", `{"summary":"S","keySkills":["Go"]}`, false, false},
		{"valid with whitespace", "\n  {\"summary\":\"S\",\"keySkills\":[]}  \n", false, false},
		{"not json", "definitely not json", true, false},
		{"blank", "   ", true, false},
		{"json array", `["a","b"]`, false, true},
		{"json null", `null`, false, true},
		{"empty summary", `{"summary":"","keySkills":["a"]}`, false, true},
		{"skills not list", `{"summary":"S","keySkills":"Go"}`, false, true},
		{"skills not strings", `{"summary":"S","keySkills":[1,2]}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fellBack, err := ParseAnalysis(tt.reply)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidAnalysisFormat) {
					t.Errorf("expected ErrInvalidAnalysisFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fellBack != tt.fellBack {
				t.Errorf("fellBack = %v, want %v", fellBack, tt.fellBack)
			}
			if got == nil {
				t.Fatal("expected analysis")
			}
		})
	}
}

func TestFallback_ReturnsIndependentCopies(t *testing.T) {
	a := Fallback()
	a.KeySkills[0] = "changed"
	if Fallback().KeySkills[0] != "Communication" {
		t.Error("Fallback shares state between calls")
	}
}
