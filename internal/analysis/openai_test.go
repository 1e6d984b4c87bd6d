package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harsh-BH/jobtracker/internal/domain"
)

func makeTestServer(t *testing.T, statusCode int, body any) (*httptest.Server, *http.Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, srv.Client()
}

func okResponse(content string) chatResponse {
	return chatResponse{Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: content}}}}
}

func TestOpenAIComplete_Success(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, okResponse(`{"summary":"S","keySkills":[]}`))

	c := NewOpenAICompleter(srv.URL, "test-key", "", client)
	got, err := c.Complete(context.Background(), CompletionRequest{System: "sys", User: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"summary":"S","keySkills":[]}` {
		t.Errorf("got %q", got)
	}
}

func TestOpenAIComplete_SendsRequestShape(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(okResponse("ok"))
	}))
	defer srv.Close()

	c := NewOpenAICompleter(srv.URL+"/v1/", "my-secret-key", "", srv.Client())
	_, _ = c.Complete(context.Background(), CompletionRequest{
		System: "sys", User: "usr", Temperature: 0.3, MaxTokens: 500,
	})

	if gotAuth != "Bearer my-secret-key" {
		t.Errorf("Authorization header = %q", gotAuth)
	}
	if gotPath != "/v1/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody.Model != DefaultOpenAIModel {
		t.Errorf("model = %q, want %q", gotBody.Model, DefaultOpenAIModel)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Content != "usr" {
		t.Errorf("unexpected messages: %+v", gotBody.Messages)
	}
	if gotBody.Temperature != 0.3 || gotBody.MaxTokens != 500 {
		t.Errorf("unexpected sampling params: %+v", gotBody)
	}
}

func TestOpenAIComplete_MissingKeyMakesNoRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewOpenAICompleter(srv.URL, "", "", srv.Client())
	_, err := c.Complete(context.Background(), CompletionRequest{User: "hi"})
	if !errors.Is(err, domain.ErrAnalysisNotConfigured) {
		t.Errorf("expected ErrAnalysisNotConfigured, got %v", err)
	}
	if called {
		t.Error("expected no network call without an API key")
	}
}

func TestOpenAIComplete_ErrorEnvelope(t *testing.T) {
	body := map[string]any{
		"error": map[string]any{
			"message": "You exceeded your current quota",
			"type":    "insufficient_quota",
			"code":    "insufficient_quota",
		},
	}
	srv, client := makeTestServer(t, http.StatusTooManyRequests, body)

	c := NewOpenAICompleter(srv.URL, "k", "", client)
	_, err := c.Complete(context.Background(), CompletionRequest{User: "hi"})

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *UpstreamError, got %T: %v", err, err)
	}
	if upstream.StatusCode != http.StatusTooManyRequests || upstream.Code != "insufficient_quota" {
		t.Errorf("unexpected upstream error: %+v", upstream)
	}
	if !errors.Is(Classify(err), domain.ErrAnalysisQuotaExceeded) {
		t.Errorf("expected quota classification, got %v", Classify(err))
	}
}

func TestOpenAIComplete_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	c := NewOpenAICompleter(srv.URL, "k", "", srv.Client())
	_, err := c.Complete(context.Background(), CompletionRequest{User: "hi"})

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
	if upstream.Message != "upstream unavailable" {
		t.Errorf("message = %q", upstream.Message)
	}
}

func TestOpenAIComplete_EmptyChoices(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, chatResponse{})

	c := NewOpenAICompleter(srv.URL, "k", "", client)
	_, err := c.Complete(context.Background(), CompletionRequest{User: "hi"})
	if err == nil {
		t.Fatal("expected error when no choices are returned")
	}
	if !errors.Is(Classify(err), domain.ErrAnalysisFailed) {
		t.Errorf("expected generic failure, got %v", Classify(err))
	}
}

func TestCleanJSONBlock(t *testing.T) {
	got := cleanJSONBlock("```json\n{\"a\":1}\n```")
	if got != `{"a":1}` {
		t.Errorf("cleanJSONBlock = %q", got)
	}
}
