package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Harsh-BH/jobtracker/internal/domain"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-3.5-turbo"

// OpenAICompleter calls the OpenAI /chat/completions endpoint.
type OpenAICompleter struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAICompleter creates a completer targeting baseURL (e.g. https://api.openai.com/v1).
func NewOpenAICompleter(baseURL, apiKey, model string, httpClient *http.Client) *OpenAICompleter {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAICompleter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Complete sends req to OpenAI and returns the first choice's content.
func (p *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if p.apiKey == "" {
		return "", domain.ErrAnalysisNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	var chatResp chatResponse
	decodeErr := json.Unmarshal(respBytes, &chatResp)

	if resp.StatusCode != http.StatusOK {
		upstream := &UpstreamError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBytes))}
		if decodeErr == nil && chatResp.Error != nil {
			upstream.Type = chatResp.Error.Type
			upstream.Code = chatResp.Error.Code
			upstream.Message = chatResp.Error.Message
		}
		return "", upstream
	}
	if decodeErr != nil {
		return "", fmt.Errorf("parse completion response: %w", decodeErr)
	}
	if chatResp.Error != nil {
		return "", &UpstreamError{
			StatusCode: resp.StatusCode,
			Type:       chatResp.Error.Type,
			Code:       chatResp.Error.Code,
			Message:    chatResp.Error.Message,
		}
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from completion service")
	}
	return chatResp.Choices[0].Message.Content, nil
}
