package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultAnthropicBaseURL = "https://api.anthropic.com"
	DefaultAnthropicModel   = "claude-3-haiku-20240307"

	anthropicVersion    = "2023-06-01"
	anthropicConfidence = 0.88
	anthropicMaxTokens  = 4096
)

var anthropicModels = []string{
	"claude-3-haiku-20240307",
	"claude-3-sonnet-20240229",
	"claude-3-opus-20240229",
}

// AnthropicEngine translates text through the Anthropic messages API.
type AnthropicEngine struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAnthropicEngine(apiKey, baseURL string) *AnthropicEngine {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultAnthropicBaseURL
	}
	return &AnthropicEngine{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: trimmed,
		client:  engineHTTPClient(),
	}
}

func (e *AnthropicEngine) Name() string {
	return "anthropic"
}

func (e *AnthropicEngine) Models() []string {
	models := make([]string, len(anthropicModels))
	copy(models, anthropicModels)
	return models
}

func (e *AnthropicEngine) Translate(ctx context.Context, req EngineRequest) (*EngineResponse, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = DefaultAnthropicModel
	}

	body, err := json.Marshal(anthropicMessageRequest{
		Model:     model,
		MaxTokens: anthropicMaxTokens,
		Messages: []chatMessage{
			{Role: "user", Content: buildTranslationPrompt(req)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", e.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, newEngineError(e.Name(), classifyTransportError(err), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read translation response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newEngineError(e.Name(), classifyStatus(resp.StatusCode),
			fmt.Errorf("status %d: %s", resp.StatusCode, anthropicErrorMessage(respBody)))
	}

	var parsed anthropicMessageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode translation response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return nil, newEngineError(e.Name(), ErrorKindProvider, fmt.Errorf("response missing content"))
	}

	return &EngineResponse{
		Text:       strings.TrimSpace(parsed.Content[0].Text),
		Model:      model,
		Confidence: floatPtr(anthropicConfidence),
	}, nil
}

type anthropicMessageRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type anthropicMessageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func anthropicErrorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error.Message); msg != "" {
			return msg
		}
	}
	return strings.TrimSpace(string(body))
}
