package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultOpenAIBaseURL points to the hosted OpenAI API. Any
	// OpenAI-compatible endpoint works.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultOpenAIModel is used when a request leaves the model unset.
	DefaultOpenAIModel = "gpt-3.5-turbo"
)

var openAIModels = []string{"gpt-3.5-turbo", "gpt-4", "gpt-4-turbo"}

// openAI reports high confidence for chat-based translation output.
const openAIConfidence = 0.9

// OpenAIEngine translates text through an OpenAI-compatible chat completions
// endpoint, mapping the style preset to an instruction prefix.
type OpenAIEngine struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenAIEngine(apiKey, baseURL string) *OpenAIEngine {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultOpenAIBaseURL
	}
	return &OpenAIEngine{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: trimmed,
		client:  engineHTTPClient(),
	}
}

func (e *OpenAIEngine) Name() string {
	return "openai"
}

func (e *OpenAIEngine) Models() []string {
	models := make([]string, len(openAIModels))
	copy(models, openAIModels)
	return models
}

func (e *OpenAIEngine) Translate(ctx context.Context, req EngineRequest) (*EngineResponse, error) {
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = DefaultOpenAIModel
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a professional translation assistant producing high quality translations across languages."},
			{Role: "user", Content: buildTranslationPrompt(req)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)

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
			fmt.Errorf("status %d: %s", resp.StatusCode, chatErrorMessage(respBody)))
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode translation response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, newEngineError(e.Name(), ErrorKindProvider, fmt.Errorf("response missing choices"))
	}

	// An empty completion is a valid (if poor) translation.
	return &EngineResponse{
		Text:       strings.TrimSpace(parsed.Choices[0].Message.Content),
		Model:      model,
		Confidence: floatPtr(openAIConfidence),
	}, nil
}

// buildTranslationPrompt renders the common LLM instruction, folding the
// style preset into the phrasing requirement.
func buildTranslationPrompt(req EngineRequest) string {
	return fmt.Sprintf(
		"Translate the following %s text into %s. The translation should be %s and faithful to the meaning.\n\n%s\n\nReturn only the translation, nothing else.",
		LanguageName(req.SourceLang), LanguageName(req.TargetLang), styleInstruction(req.Style), req.Text)
}

func styleInstruction(style Style) string {
	switch style {
	case StyleFormal:
		return "formal and precise"
	case StyleCasual:
		return "casual and conversational"
	case StyleTechnical:
		return "technically accurate, preserving terminology"
	case StyleLiterary:
		return "literary and expressive"
	default:
		return "natural and fluent"
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func chatErrorMessage(body []byte) string {
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

// engineHTTPClient builds the shared client shape used by HTTP-backed
// adapters. Timeouts come from the executor's context, not the transport.
func engineHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
