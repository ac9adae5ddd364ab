package translation

import (
	"context"
	"fmt"
	"strings"

	translate "cloud.google.com/go/translate"
	xlang "golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleModelName is the fixed model identifier reported for Google results;
// the v2 API does not expose model selection.
const GoogleModelName = "translate-v2"

const googleConfidence = 0.85

// GoogleEngine translates text through the Google Cloud Translation API.
// Classical MT: the style preset is ignored.
type GoogleEngine struct {
	apiKey string
}

func NewGoogleEngine(apiKey string) *GoogleEngine {
	return &GoogleEngine{apiKey: strings.TrimSpace(apiKey)}
}

func (e *GoogleEngine) Name() string {
	return "google"
}

func (e *GoogleEngine) Models() []string {
	return []string{GoogleModelName}
}

func (e *GoogleEngine) Translate(ctx context.Context, req EngineRequest) (*EngineResponse, error) {
	targetTag, err := xlang.Parse(req.TargetLang)
	if err != nil {
		return nil, newEngineError(e.Name(), ErrorKindUnsupportedPair,
			fmt.Errorf("target language %q: %w", req.TargetLang, err))
	}

	client, err := translate.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return nil, newEngineError(e.Name(), ErrorKindAuth, fmt.Errorf("create client: %w", err))
	}
	defer client.Close()

	var opts *translate.Options
	if req.SourceLang != "" {
		sourceTag, parseErr := xlang.Parse(req.SourceLang)
		if parseErr != nil {
			return nil, newEngineError(e.Name(), ErrorKindUnsupportedPair,
				fmt.Errorf("source language %q: %w", req.SourceLang, parseErr))
		}
		opts = &translate.Options{Source: sourceTag, Format: translate.Text}
	}

	translations, err := client.Translate(ctx, []string{req.Text}, targetTag, opts)
	if err != nil {
		return nil, newEngineError(e.Name(), classifyTransportError(err), err)
	}
	if len(translations) == 0 {
		return nil, newEngineError(e.Name(), ErrorKindProvider, fmt.Errorf("no translation returned"))
	}

	resp := &EngineResponse{
		Text:       translations[0].Text,
		Model:      GoogleModelName,
		Confidence: floatPtr(googleConfidence),
	}
	if translations[0].Source != (xlang.Tag{}) {
		resp.DetectedSource = strings.ToLower(translations[0].Source.String())
	}
	return resp, nil
}
