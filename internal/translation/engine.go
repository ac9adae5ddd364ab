package translation

import "context"

// Engine is one provider-specific translation backend exposed through the
// common translate contract.
type Engine interface {
	Translate(ctx context.Context, req EngineRequest) (*EngineResponse, error)
	Name() string
	Models() []string
}

// EngineRequest describes one adapter call. Languages are already resolved;
// adapters never see "auto".
type EngineRequest struct {
	Text       string
	SourceLang string // ISO 639-1 (for example: "zh", "en")
	TargetLang string
	Model      string
	Style      Style
}

// EngineResponse contains translated text and provider metadata. An empty
// Text is a valid (if low-quality) result; adapters must not reject it.
type EngineResponse struct {
	Text           string
	Model          string
	DetectedSource string   // set when the provider reports a detected source language
	QualityScore   *float64 // engine-reported, 0..10
	Confidence     *float64 // engine-reported, 0..1
}

func floatPtr(v float64) *float64 {
	return &v
}
