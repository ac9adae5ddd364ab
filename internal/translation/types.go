package translation

// Style is a coarse tone/register preset applied to engine-side phrasing.
// LLM-backed engines map it to an instruction prefix; classical MT engines
// ignore it.
type Style string

const (
	StyleNatural   Style = "natural"
	StyleFormal    Style = "formal"
	StyleCasual    Style = "casual"
	StyleTechnical Style = "technical"
	StyleLiterary  Style = "literary"
)

// DefaultStyle is used when a request leaves the style unset.
const DefaultStyle = StyleNatural

var knownStyles = map[Style]struct{}{
	StyleNatural:   {},
	StyleFormal:    {},
	StyleCasual:    {},
	StyleTechnical: {},
	StyleLiterary:  {},
}

// Request describes one single-engine translation request.
type Request struct {
	SourceText string `json:"source_text"`
	SourceLang string `json:"source_language"` // ISO 639-1 code or "auto"
	TargetLang string `json:"target_language"`
	EngineID   string `json:"engine,omitempty"` // empty resolves to the default engine
	Model      string `json:"model,omitempty"`  // empty resolves to the engine default
	Style      Style  `json:"style,omitempty"`
}

// CompareRequest fans the same text out to a set of engines.
type CompareRequest struct {
	SourceText string   `json:"source_text"`
	SourceLang string   `json:"source_language"`
	TargetLang string   `json:"target_language"`
	EngineIDs  []string `json:"engines"`
}

// Result is one completed translation. Immutable once returned.
type Result struct {
	SourceText     string             `json:"source_text"`
	TranslatedText string             `json:"translated_text"`
	SourceLang     string             `json:"resolved_source_language"`
	TargetLang     string             `json:"target_language"`
	EngineID       string             `json:"engine_id"`
	Model          string             `json:"model,omitempty"`
	QualityScore   *float64           `json:"quality_score,omitempty"`    // 0..10
	Confidence     *float64           `json:"confidence_score,omitempty"` // 0..1
	ProcessingTime float64            `json:"processing_time_seconds"`
	WordCount      int                `json:"word_count"`
	CharacterCount int                `json:"character_count"`
	Keywords       []string           `json:"keywords"`
	Readability    map[string]float64 `json:"readability"`
}

// CompareResult aggregates per-engine outcomes of one compare call.
// The union of Results and Errors keys is exactly the requested engine set.
type CompareResult struct {
	SourceText string             `json:"source_text"`
	SourceLang string             `json:"resolved_source_language"`
	TargetLang string             `json:"target_language"`
	Results    map[string]*Result `json:"results"`
	Errors     map[string]string  `json:"errors"`
	Best       *Result            `json:"best_translation,omitempty"`
}

// EngineDescriptor is the registry's immutable view of one configured engine.
type EngineDescriptor struct {
	ID              string   `json:"id"`
	DisplayName     string   `json:"display_name"`
	Enabled         bool     `json:"enabled"`
	SupportedModels []string `json:"supported_models"`
	DefaultModel    string   `json:"default_model"`
}
