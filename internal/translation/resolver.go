package translation

import (
	"context"
	"fmt"

	xlang "golang.org/x/text/language"

	"verba.fyi/verba/internal/language"
)

// LangAuto asks the resolver to detect the source language before translating.
const LangAuto = "auto"

// Detector is the language-detection collaborator consumed when a request
// carries source language "auto".
type Detector interface {
	Detect(ctx context.Context, text string) (code string, confidence float64, err error)
}

// Resolver validates and normalizes language codes and style presets.
type Resolver struct {
	detector Detector
}

func NewResolver(detector Detector) *Resolver {
	return &Resolver{detector: detector}
}

// ResolveLanguages normalizes the source/target pair, running detection when
// the source is "auto". Detection failure rejects the request with
// ErrLanguageDetection; the source language is never silently guessed.
func (r *Resolver) ResolveLanguages(ctx context.Context, text, sourceLang, targetLang string) (string, string, error) {
	target := language.NormalizeCode(targetLang)
	if target == "" || target == LangAuto {
		return "", "", newValidationError("target_language", "a concrete target language is required")
	}
	if err := checkLanguageCode("target_language", target); err != nil {
		return "", "", err
	}

	source := language.NormalizeCode(sourceLang)
	if source == "" {
		source = LangAuto
	}
	if source != LangAuto {
		if err := checkLanguageCode("source_language", source); err != nil {
			return "", "", err
		}
		return source, target, nil
	}

	if r == nil || r.detector == nil {
		return "", "", fmt.Errorf("%w: no detector configured", ErrLanguageDetection)
	}
	detected, confidence, err := r.detector.Detect(ctx, text)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrLanguageDetection, err)
	}
	detected = language.NormalizeCode(detected)
	if detected == "" {
		return "", "", fmt.Errorf("%w: detector returned no language (confidence %.2f)", ErrLanguageDetection, confidence)
	}
	return detected, target, nil
}

// ResolveStyle validates a style preset. An empty style resolves to the
// default; values outside the enumerated set are rejected.
func (r *Resolver) ResolveStyle(raw Style) (Style, error) {
	if raw == "" {
		return DefaultStyle, nil
	}
	if _, ok := knownStyles[raw]; !ok {
		return "", newValidationError("style", "unsupported style %q", string(raw))
	}
	return raw, nil
}

// checkLanguageCode requires a structurally valid tag that is also in the
// supported language table.
func checkLanguageCode(field, code string) error {
	if _, err := xlang.Parse(code); err != nil {
		return newValidationError(field, "malformed language code %q", code)
	}
	if !IsSupportedLanguage(code) {
		return newValidationError(field, "unsupported language code %q", code)
	}
	return nil
}
