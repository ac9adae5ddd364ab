// Package langdetect wraps the lingua-go statistical language detector behind
// the core's detection contract.
package langdetect

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

// minDetectableLetters guards against samples too short for the statistical
// models to produce a trustworthy answer.
const minDetectableLetters = 4

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Lingua detects the language of free text. The underlying models are
// expensive to load; a single process-wide instance is shared.
type Lingua struct{}

func New() *Lingua {
	return &Lingua{}
}

// Detect returns the ISO 639-1 code of the dominant language with lingua's
// confidence for it. Undetectable or too-short samples return an error so the
// caller can reject the request instead of guessing.
func (l *Lingua) Detect(ctx context.Context, text string) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	sample := strings.TrimSpace(text)
	if sample == "" {
		return "", 0, fmt.Errorf("text is empty")
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < minDetectableLetters {
		return "", 0, fmt.Errorf("text too short to detect a language")
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return "", 0, fmt.Errorf("language could not be determined")
	}

	code := strings.ToLower(language.IsoCode639_1().String())
	if len(code) != 2 {
		return "", 0, fmt.Errorf("detected language has no ISO 639-1 code")
	}

	confidence := getDetector().ComputeLanguageConfidence(sample, language)
	return code, confidence, nil
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithPreloadedLanguageModels().
			Build()
	})
	return detector
}
