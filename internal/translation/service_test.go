package translation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestService(registry *Registry, detector Detector) *Service {
	return NewService(registry, detector, zerolog.Nop(), Options{})
}

func TestServiceTranslateResolvesAutoSource(t *testing.T) {
	engine := &stubEngine{name: "alpha", resp: EngineResponse{Text: "Bonjour le monde"}}
	detector := &stubDetector{code: "en", confidence: 0.97}
	svc := newTestService(newTestRegistry(engine), detector)

	result, err := svc.Translate(context.Background(), Request{
		SourceText: "Hello world",
		SourceLang: LangAuto,
		TargetLang: "fr",
		EngineID:   "alpha",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SourceLang != "en" {
		t.Fatalf("expected detected source en, got %q", result.SourceLang)
	}
	if detector.calls != 1 {
		t.Fatalf("expected one detector call, got %d", detector.calls)
	}
	if result.TranslatedText != "Bonjour le monde" {
		t.Fatalf("unexpected translation %q", result.TranslatedText)
	}
}

func TestServicePassthroughSameLanguage(t *testing.T) {
	engine := &stubEngine{name: "alpha", resp: EngineResponse{Text: "should never be used"}}
	svc := newTestService(newTestRegistry(engine), &stubDetector{})

	for run := 0; run < 2; run++ {
		result, err := svc.Translate(context.Background(), Request{
			SourceText: "Hello world, nothing to do here.",
			SourceLang: "en",
			TargetLang: "en",
			EngineID:   "alpha",
		})
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", run, err)
		}
		if result.TranslatedText != result.SourceText {
			t.Fatalf("run %d: passthrough must return the source verbatim, got %q", run, result.TranslatedText)
		}
		if result.QualityScore != nil || result.Confidence != nil {
			t.Fatalf("run %d: passthrough must not carry scores", run)
		}
		if result.ProcessingTime != 0 {
			t.Fatalf("run %d: passthrough processing time should be zero, got %v", run, result.ProcessingTime)
		}
		if result.WordCount == 0 || result.CharacterCount == 0 || result.Readability == nil {
			t.Fatalf("run %d: passthrough still annotates metrics, got %+v", run, result)
		}
	}
	if engine.callCount() != 0 {
		t.Fatalf("passthrough must not call the engine, got %d calls", engine.callCount())
	}
}

func TestServicePassthroughAfterDetection(t *testing.T) {
	engine := &stubEngine{name: "alpha"}
	svc := newTestService(newTestRegistry(engine), &stubDetector{code: "fr", confidence: 0.9})

	result, err := svc.Translate(context.Background(), Request{
		SourceText: "Bonjour tout le monde",
		SourceLang: LangAuto,
		TargetLang: "fr",
		EngineID:   "alpha",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TranslatedText != "Bonjour tout le monde" {
		t.Fatalf("expected verbatim passthrough, got %q", result.TranslatedText)
	}
	if engine.callCount() != 0 {
		t.Fatalf("detected same-language pair must not reach the engine")
	}
}

func TestServicePassthroughAcrossRegionVariants(t *testing.T) {
	// en-US -> en-GB shares the primary subtag, so no engine runs.
	engine := &stubEngine{name: "alpha"}
	svc := newTestService(newTestRegistry(engine), &stubDetector{})

	result, err := svc.Translate(context.Background(), Request{
		SourceText: "Hello world",
		SourceLang: "en-US",
		TargetLang: "en-GB",
		EngineID:   "alpha",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TranslatedText != "Hello world" {
		t.Fatalf("expected verbatim passthrough, got %q", result.TranslatedText)
	}
	if engine.callCount() != 0 {
		t.Fatalf("region variants of one language must not reach the engine")
	}
}

func TestServiceTranslateCancellation(t *testing.T) {
	engine := &stubEngine{name: "slow", delay: 2 * time.Second, resp: EngineResponse{Text: "late"}}
	svc := NewService(newTestRegistry(engine), &stubDetector{}, zerolog.Nop(), Options{EngineTimeout: 5 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	started := time.Now()
	_, err := svc.Translate(ctx, Request{
		SourceText: "Hello",
		SourceLang: "en",
		TargetLang: "fr",
		EngineID:   "slow",
	})
	if !errors.Is(err, ErrRequestCancelled) {
		t.Fatalf("expected ErrRequestCancelled, got %v", err)
	}
	if elapsed := time.Since(started); elapsed > time.Second {
		t.Fatalf("cancellation should stop the engine call promptly, took %v", elapsed)
	}
}

func TestServiceRejectsEmptyText(t *testing.T) {
	svc := newTestService(newTestRegistry(&stubEngine{name: "alpha"}), &stubDetector{})

	_, err := svc.Translate(context.Background(), Request{
		SourceText: "",
		SourceLang: "en",
		TargetLang: "fr",
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "source_text" {
		t.Fatalf("expected source_text field, got %q", validationErr.Field)
	}
}

func TestServiceRejectsOversizedText(t *testing.T) {
	engine := &stubEngine{name: "alpha"}
	svc := NewService(newTestRegistry(engine), &stubDetector{}, zerolog.Nop(), Options{MaxTextLength: 10})

	_, err := svc.Translate(context.Background(), Request{
		SourceText: strings.Repeat("a", 11),
		SourceLang: "en",
		TargetLang: "fr",
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if engine.callCount() != 0 {
		t.Fatalf("validation must run before any engine call")
	}
}

func TestServiceMaxLengthCountsRunes(t *testing.T) {
	svc := NewService(newTestRegistry(&stubEngine{name: "alpha", resp: EngineResponse{Text: "ok"}}), &stubDetector{}, zerolog.Nop(), Options{MaxTextLength: 10})

	// Ten CJK characters are well over ten bytes but exactly at the limit.
	if _, err := svc.Translate(context.Background(), Request{
		SourceText: strings.Repeat("好", 10),
		SourceLang: "zh",
		TargetLang: "en",
	}); err != nil {
		t.Fatalf("rune-length text at the limit should pass, got %v", err)
	}
}

func TestServiceUnknownEngine(t *testing.T) {
	svc := newTestService(newTestRegistry(&stubEngine{name: "alpha"}), &stubDetector{})

	_, err := svc.Translate(context.Background(), Request{
		SourceText: "Hello",
		SourceLang: "en",
		TargetLang: "fr",
		EngineID:   "ghost",
	})
	var unknownErr *UnknownEngineError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownEngineError, got %v", err)
	}
}

func TestServiceCompareRejectsEmptyEngineList(t *testing.T) {
	svc := newTestService(newTestRegistry(&stubEngine{name: "alpha"}), &stubDetector{})

	_, err := svc.Compare(context.Background(), CompareRequest{
		SourceText: "Hello",
		SourceLang: "en",
		TargetLang: "fr",
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestServiceCompareResolvesLanguagesOnce(t *testing.T) {
	alpha := &stubEngine{name: "alpha", resp: EngineResponse{Text: "Hallo"}}
	beta := &stubEngine{name: "beta", resp: EngineResponse{Text: "Servus"}}
	detector := &stubDetector{code: "en", confidence: 0.95}
	svc := newTestService(newTestRegistry(alpha, beta), detector)

	result, err := svc.Compare(context.Background(), CompareRequest{
		SourceText: "Hello",
		SourceLang: LangAuto,
		TargetLang: "de",
		EngineIDs:  []string{"alpha", "beta"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detector.calls != 1 {
		t.Fatalf("detection should run once per request, got %d calls", detector.calls)
	}
	if result.SourceLang != "en" {
		t.Fatalf("expected resolved source en, got %q", result.SourceLang)
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected both engines to succeed, got %v", result.Errors)
	}
}
