package translation

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"verba.fyi/verba/internal/language"
	"verba.fyi/verba/internal/textstats"
)

// DefaultMaxTextLength bounds the source text when no limit is configured.
const DefaultMaxTextLength = 10000

// Options tunes a Service.
type Options struct {
	EngineTimeout time.Duration
	MaxTextLength int
	KeywordLimit  int
	Scorer        textstats.Scorer
}

// Service is the orchestration entry point: single-engine translation and
// multi-engine comparison over an immutable engine registry. All value
// objects are request-scoped; the service retains nothing.
type Service struct {
	registry   *Registry
	resolver   *Resolver
	executor   *Executor
	comparator *Comparator
	estimator  *textstats.Estimator
	maxLength  int
	logger     zerolog.Logger
}

func NewService(registry *Registry, detector Detector, logger zerolog.Logger, opts Options) *Service {
	maxLength := opts.MaxTextLength
	if maxLength <= 0 {
		maxLength = DefaultMaxTextLength
	}
	estimator := textstats.NewEstimator(opts.KeywordLimit, opts.Scorer)
	executor := NewExecutor(opts.EngineTimeout, estimator)

	return &Service{
		registry:   registry,
		resolver:   NewResolver(detector),
		executor:   executor,
		comparator: NewComparator(registry, executor, logger),
		estimator:  estimator,
		maxLength:  maxLength,
		logger:     logger,
	}
}

// Registry exposes the immutable engine registry for read-only consumers.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Translate runs one request against one engine. Validation happens before
// any engine call; a same-language pair short-circuits to a verbatim
// pass-through with the quality score absent.
func (s *Service) Translate(ctx context.Context, req Request) (*Result, error) {
	if err := s.checkText(req.SourceText); err != nil {
		return nil, err
	}
	style, err := s.resolver.ResolveStyle(req.Style)
	if err != nil {
		return nil, err
	}
	sourceLang, targetLang, err := s.resolver.ResolveLanguages(ctx, req.SourceText, req.SourceLang, req.TargetLang)
	if err != nil {
		return nil, err
	}

	engine, desc, err := s.registry.Resolve(req.EngineID)
	if err != nil {
		return nil, err
	}

	if language.SamePrimary(sourceLang, targetLang) {
		return s.passthrough(req.SourceText, sourceLang, desc), nil
	}

	result, err := s.executor.Execute(ctx, engine, desc, EngineRequest{
		Text:       req.SourceText,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		Model:      req.Model,
		Style:      style,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrRequestCancelled
		}
		return nil, err
	}

	s.logger.Info().
		Str("engine", desc.ID).
		Str("source_lang", result.SourceLang).
		Str("target_lang", result.TargetLang).
		Float64("processing_time", result.ProcessingTime).
		Msg("translation completed")
	return result, nil
}

// Compare fans the request out to the given engine set and aggregates
// successes and failures. Partial failure is not total failure.
func (s *Service) Compare(ctx context.Context, req CompareRequest) (*CompareResult, error) {
	if err := s.checkText(req.SourceText); err != nil {
		return nil, err
	}
	if len(req.EngineIDs) == 0 {
		return nil, newValidationError("engines", "at least one engine id is required")
	}
	sourceLang, targetLang, err := s.resolver.ResolveLanguages(ctx, req.SourceText, req.SourceLang, req.TargetLang)
	if err != nil {
		return nil, err
	}

	compare, err := s.comparator.Compare(ctx, EngineRequest{
		Text:       req.SourceText,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		Style:      DefaultStyle,
	}, req.EngineIDs)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("succeeded", len(compare.Results)).
		Int("failed", len(compare.Errors)).
		Str("target_lang", targetLang).
		Msg("comparison completed")
	return compare, nil
}

// passthrough is the documented same-language policy: verbatim source text,
// no engine call, quality and confidence absent, zero processing time.
func (s *Service) passthrough(text, lang string, desc EngineDescriptor) *Result {
	result := &Result{
		SourceText:     text,
		TranslatedText: text,
		SourceLang:     lang,
		TargetLang:     lang,
		EngineID:       desc.ID,
		Model:          desc.DefaultModel,
		ProcessingTime: 0,
	}
	result.WordCount = s.estimator.WordCount(text, lang)
	result.CharacterCount = s.estimator.CharacterCount(text)
	result.Keywords = s.estimator.Keywords(text)
	result.Readability = s.estimator.Readability(text, lang)
	return result
}

func (s *Service) checkText(text string) error {
	if text == "" {
		return newValidationError("source_text", "text is required")
	}
	if length := len([]rune(text)); length > s.maxLength {
		return newValidationError("source_text", "text length %d exceeds the %d character limit", length, s.maxLength)
	}
	return nil
}
