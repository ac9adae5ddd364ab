package translation

import (
	"context"
	"errors"
	"time"

	"verba.fyi/verba/internal/textstats"
)

// DefaultEngineTimeout bounds one adapter call when no timeout is configured.
const DefaultEngineTimeout = 30 * time.Second

// Executor runs one adapter call with a bounded timeout and wraps the raw
// response into a Result. At-most-once: no retry on any failure.
type Executor struct {
	timeout   time.Duration
	estimator *textstats.Estimator
}

func NewExecutor(timeout time.Duration, estimator *textstats.Estimator) *Executor {
	if timeout <= 0 {
		timeout = DefaultEngineTimeout
	}
	if estimator == nil {
		estimator = textstats.NewEstimator(0, nil)
	}
	return &Executor{timeout: timeout, estimator: estimator}
}

// Execute invokes the engine and builds an annotated Result. ProcessingTime
// covers the adapter call only, not resolver or registry overhead.
func (e *Executor) Execute(ctx context.Context, engine Engine, desc EngineDescriptor, req EngineRequest) (*Result, error) {
	if req.Model == "" {
		req.Model = desc.DefaultModel
	}

	engineCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	started := time.Now()
	resp, err := engine.Translate(engineCtx, req)
	elapsed := time.Since(started)

	if err != nil {
		var engineErr *EngineError
		if errors.As(err, &engineErr) {
			return nil, engineErr
		}
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, newEngineError(desc.ID, ErrorKindTimeout, err)
		}
		return nil, newEngineError(desc.ID, classifyTransportError(err), err)
	}

	sourceLang := req.SourceLang
	if resp.DetectedSource != "" {
		sourceLang = resp.DetectedSource
	}
	model := resp.Model
	if model == "" {
		model = req.Model
	}

	result := &Result{
		SourceText:     req.Text,
		TranslatedText: resp.Text,
		SourceLang:     sourceLang,
		TargetLang:     req.TargetLang,
		EngineID:       desc.ID,
		Model:          model,
		QualityScore:   resp.QualityScore,
		Confidence:     resp.Confidence,
		ProcessingTime: elapsed.Seconds(),
	}
	e.annotate(result)
	return result, nil
}

// annotate fills the metric fields. Engine-reported scores win; the heuristic
// fallback only applies when the adapter supplied none.
func (e *Executor) annotate(result *Result) {
	result.WordCount = e.estimator.WordCount(result.SourceText, result.SourceLang)
	result.CharacterCount = e.estimator.CharacterCount(result.SourceText)
	result.Keywords = e.estimator.Keywords(result.SourceText)
	result.Readability = e.estimator.Readability(result.TranslatedText, result.TargetLang)

	if result.QualityScore == nil && result.TranslatedText != "" {
		score := e.estimator.Score(result.SourceText, result.TranslatedText, result.SourceLang, result.TargetLang)
		result.QualityScore = &score
	}
}
