package translation

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Comparator fans one resolved request out to multiple engines concurrently
// and aggregates the per-engine outcomes. Engines are isolated: one failure
// never cancels or delays the others.
type Comparator struct {
	registry *Registry
	executor *Executor
	logger   zerolog.Logger
}

func NewComparator(registry *Registry, executor *Executor, logger zerolog.Logger) *Comparator {
	return &Comparator{registry: registry, executor: executor, logger: logger}
}

// Compare runs one executor per requested engine id. The union of result and
// error keys is exactly the deduplicated requested set. Zero successes fail
// the whole call with ErrAllEnginesFailed; caller cancellation overrides any
// partial results with ErrRequestCancelled.
func (c *Comparator) Compare(ctx context.Context, req EngineRequest, engineIDs []string) (*CompareResult, error) {
	ids := dedupeEngineIDs(engineIDs)
	if len(ids) == 0 {
		return nil, newValidationError("engines", "at least one engine id is required")
	}

	type outcome struct {
		engineID string
		result   *Result
		err      error
	}
	outcomes := make(chan outcome, len(ids))

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(engineID string) {
			defer wg.Done()

			engine, desc, err := c.registry.Resolve(engineID)
			if err != nil {
				outcomes <- outcome{engineID: engineID, err: err}
				return
			}
			result, err := c.executor.Execute(ctx, engine, desc, req)
			outcomes <- outcome{engineID: engineID, result: result, err: err}
		}(id)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	compare := &CompareResult{
		SourceText: req.Text,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		Results:    make(map[string]*Result, len(ids)),
		Errors:     make(map[string]string),
	}
	for oc := range outcomes {
		if oc.err != nil {
			c.logger.Warn().
				Str("engine", oc.engineID).
				Str("target_lang", req.TargetLang).
				Err(oc.err).
				Msg("engine translation failed")
			compare.Errors[oc.engineID] = oc.err.Error()
			continue
		}
		compare.Results[oc.engineID] = oc.result
	}

	// Cancellation overrides partial results entirely.
	if err := ctx.Err(); err != nil {
		return nil, ErrRequestCancelled
	}

	if len(compare.Results) == 0 {
		return nil, ErrAllEnginesFailed
	}

	compare.Best = c.selectBest(compare.Results)
	return compare, nil
}

// selectBest picks the highest quality score; with no scored entries it falls
// back to the lowest processing time. Ties break on the registry's enabled
// order, first wins, which keeps selection reproducible under concurrency.
func (c *Comparator) selectBest(results map[string]*Result) *Result {
	var best *Result
	for _, id := range orderedResultIDs(results, c.registry) {
		candidate := results[id]
		if best == nil {
			best = candidate
			continue
		}
		if betterThan(candidate, best) {
			best = candidate
		}
	}
	return best
}

// betterThan compares strictly: on equal footing the incumbent wins, so
// registry-order iteration yields the deterministic tie-break.
func betterThan(candidate, incumbent *Result) bool {
	switch {
	case candidate.QualityScore != nil && incumbent.QualityScore != nil:
		return *candidate.QualityScore > *incumbent.QualityScore
	case candidate.QualityScore != nil:
		return true
	case incumbent.QualityScore != nil:
		return false
	default:
		return candidate.ProcessingTime < incumbent.ProcessingTime
	}
}

// orderedResultIDs returns result keys in the registry's enabled order so
// iteration is deterministic regardless of completion order.
func orderedResultIDs(results map[string]*Result, registry *Registry) []string {
	ids := make([]string, 0, len(results))
	for _, desc := range registry.Enabled() {
		if _, ok := results[desc.ID]; ok {
			ids = append(ids, desc.ID)
		}
	}
	// Results for ids outside the enabled list should not happen, but keep
	// the union property intact if they do.
	extras := make([]string, 0)
	for id := range results {
		if registry.enabledOrder(id) >= len(registry.Enabled()) {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	return append(ids, extras...)
}

func dedupeEngineIDs(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		normalized := normalizeEngineID(id)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		ids = append(ids, normalized)
	}
	return ids
}
