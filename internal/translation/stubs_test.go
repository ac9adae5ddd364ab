package translation

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"verba.fyi/verba/internal/textstats"
)

// stubEngine is a scriptable Engine for orchestration tests.
type stubEngine struct {
	name  string
	delay time.Duration
	resp  EngineResponse
	err   error
	calls int32
}

func (e *stubEngine) Name() string {
	return e.name
}

func (e *stubEngine) Models() []string {
	return []string{"stub-model"}
}

func (e *stubEngine) Translate(ctx context.Context, req EngineRequest) (*EngineResponse, error) {
	atomic.AddInt32(&e.calls, 1)
	if e.delay > 0 {
		select {
		case <-time.After(e.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if e.err != nil {
		return nil, e.err
	}
	resp := e.resp
	return &resp, nil
}

func (e *stubEngine) callCount() int {
	return int(atomic.LoadInt32(&e.calls))
}

// stubDetector is a scriptable language detector.
type stubDetector struct {
	code       string
	confidence float64
	err        error
	calls      int
}

func (d *stubDetector) Detect(_ context.Context, _ string) (string, float64, error) {
	d.calls++
	if d.err != nil {
		return "", 0, d.err
	}
	return d.code, d.confidence, nil
}

// newTestRegistry registers the given engines enabled, in order.
func newTestRegistry(engines ...Engine) *Registry {
	registry := NewRegistry("")
	for _, engine := range engines {
		if err := registry.Register(engine, EngineDescriptor{Enabled: true}); err != nil {
			panic(err)
		}
	}
	return registry
}

func newTestExecutor(timeout time.Duration) *Executor {
	return NewExecutor(timeout, textstats.NewEstimator(0, nil))
}

func newTestComparator(registry *Registry, timeout time.Duration) *Comparator {
	return NewComparator(registry, newTestExecutor(timeout), zerolog.Nop())
}
