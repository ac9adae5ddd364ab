package translation

import (
	"fmt"
	"strings"
)

// Registry stores configured translation engines. It is built once at process
// start and read-only thereafter, so concurrent reads need no locking.
// Descriptor order is registration order and defines the deterministic
// tie-break used by compare-mode best selection.
type Registry struct {
	engines       map[string]Engine
	descriptors   []EngineDescriptor
	defaultEngine string
}

func NewRegistry(defaultEngine string) *Registry {
	return &Registry{
		engines:       make(map[string]Engine),
		defaultEngine: normalizeEngineID(defaultEngine),
	}
}

// Register adds one engine with its descriptor. Registration order is
// preserved in Enabled() and in best-pick tie-breaking.
func (r *Registry) Register(engine Engine, desc EngineDescriptor) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	if engine == nil {
		return fmt.Errorf("engine is nil")
	}
	id := normalizeEngineID(engine.Name())
	if id == "" {
		return fmt.Errorf("engine name is required")
	}
	if _, exists := r.engines[id]; exists {
		return fmt.Errorf("engine %q is already registered", id)
	}

	desc.ID = id
	if desc.DisplayName == "" {
		desc.DisplayName = id
	}
	if len(desc.SupportedModels) == 0 {
		desc.SupportedModels = engine.Models()
	}
	if desc.DefaultModel == "" && len(desc.SupportedModels) > 0 {
		desc.DefaultModel = desc.SupportedModels[0]
	}

	r.engines[id] = engine
	r.descriptors = append(r.descriptors, desc)

	if r.defaultEngine == "" && desc.Enabled {
		r.defaultEngine = id
	}
	return nil
}

// Enabled returns descriptors of enabled engines in registration order.
func (r *Registry) Enabled() []EngineDescriptor {
	if r == nil {
		return nil
	}
	enabled := make([]EngineDescriptor, 0, len(r.descriptors))
	for _, desc := range r.descriptors {
		if desc.Enabled {
			enabled = append(enabled, desc)
		}
	}
	return enabled
}

// Descriptors returns all registered descriptors in registration order,
// including disabled ones.
func (r *Registry) Descriptors() []EngineDescriptor {
	if r == nil {
		return nil
	}
	out := make([]EngineDescriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Resolve returns the engine for an id. Empty ids resolve to the configured
// default engine. Unknown or disabled engines fail with UnknownEngineError.
func (r *Registry) Resolve(id string) (Engine, EngineDescriptor, error) {
	if r == nil || len(r.engines) == 0 {
		return nil, EngineDescriptor{}, fmt.Errorf("no translation engines are registered")
	}

	resolved := normalizeEngineID(id)
	if resolved == "" {
		resolved = r.defaultEngine
	}

	engine, ok := r.engines[resolved]
	if ok {
		for _, desc := range r.descriptors {
			if desc.ID == resolved && desc.Enabled {
				return engine, desc, nil
			}
		}
	}

	return nil, EngineDescriptor{}, &UnknownEngineError{
		EngineID:  resolved,
		Available: r.EnabledIDs(),
	}
}

// DefaultEngine returns the id used when a request leaves the engine unset.
func (r *Registry) DefaultEngine() string {
	if r == nil {
		return ""
	}
	return r.defaultEngine
}

// EnabledIDs returns enabled engine ids in registration order.
func (r *Registry) EnabledIDs() []string {
	descs := r.Enabled()
	ids := make([]string, 0, len(descs))
	for _, desc := range descs {
		ids = append(ids, desc.ID)
	}
	return ids
}

// enabledOrder returns the registration-order index used to break best-pick
// ties. Unknown ids sort last.
func (r *Registry) enabledOrder(id string) int {
	for i, desc := range r.Enabled() {
		if desc.ID == id {
			return i
		}
	}
	return len(r.descriptors)
}

func normalizeEngineID(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
