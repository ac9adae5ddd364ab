package translation

import (
	"errors"
	"testing"
)

func TestRegistryResolveByID(t *testing.T) {
	alpha := &stubEngine{name: "alpha"}
	beta := &stubEngine{name: "beta"}
	registry := newTestRegistry(alpha, beta)

	engine, desc, err := registry.Resolve("beta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine != beta {
		t.Fatalf("resolved wrong engine")
	}
	if desc.ID != "beta" {
		t.Fatalf("unexpected descriptor id: %q", desc.ID)
	}
}

func TestRegistryResolveEmptyUsesDefault(t *testing.T) {
	alpha := &stubEngine{name: "alpha"}
	beta := &stubEngine{name: "beta"}
	registry := newTestRegistry(alpha, beta)

	engine, desc, err := registry.Resolve("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine != alpha || desc.ID != "alpha" {
		t.Fatalf("expected first registered engine as default, got %q", desc.ID)
	}
}

func TestRegistryResolveUnknownEngine(t *testing.T) {
	registry := newTestRegistry(&stubEngine{name: "alpha"})

	_, _, err := registry.Resolve("nope")
	var unknownErr *UnknownEngineError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownEngineError, got %v", err)
	}
	if unknownErr.EngineID != "nope" {
		t.Fatalf("unexpected engine id in error: %q", unknownErr.EngineID)
	}
}

func TestRegistryResolveDisabledEngine(t *testing.T) {
	registry := NewRegistry("")
	if err := registry.Register(&stubEngine{name: "alpha"}, EngineDescriptor{Enabled: false}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := registry.Resolve("alpha")
	var unknownErr *UnknownEngineError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownEngineError for disabled engine, got %v", err)
	}
}

func TestRegistryEnabledPreservesRegistrationOrder(t *testing.T) {
	registry := NewRegistry("")
	_ = registry.Register(&stubEngine{name: "gamma"}, EngineDescriptor{Enabled: true})
	_ = registry.Register(&stubEngine{name: "alpha"}, EngineDescriptor{Enabled: false})
	_ = registry.Register(&stubEngine{name: "beta"}, EngineDescriptor{Enabled: true})

	ids := registry.EnabledIDs()
	if len(ids) != 2 || ids[0] != "gamma" || ids[1] != "beta" {
		t.Fatalf("unexpected enabled order: %v", ids)
	}
}

func TestRegistryRejectsDuplicateRegistration(t *testing.T) {
	registry := newTestRegistry(&stubEngine{name: "alpha"})
	if err := registry.Register(&stubEngine{name: "Alpha"}, EngineDescriptor{Enabled: true}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestRegistryDescriptorDefaultsFromEngine(t *testing.T) {
	registry := newTestRegistry(&stubEngine{name: "alpha"})

	descs := registry.Descriptors()
	if len(descs) != 1 {
		t.Fatalf("expected one descriptor, got %d", len(descs))
	}
	if descs[0].DefaultModel != "stub-model" {
		t.Fatalf("expected default model from engine, got %q", descs[0].DefaultModel)
	}
	if descs[0].DisplayName != "alpha" {
		t.Fatalf("expected display name fallback, got %q", descs[0].DisplayName)
	}
}
