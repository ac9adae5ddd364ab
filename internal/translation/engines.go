package translation

import (
	"verba.fyi/verba/internal/config"
)

// NewRegistryFromConfig builds the process-wide engine registry. Engines with
// missing credentials are registered disabled so API consumers can still list
// them; registration order here defines the best-pick tie-break order.
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	registry := NewRegistry(cfg.DefaultEngine)

	_ = registry.Register(NewOpenAIEngine(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), EngineDescriptor{
		DisplayName:  "OpenAI",
		Enabled:      cfg.OpenAIEnabled && cfg.OpenAIAPIKey != "",
		DefaultModel: DefaultOpenAIModel,
	})
	_ = registry.Register(NewAnthropicEngine(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL), EngineDescriptor{
		DisplayName:  "Anthropic Claude",
		Enabled:      cfg.AnthropicEnabled && cfg.AnthropicAPIKey != "",
		DefaultModel: DefaultAnthropicModel,
	})
	_ = registry.Register(NewGoogleEngine(cfg.GoogleAPIKey), EngineDescriptor{
		DisplayName: "Google Translate",
		Enabled:     cfg.GoogleEnabled && cfg.GoogleAPIKey != "",
	})
	_ = registry.Register(NewBaiduEngine(cfg.BaiduAppID, cfg.BaiduSecretKey, cfg.BaiduEndpoint), EngineDescriptor{
		DisplayName: "Baidu Fanyi",
		Enabled:     cfg.BaiduEnabled && cfg.BaiduAppID != "" && cfg.BaiduSecretKey != "",
	})

	// A configured default that is unavailable falls back to the first
	// enabled engine instead of failing every unspecified request.
	if enabled := registry.EnabledIDs(); len(enabled) > 0 {
		found := false
		for _, id := range enabled {
			if id == registry.defaultEngine {
				found = true
				break
			}
		}
		if !found {
			registry.defaultEngine = enabled[0]
		}
	}

	return registry
}
