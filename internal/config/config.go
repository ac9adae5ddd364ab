package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// DatabaseURL enables the translation history store. Empty disables it.
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`

	DefaultEngine string        `envconfig:"DEFAULT_ENGINE" default:""`
	EngineTimeout time.Duration `envconfig:"ENGINE_TIMEOUT" default:"30s"`
	MaxTextLength int           `envconfig:"MAX_TEXT_LENGTH" default:"10000"`
	KeywordLimit  int           `envconfig:"KEYWORD_LIMIT" default:"5"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:""`
	OpenAIEnabled bool   `envconfig:"OPENAI_ENABLED" default:"true"`

	AnthropicAPIKey  string `envconfig:"ANTHROPIC_API_KEY" default:""`
	AnthropicBaseURL string `envconfig:"ANTHROPIC_BASE_URL" default:""`
	AnthropicEnabled bool   `envconfig:"ANTHROPIC_ENABLED" default:"true"`

	GoogleAPIKey  string `envconfig:"GOOGLE_API_KEY" default:""`
	GoogleEnabled bool   `envconfig:"GOOGLE_ENABLED" default:"true"`

	BaiduAppID     string `envconfig:"BAIDU_APP_ID" default:""`
	BaiduSecretKey string `envconfig:"BAIDU_SECRET_KEY" default:""`
	BaiduEndpoint  string `envconfig:"BAIDU_ENDPOINT" default:""`
	BaiduEnabled   bool   `envconfig:"BAIDU_ENABLED" default:"true"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.EngineTimeout <= 0 {
		return fmt.Errorf("ENGINE_TIMEOUT must be positive")
	}
	if c.MaxTextLength < 1 {
		return fmt.Errorf("MAX_TEXT_LENGTH must be >= 1")
	}
	if c.KeywordLimit < 1 {
		return fmt.Errorf("KEYWORD_LIMIT must be >= 1")
	}
	if c.BaiduAppID != "" && strings.TrimSpace(c.BaiduSecretKey) == "" {
		return fmt.Errorf("BAIDU_SECRET_KEY is required when BAIDU_APP_ID is set")
	}
	return nil
}

// HistoryEnabled reports whether a history store should be opened.
func (c *Config) HistoryEnabled() bool {
	return c != nil && strings.TrimSpace(c.DatabaseURL) != ""
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
