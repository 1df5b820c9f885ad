package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// PlaceholderAPIKey is the value shipped in sample configs. A key still set
// to it is treated as missing.
const PlaceholderAPIKey = "your_api_key"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 60s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-2.0-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-001"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-001",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ApplyEnv overlays COMPASS_* environment variables onto cfg.
func ApplyEnv(cfg Config) Config {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Provider, "COMPASS_LLM_PROVIDER")

	set(&cfg.Anthropic.APIKey, "COMPASS_ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "COMPASS_ANTHROPIC_MODEL")

	set(&cfg.OpenAI.APIKey, "COMPASS_OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "COMPASS_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "COMPASS_OPENAI_BASE_URL")

	set(&cfg.Gemini.APIKey, "COMPASS_GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "COMPASS_GEMINI_MODEL")

	set(&cfg.OpenRouter.APIKey, "COMPASS_OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "COMPASS_OPENROUTER_MODEL")

	if t := os.Getenv("COMPASS_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	return ApplyEnv(DefaultConfig())
}

// DiscoverConfig checks standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and fills the first one found
// into base. Returns (base, false) if none found.
func DiscoverConfig(base Config) (Config, bool) {
	cfg := base

	if k := os.Getenv("GEMINI_API_KEY"); usableKey(k) {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GOOGLE_API_KEY"); usableKey(k) {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); usableKey(k) {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); usableKey(k) {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); usableKey(k) {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return base, false
}

// APIKey returns the key configured for the selected provider.
func (c Config) APIKey() string {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.APIKey
	case "openai":
		return c.OpenAI.APIKey
	case "gemini":
		return c.Gemini.APIKey
	case "openrouter":
		return c.OpenRouter.APIKey
	}
	return ""
}

// Validate checks that the selected provider has a usable API key set.
func (c Config) Validate() error {
	var envVar string
	switch c.Provider {
	case "anthropic":
		envVar = "COMPASS_ANTHROPIC_API_KEY"
	case "openai":
		envVar = "COMPASS_OPENAI_API_KEY"
	case "gemini":
		envVar = "COMPASS_GEMINI_API_KEY"
	case "openrouter":
		envVar = "COMPASS_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}

	key := c.APIKey()
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envVar, c.Provider)
	}
	if !usableKey(key) {
		return fmt.Errorf("%s is still set to the placeholder %q; replace it with a real key", envVar, PlaceholderAPIKey)
	}
	return nil
}

func usableKey(k string) bool {
	k = strings.TrimSpace(k)
	return k != "" && k != PlaceholderAPIKey
}
