package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "openai", "anthropic", "gemini", "openrouter", "mock"
	Provider string

	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Zero means no timeout.
	Timeout time.Duration
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-3.5-turbo"
	BaseURL string // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "openai/gpt-4o-mini"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults. Retries are off:
// a failed call is reported to the teacher and replaced with mock data.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI: OpenAIConfig{
			Model: "gpt-3.5-turbo",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "openai/gpt-4o-mini",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from STUDENTSIM_* variables on top of
// DefaultConfig. Malformed retry counts and timeouts are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, dst := range map[string]*string{
		"STUDENTSIM_LLM_PROVIDER":       &cfg.Provider,
		"STUDENTSIM_OPENAI_API_KEY":     &cfg.OpenAI.APIKey,
		"STUDENTSIM_OPENAI_MODEL":       &cfg.OpenAI.Model,
		"STUDENTSIM_OPENAI_BASE_URL":    &cfg.OpenAI.BaseURL,
		"STUDENTSIM_ANTHROPIC_API_KEY":  &cfg.Anthropic.APIKey,
		"STUDENTSIM_ANTHROPIC_MODEL":    &cfg.Anthropic.Model,
		"STUDENTSIM_GEMINI_API_KEY":     &cfg.Gemini.APIKey,
		"STUDENTSIM_GEMINI_MODEL":       &cfg.Gemini.Model,
		"STUDENTSIM_OPENROUTER_API_KEY": &cfg.OpenRouter.APIKey,
		"STUDENTSIM_OPENROUTER_MODEL":   &cfg.OpenRouter.Model,
	} {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if n, err := strconv.Atoi(os.Getenv("STUDENTSIM_LLM_RETRIES")); err == nil && n >= 1 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("STUDENTSIM_LLM_TIMEOUT")); err == nil {
		cfg.Timeout = d
	}
	return cfg
}

// standardKeys lists the vendor key variables DiscoverConfig probes, in
// priority order. OpenAI comes first because that is the key teachers are
// told to get.
var standardKeys = []struct {
	env, provider string
}{
	{"OPENAI_API_KEY", "openai"},
	{"ANTHROPIC_API_KEY", "anthropic"},
	{"GEMINI_API_KEY", "gemini"},
	{"OPENROUTER_API_KEY", "openrouter"},
}

// DiscoverConfig picks the first provider whose standard key variable is
// set. It reports false when none is.
func DiscoverConfig() (Config, bool) {
	for _, k := range standardKeys {
		key := os.Getenv(k.env)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = k.provider
		*cfg.keyFor(k.provider) = key
		return cfg, true
	}
	return Config{}, false
}

// keyFor points at the API key field of provider, or nil for mock and
// unknown names.
func (c *Config) keyFor(provider string) *string {
	switch provider {
	case "openai":
		return &c.OpenAI.APIKey
	case "anthropic":
		return &c.Anthropic.APIKey
	case "gemini":
		return &c.Gemini.APIKey
	case "openrouter":
		return &c.OpenRouter.APIKey
	}
	return nil
}

// WithCredential returns a copy of c using key for the OpenAI-compatible
// provider. Keys entered by a teacher are OpenAI keys, so a config pointing
// at another provider (or at mock) is switched to openai.
func (c Config) WithCredential(key string) Config {
	switch c.Provider {
	case "openrouter":
		c.OpenRouter.APIKey = key
	default:
		c.Provider = "openai"
		c.OpenAI.APIKey = key
	}
	return c
}

// Offline reports whether no live provider is selected.
func (c Config) Offline() bool {
	return c.Provider == "" || c.Provider == "mock"
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	key := c.keyFor(c.Provider)
	if key == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *key == "" {
		return fmt.Errorf("STUDENTSIM_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
