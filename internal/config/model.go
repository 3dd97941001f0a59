package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// EnvModelProvider overrides the model provider (gemini or openai).
	EnvModelProvider = "MODEL_PROVIDER"

	// EnvModelName overrides the model name.
	EnvModelName = "MODEL_NAME"

	// EnvModelAPIKey overrides the provider API key.
	EnvModelAPIKey = "MODEL_API_KEY"

	// EnvModelTimeout overrides the deadline for a single generation call.
	EnvModelTimeout = "MODEL_TIMEOUT"

	// EnvModelTemperature overrides the sampling temperature.
	EnvModelTemperature = "MODEL_TEMPERATURE"

	// EnvGeminiAPIKey is read when no explicit key is set and the provider is gemini.
	EnvGeminiAPIKey = "GEMINI_API_KEY"

	// EnvOpenAIAPIKey is read when no explicit key is set and the provider is openai.
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// Provider identifies a model vendor.
type Provider string

// Supported providers.
const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// ModelConfig configures the multimodal model used to generate study guides.
// An empty APIKey leaves the model unconfigured; generation requests then
// fail with a model_unavailable error instead of preventing startup.
type ModelConfig struct {
	Provider    Provider `toml:"provider"`
	Name        string   `toml:"name"`
	APIKey      string   `toml:"api_key"`
	Timeout     string   `toml:"timeout"`
	Temperature *float32 `toml:"temperature"`
}

// TimeoutDuration parses and returns the generation deadline.
func (c *ModelConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Configured reports whether an API key is available.
func (c *ModelConfig) Configured() bool {
	return c.APIKey != ""
}

// Finalize applies defaults, loads environment overrides, and validates the model configuration.
func (c *ModelConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ModelConfig) Merge(overlay *ModelConfig) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Temperature != nil {
		c.Temperature = overlay.Temperature
	}
}

func (c *ModelConfig) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	if c.Name == "" {
		switch c.Provider {
		case ProviderOpenAI:
			c.Name = "gpt-4o"
		default:
			c.Name = "gemini-2.0-flash"
		}
	}
	if c.Timeout == "" {
		c.Timeout = "120s"
	}
}

func (c *ModelConfig) loadEnv() {
	if v := os.Getenv(EnvModelProvider); v != "" {
		c.Provider = Provider(v)
	}
	if v := os.Getenv(EnvModelName); v != "" {
		c.Name = v
	}
	if v := os.Getenv(EnvModelAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvModelTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvModelTemperature); v != "" {
		if t, err := strconv.ParseFloat(v, 32); err == nil {
			temp := float32(t)
			c.Temperature = &temp
		}
	}

	if c.APIKey == "" {
		switch c.Provider {
		case ProviderGemini:
			c.APIKey = os.Getenv(EnvGeminiAPIKey)
		case ProviderOpenAI:
			c.APIKey = os.Getenv(EnvOpenAIAPIKey)
		}
	}
}

func (c *ModelConfig) validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("invalid provider: %s (must be gemini or openai)", c.Provider)
	}
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	return nil
}
