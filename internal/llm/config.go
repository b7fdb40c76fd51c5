// Package llm provides model configuration and a streaming client for structured plan generation.
package llm

import "fmt"

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is the cheapest model; plans are shorter and less varied
	TierLite ModelTier = "lite"
	// TierStandard is the default for plan generation
	TierStandard ModelTier = "standard"
	// TierAdvanced is for users who want more creative meals and tighter macro math
	TierAdvanced ModelTier = "advanced"
)

// DefaultTemperature is the sampling temperature for plan generation.
const DefaultTemperature float32 = 0.7

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// ParseTier validates a tier name. An empty name selects TierStandard.
func ParseTier(s string) (ModelTier, error) {
	switch ModelTier(s) {
	case "":
		return TierStandard, nil
	case TierLite, TierStandard, TierAdvanced:
		return ModelTier(s), nil
	default:
		return "", fmt.Errorf("unknown model tier %q", s)
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)+1),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
