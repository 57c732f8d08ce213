package ai

import (
	"fmt"

	"github.com/neboloop/think/internal/config"
)

// NewProvider builds the provider described by cfg. Hosted providers
// without an API key return ErrNoProvider so callers can still serve
// spell checks.
func NewProvider(cfg config.ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case config.ProviderOpenRouter:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: set OPENROUTER_API_KEY", ErrNoProvider)
		}
		base := cfg.BaseURL
		if base == "" {
			base = OpenRouterBaseURL
		}
		return NewOpenAIProvider(OpenAIOptions{
			ID:      config.ProviderOpenRouter,
			APIKey:  cfg.APIKey,
			BaseURL: base,
			Model:   cfg.Model,
			Headers: map[string]string{
				"HTTP-Referer": cfg.Referer,
				"X-Title":      cfg.Title,
			},
		}), nil

	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: openai requires Provider.APIKey", ErrNoProvider)
		}
		return NewOpenAIProvider(OpenAIOptions{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil

	case config.ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: anthropic requires Provider.APIKey", ErrNoProvider)
		}
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil

	case config.ProviderOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model)

	default:
		return nil, fmt.Errorf("unknown provider type %q", cfg.Type)
	}
}
