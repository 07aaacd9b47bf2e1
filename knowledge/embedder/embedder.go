// Package embedder resolves declarative embedding configurations into
// callable embedding functions for the knowledge store.
//
// A configuration names one of a closed set of providers; resolution
// happens once, at store construction, and the resulting function is held
// for the store's lifetime. The function maps a text to a fixed-length
// vector; batching and invocation are owned by the storage backend.
package embedder

import (
	"fmt"

	chromem "github.com/philippgille/chromem-go"
)

// Providers understood by Configure.
const (
	ProviderOpenAI       = "openai"
	ProviderOpenAICompat = "openai-compatible"
	ProviderOllama       = "ollama"
)

const defaultOllamaModel = "nomic-embed-text"

// Config declares which embedding provider backs a knowledge store. It is
// opaque to the store itself; only Configure interprets it.
type Config struct {
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// Configure resolves cfg into an embedding function. A nil config, or one
// without a provider, selects the default provider. Unknown providers are
// a configuration error.
func Configure(cfg *Config) (chromem.EmbeddingFunc, error) {
	if cfg == nil || cfg.Provider == "" {
		return Default(), nil
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return OpenAI(cfg), nil
	case ProviderOpenAICompat:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("embedder: provider %q requires a base URL", cfg.Provider)
		}
		return chromem.NewEmbeddingFuncOpenAICompat(cfg.BaseURL, cfg.APIKey, cfg.Model, nil), nil
	case ProviderOllama:
		model := cfg.Model
		if model == "" {
			model = defaultOllamaModel
		}
		return chromem.NewEmbeddingFuncOllama(model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("embedder: unsupported provider %q", cfg.Provider)
	}
}

// Default returns the embedding function used when no configuration is
// supplied: the backend's default model with credentials taken from the
// environment.
func Default() chromem.EmbeddingFunc {
	return chromem.NewEmbeddingFuncDefault()
}
