package llm

import (
	"codeexplainer/config"
	"context"
	"fmt"
)

// NewClient builds the client for the provider selected in cfg.
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		c, err := NewOpenAIClient(ctx, cfg.OpenAI)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderOllama:
		c, err := NewOllamaClient(cfg.Ollama)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.LLM.Provider)
	}
}
