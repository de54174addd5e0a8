// Package llm provides the text generation backends used by the drafting
// service: a local Ollama instance or the Gemini API.
package llm

import (
	"context"
	"fmt"

	"pauta/internal/config"
)

// GenerateOptions tune one generation call.
type GenerateOptions struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// TextGenerator produces free text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// New creates the configured backend.
func New(cfg config.LLM) (TextGenerator, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllamaClient(cfg.Ollama)
	case "gemini":
		return NewGeminiClient(cfg.Gemini)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
