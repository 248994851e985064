package llm

import (
	"context"
	"fmt"
	"time"
)

// Result is the outcome of one language-model call.
type Result struct {
	Text    string
	Tokens  int
	Model   string
	Elapsed time.Duration
}

// Adapter is the contract to the translation/transform collaborator.
type Adapter interface {
	// Translate rewrites text into the target language.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (*Result, error)
	// Transform applies a named template to the text, in the target
	// language, with caller-supplied context values.
	Transform(ctx context.Context, text, template, targetLang string, context map[string]string) (*Result, error)
}

// Config holds LLM adapter configuration
type Config struct {
	Provider string
	APIKey   string
	Model    string
}

// NewAdapter creates an LLM adapter based on the provider
func NewAdapter(cfg Config) (Adapter, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIAdapter(cfg), nil
	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Groq API key required")
		}
		return NewGroqAdapter(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
