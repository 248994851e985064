package transcriber

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Result is one chunk's transcription outcome.
type Result struct {
	Text     string
	Language string        // detected language label from the service
	Tokens   int           // opaque usage count reported by the service
	Model    string        // model that served the call
	Elapsed  time.Duration // wall time of the external call
}

// Adapter is the contract to one remote transcription service: one
// bounded audio chunk in, text plus detected language and usage out.
type Adapter interface {
	Transcribe(ctx context.Context, chunk io.Reader, filename string) (*Result, error)
}

// Config for a transcription adapter.
type Config struct {
	Provider string
	APIKey   string
	Language string // source language hint; empty for auto-detect
	Model    string
}

// NewAdapter creates the adapter for the configured provider.
func NewAdapter(config Config) (Adapter, error) {
	switch config.Provider {
	case "openai":
		if config.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIAdapter(config), nil

	case "groq":
		if config.APIKey == "" {
			return nil, fmt.Errorf("Groq API key required")
		}
		return NewGroqAdapter(config), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
