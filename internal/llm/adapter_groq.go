package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"github.com/voxlab/scribeflow/internal/provider"
)

// GroqAdapter implements Adapter using Groq's OpenAI-compatible API
type GroqAdapter struct {
	client *openai.Client
	config Config
}

// NewGroqAdapter creates a new Groq LLM adapter
func NewGroqAdapter(cfg Config) *GroqAdapter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = provider.GroqBaseURL

	return &GroqAdapter{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

func (a *GroqAdapter) Translate(ctx context.Context, text, sourceLang, targetLang string) (*Result, error) {
	if text == "" {
		return &Result{Model: a.model()}, nil
	}
	system := BuildTranslationSystemPrompt(sourceLang, targetLang)
	return chatComplete(ctx, a.client, "groq-llm-adapter", a.model(), system, text)
}

func (a *GroqAdapter) Transform(ctx context.Context, text, template, targetLang string, context map[string]string) (*Result, error) {
	tmpl, err := LookupTemplate(template)
	if err != nil {
		return nil, err
	}
	system := BuildTemplateSystemPrompt(tmpl, targetLang, context)
	return chatComplete(ctx, a.client, "groq-llm-adapter", a.model(), system, text)
}

func (a *GroqAdapter) model() string {
	if a.config.Model != "" {
		return a.config.Model
	}
	return "llama-3.3-70b-versatile"
}
