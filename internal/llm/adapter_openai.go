package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIAdapter implements Adapter using OpenAI's chat completions API
type OpenAIAdapter struct {
	client *openai.Client
	config Config
}

// NewOpenAIAdapter creates a new OpenAI LLM adapter
func NewOpenAIAdapter(cfg Config) *OpenAIAdapter {
	return &OpenAIAdapter{
		client: openai.NewClient(cfg.APIKey),
		config: cfg,
	}
}

func (a *OpenAIAdapter) Translate(ctx context.Context, text, sourceLang, targetLang string) (*Result, error) {
	if text == "" {
		return &Result{Model: a.model()}, nil
	}
	system := BuildTranslationSystemPrompt(sourceLang, targetLang)
	return chatComplete(ctx, a.client, "openai-llm-adapter", a.model(), system, text)
}

func (a *OpenAIAdapter) Transform(ctx context.Context, text, template, targetLang string, context map[string]string) (*Result, error) {
	tmpl, err := LookupTemplate(template)
	if err != nil {
		return nil, err
	}
	system := BuildTemplateSystemPrompt(tmpl, targetLang, context)
	return chatComplete(ctx, a.client, "openai-llm-adapter", a.model(), system, text)
}

func (a *OpenAIAdapter) model() string {
	if a.config.Model != "" {
		return a.config.Model
	}
	return "gpt-4o-mini"
}

// chatComplete runs one completion with the low temperature both
// adapters use for deterministic rewriting.
func chatComplete(ctx context.Context, client *openai.Client, component, model, system, user string) (*Result, error) {
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.3,
	}

	start := time.Now()
	resp, err := client.CreateChatCompletion(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		log.Printf("%s: API call failed after %v: %v", component, elapsed, err)
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: no response choices")
	}

	log.Printf("%s: processed %d chars in %v (%d tokens)",
		component, len(user), elapsed, resp.Usage.TotalTokens)

	return &Result{
		Text:    resp.Choices[0].Message.Content,
		Tokens:  resp.Usage.TotalTokens,
		Model:   model,
		Elapsed: elapsed,
	}, nil
}
