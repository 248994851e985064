package transcriber

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/voxlab/scribeflow/internal/provider"
)

// GroqAdapter implements Adapter for Groq's OpenAI-compatible Whisper API
type GroqAdapter struct {
	client *openai.Client
	config Config
}

func NewGroqAdapter(config Config) *GroqAdapter {
	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = provider.GroqBaseURL
	client := openai.NewClientWithConfig(clientConfig)

	return &GroqAdapter{
		client: client,
		config: config,
	}
}

func (a *GroqAdapter) Transcribe(ctx context.Context, chunk io.Reader, filename string) (*Result, error) {
	req := openai.AudioRequest{
		Model:    a.config.Model,
		Reader:   chunk,
		FilePath: filename,
		Language: a.config.Language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	start := time.Now()
	resp, err := a.client.CreateTranscription(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		log.Printf("groq-adapter: API call failed after %v: %v", elapsed, err)
		return nil, classify(fmt.Errorf("groq transcription: %w", err))
	}

	tokens := 0
	for _, seg := range resp.Segments {
		tokens += len(seg.Tokens)
	}

	log.Printf("groq-adapter: transcribed %s in %v (%s, %d tokens)",
		filename, elapsed, resp.Language, tokens)

	return &Result{
		Text:     resp.Text,
		Language: resp.Language,
		Tokens:   tokens,
		Model:    a.config.Model,
		Elapsed:  elapsed,
	}, nil
}
