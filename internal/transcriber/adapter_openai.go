package transcriber

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIAdapter implements Adapter for the OpenAI Whisper API
type OpenAIAdapter struct {
	client *openai.Client
	config Config
}

func NewOpenAIAdapter(config Config) *OpenAIAdapter {
	client := openai.NewClient(config.APIKey)
	return &OpenAIAdapter{
		client: client,
		config: config,
	}
}

func (a *OpenAIAdapter) Transcribe(ctx context.Context, chunk io.Reader, filename string) (*Result, error) {
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
		log.Printf("openai-adapter: API call failed after %v: %v", elapsed, err)
		return nil, classify(fmt.Errorf("openai transcription: %w", err))
	}

	tokens := 0
	for _, seg := range resp.Segments {
		tokens += len(seg.Tokens)
	}

	log.Printf("openai-adapter: transcribed %s in %v (%s, %d tokens)",
		filename, elapsed, resp.Language, tokens)

	return &Result{
		Text:     resp.Text,
		Language: resp.Language,
		Tokens:   tokens,
		Model:    a.config.Model,
		Elapsed:  elapsed,
	}, nil
}
