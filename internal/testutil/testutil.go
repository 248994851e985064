package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/afero"

	"github.com/voxlab/scribeflow/internal/audio"
	"github.com/voxlab/scribeflow/internal/config"
	"github.com/voxlab/scribeflow/internal/llm"
	"github.com/voxlab/scribeflow/internal/store"
	"github.com/voxlab/scribeflow/internal/transcriber"
)

// TestConfig returns a valid configuration for testing
func TestConfig() *config.Config {
	return &config.Config{
		Transcription: config.TranscriptionConfig{
			Provider:  "openai",
			Model:     "whisper-1",
			Language:  "",
			BatchSize: 3,
		},
		Segmentation: config.SegmentationConfig{
			SingleSegmentMax:  5 * time.Minute,
			SegmentDuration:   5 * time.Minute,
			ChapterMax:        5 * time.Minute,
			MaxChunkBytes:     0,
			MaxChunkDuration:  15 * time.Minute,
			MaxShrinkAttempts: 4,
		},
		LLM: config.LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Notifications: config.NotificationsConfig{
			Enabled: true,
			Type:    "log",
		},
		Providers: map[string]config.ProviderConfig{
			"openai": {APIKey: "test-api-key"},
		},
	}
}

// TestConfigWithInvalidValues returns a config with invalid values for testing validation
func TestConfigWithInvalidValues() *config.Config {
	return &config.Config{
		Transcription: config.TranscriptionConfig{
			Provider:  "", // Invalid
			Model:     "", // Invalid
			BatchSize: 0,  // Invalid
		},
		Notifications: config.NotificationsConfig{
			Type: "invalid", // Invalid
		},
	}
}

// WAVBytes builds a deterministic mono 16-bit WAV payload of the given
// duration. Low sample rates keep long fixtures small.
func WAVBytes(t *testing.T, dur time.Duration, sampleRate int) []byte {
	t.Helper()

	fs := afero.NewMemMapFs()
	f, err := fs.Create("fixture.wav")
	if err != nil {
		t.Fatalf("Failed to create fixture file: %v", err)
	}

	frames := int(dur.Milliseconds() * int64(sampleRate) / 1000)
	data := make([]int, frames)
	for i := range data {
		data[i] = int(int16(i * 31))
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	err = enc.Write(&gaudio.IntBuffer{
		Data:           data,
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
	})
	if err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Failed to finalize fixture: %v", err)
	}
	f.Close()

	payload, err := afero.ReadFile(fs, "fixture.wav")
	if err != nil {
		t.Fatalf("Failed to read fixture back: %v", err)
	}
	return payload
}

// TestBuffer decodes a WAV fixture of the given duration.
func TestBuffer(t *testing.T, dur time.Duration, sampleRate int) *audio.Buffer {
	t.Helper()

	buf, err := audio.DecodeBytes(WAVBytes(t, dur, sampleRate))
	if err != nil {
		t.Fatalf("Failed to decode fixture: %v", err)
	}
	return buf
}

// MemStore returns a Store backed by an in-memory filesystem.
func MemStore() *store.Store {
	return store.New(afero.NewMemMapFs(), "/data")
}

// MockTranscriptionAdapter implements transcriber.Adapter for testing
type MockTranscriptionAdapter struct {
	// Delay, when set, sleeps per call before recording it; used to
	// force out-of-order completion inside a batch.
	Delay          func(filename string) time.Duration
	TranscribeFunc func(ctx context.Context, filename string) (*transcriber.Result, error)

	mu    sync.Mutex
	calls []string
}

func NewMockTranscriptionAdapter() *MockTranscriptionAdapter {
	return &MockTranscriptionAdapter{}
}

func (m *MockTranscriptionAdapter) Transcribe(ctx context.Context, chunk io.Reader, filename string) (*transcriber.Result, error) {
	if _, err := io.Copy(io.Discard, chunk); err != nil {
		return nil, err
	}

	if m.Delay != nil {
		select {
		case <-time.After(m.Delay(filename)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	m.calls = append(m.calls, filename)
	m.mu.Unlock()

	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, filename)
	}
	return &transcriber.Result{
		Text:     fmt.Sprintf("text for %s", filename),
		Language: "en",
		Tokens:   1,
		Model:    "mock-transcriber",
	}, nil
}

// Calls returns the filenames in completion order.
func (m *MockTranscriptionAdapter) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// MockLLMAdapter implements llm.Adapter for testing
type MockLLMAdapter struct {
	TranslateFunc func(ctx context.Context, text, sourceLang, targetLang string) (*llm.Result, error)
	TransformFunc func(ctx context.Context, text, template, targetLang string, context map[string]string) (*llm.Result, error)

	mu             sync.Mutex
	TranslateCalls int
	TransformCalls int
}

func NewMockLLMAdapter() *MockLLMAdapter {
	return &MockLLMAdapter{}
}

func (m *MockLLMAdapter) Translate(ctx context.Context, text, sourceLang, targetLang string) (*llm.Result, error) {
	m.mu.Lock()
	m.TranslateCalls++
	m.mu.Unlock()

	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, sourceLang, targetLang)
	}
	return &llm.Result{
		Text:   fmt.Sprintf("translated(%s->%s): %s", sourceLang, targetLang, text),
		Tokens: 2,
		Model:  "mock-llm",
	}, nil
}

func (m *MockLLMAdapter) Transform(ctx context.Context, text, template, targetLang string, context map[string]string) (*llm.Result, error) {
	m.mu.Lock()
	m.TransformCalls++
	m.mu.Unlock()

	if m.TransformFunc != nil {
		return m.TransformFunc(ctx, text, template, targetLang, context)
	}
	return &llm.Result{
		Text:   fmt.Sprintf("transformed(%s): %s", template, text),
		Tokens: 2,
		Model:  "mock-llm",
	}, nil
}

// TestContext returns a context with timeout for testing
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
