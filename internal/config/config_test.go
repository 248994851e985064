package config_test

import (
	"testing"
	"time"

	"github.com/voxlab/scribeflow/internal/config"
	"github.com/voxlab/scribeflow/internal/testutil"
)

func TestValidateValidConfig(t *testing.T) {
	cfg := testutil.TestConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidateInvalidConfigs(t *testing.T) {
	// keep env fallback out of the key-resolution cases
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty provider", func(c *config.Config) { c.Transcription.Provider = "" }},
		{"unknown provider", func(c *config.Config) { c.Transcription.Provider = "mistral" }},
		{"empty model", func(c *config.Config) { c.Transcription.Model = "" }},
		{"model from wrong provider", func(c *config.Config) { c.Transcription.Model = "whisper-large-v3" }},
		{"missing api key", func(c *config.Config) { c.Providers = nil }},
		{"bad language code", func(c *config.Config) { c.Transcription.Language = "english" }},
		{"zero batch size", func(c *config.Config) { c.Transcription.BatchSize = 0 }},
		{"negative chunk bytes", func(c *config.Config) { c.Segmentation.MaxChunkBytes = -1 }},
		{"zero segment duration", func(c *config.Config) { c.Segmentation.SegmentDuration = 0 }},
		{"zero shrink attempts", func(c *config.Config) { c.Segmentation.MaxShrinkAttempts = 0 }},
		{"bad target language", func(c *config.Config) { c.Output.TargetLanguage = "german" }},
		{"unknown template", func(c *config.Config) { c.Output.Template = "haiku" }},
		{"llm model missing when template set", func(c *config.Config) {
			c.Output.Template = "meeting-summary"
			c.LLM.Model = ""
		}},
		{"llm model from wrong type", func(c *config.Config) {
			c.Output.TargetLanguage = "de"
			c.LLM.Model = "whisper-1"
		}},
		{"bad notification type", func(c *config.Config) { c.Notifications.Type = "sms" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutil.TestConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateUsesEnvAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg := testutil.TestConfig()
	cfg.Providers = nil
	if err := cfg.Validate(); err != nil {
		t.Errorf("env API key fallback rejected: %v", err)
	}
}

func TestNeedsLLM(t *testing.T) {
	cfg := testutil.TestConfig()
	if cfg.NeedsLLM() {
		t.Error("plain transcription must not need an LLM")
	}

	cfg.Output.TargetLanguage = "de"
	if !cfg.NeedsLLM() {
		t.Error("target language requires an LLM")
	}

	cfg.Output.TargetLanguage = ""
	cfg.Output.Template = "lecture-notes"
	if !cfg.NeedsLLM() {
		t.Error("template requires an LLM")
	}
}

func TestToPipelineConfig(t *testing.T) {
	cfg := testutil.TestConfig()
	pc := cfg.ToPipelineConfig()

	if pc.BatchSize != 3 {
		t.Errorf("batch size = %d, want 3", pc.BatchSize)
	}
	if pc.Plan.SegmentDuration != 5*time.Minute {
		t.Errorf("segment duration = %v", pc.Plan.SegmentDuration)
	}
	// zero max_chunk_bytes resolves to the model's upload ceiling
	if pc.Split.MaxChunkBytes != 25*1024*1024 {
		t.Errorf("chunk ceiling = %d, want the whisper-1 25MB limit", pc.Split.MaxChunkBytes)
	}

	cfg.Segmentation.MaxChunkBytes = 1024
	if got := cfg.ToPipelineConfig().Split.MaxChunkBytes; got != 1024 {
		t.Errorf("explicit ceiling ignored: %d", got)
	}
}

func TestToTranscriberConfig(t *testing.T) {
	cfg := testutil.TestConfig()
	tc := cfg.ToTranscriberConfig()

	if tc.Provider != "openai" || tc.Model != "whisper-1" {
		t.Errorf("unexpected transcriber config: %+v", tc)
	}
	if tc.APIKey != "test-api-key" {
		t.Errorf("api key = %q, want the configured provider key", tc.APIKey)
	}
}

func TestToLLMConfig(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "groq-env-key")

	cfg := testutil.TestConfig()
	cfg.LLM.Provider = "groq"
	cfg.LLM.Model = "llama-3.3-70b-versatile"

	lc := cfg.ToLLMConfig()
	if lc.Provider != "groq" || lc.Model != "llama-3.3-70b-versatile" {
		t.Errorf("unexpected llm config: %+v", lc)
	}
	if lc.APIKey != "groq-env-key" {
		t.Errorf("api key = %q, want env fallback", lc.APIKey)
	}
}
