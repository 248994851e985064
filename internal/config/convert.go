package config

import (
	"os"

	"github.com/voxlab/scribeflow/internal/llm"
	"github.com/voxlab/scribeflow/internal/pipeline"
	"github.com/voxlab/scribeflow/internal/provider"
	"github.com/voxlab/scribeflow/internal/segment"
	"github.com/voxlab/scribeflow/internal/transcriber"
)

func (c *Config) ToPipelineConfig() pipeline.Config {
	ceiling := c.Segmentation.MaxChunkBytes
	if ceiling == 0 {
		ceiling = provider.UploadCeiling(c.Transcription.Model)
	}

	return pipeline.Config{
		BatchSize: c.Transcription.BatchSize,
		Plan: segment.PlanConfig{
			SingleSegmentMax: c.Segmentation.SingleSegmentMax,
			SegmentDuration:  c.Segmentation.SegmentDuration,
			ChapterMax:       c.Segmentation.ChapterMax,
		},
		Split: segment.SplitConfig{
			MaxChunkBytes:     ceiling,
			MaxChunkDuration:  c.Segmentation.MaxChunkDuration,
			MaxShrinkAttempts: c.Segmentation.MaxShrinkAttempts,
		},
	}
}

func (c *Config) ToTranscriberConfig() transcriber.Config {
	return transcriber.Config{
		Provider: c.Transcription.Provider,
		APIKey:   c.resolveAPIKeyForProvider(c.Transcription.Provider),
		Language: c.Transcription.Language,
		Model:    c.Transcription.Model,
	}
}

// ToLLMConfig returns the LLM adapter configuration
func (c *Config) ToLLMConfig() llm.Config {
	return llm.Config{
		Provider: c.LLM.Provider,
		APIKey:   c.resolveAPIKeyForProvider(c.LLM.Provider),
		Model:    c.LLM.Model,
	}
}

// NeedsLLM reports whether the output settings require a language model.
func (c *Config) NeedsLLM() bool {
	return c.Output.TargetLanguage != "" || c.Output.Template != ""
}

// resolveAPIKeyForProvider returns the API key for a provider from multiple sources
func (c *Config) resolveAPIKeyForProvider(providerName string) string {
	if c.Providers != nil {
		if pc, ok := c.Providers[providerName]; ok && pc.APIKey != "" {
			return pc.APIKey
		}
	}

	if envVar := provider.EnvVarForProvider(providerName); envVar != "" {
		return os.Getenv(envVar)
	}

	return ""
}
