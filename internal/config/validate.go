package config

import (
	"fmt"

	"github.com/voxlab/scribeflow/internal/language"
	"github.com/voxlab/scribeflow/internal/llm"
	"github.com/voxlab/scribeflow/internal/provider"
)

func (c *Config) Validate() error {
	if c.Transcription.Provider == "" {
		return fmt.Errorf("invalid transcription.provider: empty")
	}

	p := provider.GetProvider(c.Transcription.Provider)
	if p == nil {
		return fmt.Errorf("unsupported transcription.provider: %s (must be openai or groq)", c.Transcription.Provider)
	}

	if c.Transcription.Model == "" {
		return fmt.Errorf("invalid transcription.model: empty")
	}
	if !hasModel(p, c.Transcription.Model, provider.Transcription) {
		return fmt.Errorf("invalid model for %s: %s", c.Transcription.Provider, c.Transcription.Model)
	}

	if p.RequiresAPIKey() && c.resolveAPIKeyForProvider(c.Transcription.Provider) == "" {
		return fmt.Errorf("%s API key required: not found in config (providers.%s.api_key) or environment variable (%s)",
			c.Transcription.Provider, c.Transcription.Provider, provider.EnvVarForProvider(c.Transcription.Provider))
	}

	if c.Transcription.Language != "" && !language.IsValidCode(c.Transcription.Language) {
		return fmt.Errorf("invalid transcription.language: %s (use empty string for auto-detect or ISO-639-1 codes like 'en', 'es', 'fr')", c.Transcription.Language)
	}
	if c.Transcription.BatchSize <= 0 {
		return fmt.Errorf("invalid transcription.batch_size: %d", c.Transcription.BatchSize)
	}

	if c.Segmentation.SingleSegmentMax <= 0 {
		return fmt.Errorf("invalid segmentation.single_segment_max: %v", c.Segmentation.SingleSegmentMax)
	}
	if c.Segmentation.SegmentDuration <= 0 {
		return fmt.Errorf("invalid segmentation.segment_duration: %v", c.Segmentation.SegmentDuration)
	}
	if c.Segmentation.ChapterMax <= 0 {
		return fmt.Errorf("invalid segmentation.chapter_max: %v", c.Segmentation.ChapterMax)
	}
	if c.Segmentation.MaxChunkBytes < 0 {
		return fmt.Errorf("invalid segmentation.max_chunk_bytes: %d", c.Segmentation.MaxChunkBytes)
	}
	if c.Segmentation.MaxChunkDuration <= 0 {
		return fmt.Errorf("invalid segmentation.max_chunk_duration: %v", c.Segmentation.MaxChunkDuration)
	}
	if c.Segmentation.MaxShrinkAttempts <= 0 {
		return fmt.Errorf("invalid segmentation.max_shrink_attempts: %d", c.Segmentation.MaxShrinkAttempts)
	}

	if c.Output.TargetLanguage != "" && !language.IsValidCode(c.Output.TargetLanguage) {
		return fmt.Errorf("invalid output.target_language: %s", c.Output.TargetLanguage)
	}
	if c.Output.Template != "" {
		if _, err := llm.LookupTemplate(c.Output.Template); err != nil {
			return fmt.Errorf("invalid output.template: %w", err)
		}
	}

	if c.NeedsLLM() {
		if c.LLM.Provider == "" {
			return fmt.Errorf("llm.provider required when output.target_language or output.template is set")
		}
		if c.LLM.Model == "" {
			return fmt.Errorf("llm.model required when output.target_language or output.template is set")
		}

		lp := provider.GetProvider(c.LLM.Provider)
		if lp == nil {
			return fmt.Errorf("invalid llm.provider: %s (must be openai or groq)", c.LLM.Provider)
		}
		if !hasModel(lp, c.LLM.Model, provider.LLM) {
			return fmt.Errorf("invalid llm.model for %s: %s", c.LLM.Provider, c.LLM.Model)
		}

		if lp.RequiresAPIKey() && c.resolveAPIKeyForProvider(c.LLM.Provider) == "" {
			return fmt.Errorf("%s API key required for LLM: not found in config (providers.%s.api_key) or environment variable (%s)",
				c.LLM.Provider, c.LLM.Provider, provider.EnvVarForProvider(c.LLM.Provider))
		}
	}

	validTypes := map[string]bool{"desktop": true, "log": true, "none": true}
	if !validTypes[c.Notifications.Type] {
		return fmt.Errorf("invalid notifications.type: %s (must be desktop, log, or none)", c.Notifications.Type)
	}

	return nil
}

func hasModel(p provider.Provider, id string, t provider.ModelType) bool {
	for _, m := range provider.ModelsOfType(p, t) {
		if m.ID == id {
			return true
		}
	}
	return false
}
