package config

import "time"

// DefaultConfig returns the initial configuration used for onboarding.
func DefaultConfig() *Config {
	return &Config{
		Transcription: TranscriptionConfig{
			Provider:  "openai",
			Model:     "whisper-1",
			Language:  "",
			BatchSize: 3,
		},
		Segmentation: SegmentationConfig{
			SingleSegmentMax:  5 * time.Minute,
			SegmentDuration:   5 * time.Minute,
			ChapterMax:        5 * time.Minute,
			MaxChunkBytes:     0,
			MaxChunkDuration:  15 * time.Minute,
			MaxShrinkAttempts: 4,
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Notifications: NotificationsConfig{
			Enabled: false,
			Type:    "none",
		},
		Providers: make(map[string]ProviderConfig),
	}
}
