package config

import "time"

type Config struct {
	General       GeneralConfig             `toml:"general"`
	Transcription TranscriptionConfig       `toml:"transcription"`
	Segmentation  SegmentationConfig        `toml:"segmentation"`
	LLM           LLMConfig                 `toml:"llm"`
	Output        OutputConfig              `toml:"output"`
	Notifications NotificationsConfig       `toml:"notifications"`
	Watch         WatchConfig               `toml:"watch"`
	Providers     map[string]ProviderConfig `toml:"providers"`
}

// GeneralConfig holds global settings that apply across the application.
type GeneralConfig struct {
	DataDir string `toml:"data_dir"` // process directory root (empty = user cache dir)
	TmpDir  string `toml:"tmp_dir"`  // scratch space for downloads and conversion (empty = os temp)
}

type TranscriptionConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	Language  string `toml:"language"` // source hint; empty for auto-detect
	BatchSize int    `toml:"batch_size"`
}

type SegmentationConfig struct {
	SingleSegmentMax  time.Duration `toml:"single_segment_max"`
	SegmentDuration   time.Duration `toml:"segment_duration"`
	ChapterMax        time.Duration `toml:"chapter_max"`
	MaxChunkBytes     int64         `toml:"max_chunk_bytes"` // 0 = use the model's upload ceiling
	MaxChunkDuration  time.Duration `toml:"max_chunk_duration"`
	MaxShrinkAttempts int           `toml:"max_shrink_attempts"`
}

// LLMConfig configures the translation/template post-processing phase.
// The phase only runs when the output section asks for it.
type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
}

type OutputConfig struct {
	TargetLanguage string `toml:"target_language"` // translate when detection differs
	Template       string `toml:"template"`        // named template; empty = raw transcript
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Type    string `toml:"type"` // "desktop", "log", "none"
}

type WatchConfig struct {
	InboxDir string `toml:"inbox_dir"` // directory the daemon watches for new media
}

// ProviderConfig holds API key for a provider
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}
