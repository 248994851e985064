package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Save writes the configuration back to the config file. Comments from
// the generated template are not preserved.
func Save(c *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

func SaveDefaultConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	configContent := `# Scribeflow Configuration
# This file is automatically generated with defaults.
# Edit values as needed - changes are applied immediately without daemon restart.

# General Paths
[general]
  data_dir = ""                # Root for process directories (empty = user cache dir)
  tmp_dir = ""                 # Scratch space for downloads/conversion (empty = system temp)

# Speech Transcription Configuration
[transcription]
  provider = "openai"          # Transcription service ("openai" or "groq")
  model = "whisper-1"          # Model name ("whisper-1", "whisper-large-v3", ...)
  language = ""                # Source language hint (empty for auto-detect, "en", "it", etc.)
  batch_size = 3               # Concurrent transcription calls per batch

# Audio Segmentation Configuration
[segmentation]
  single_segment_max = "5m"    # At or under this duration the file is one segment
  segment_duration = "5m"      # Fixed slice length when no chapters are supplied
  chapter_max = "5m"           # Chapters longer than this are cut into parts
  max_chunk_bytes = 0          # Upload ceiling per chunk (0 = use the model's limit)
  max_chunk_duration = "15m"   # Hard duration cap per chunk
  max_shrink_attempts = 4      # Halve-and-retry budget for oversized chunks

# Language Model Configuration (used for translation and templates)
[llm]
  provider = "openai"          # LLM service ("openai" or "groq")
  model = "gpt-4o-mini"        # Chat model name

# Output Post-Processing Configuration
[output]
  target_language = ""         # Translate when detected language differs (empty = keep as-is)
  template = ""                # Named template ("summary", "meeting-notes", ...; empty = raw)

# Desktop Notification Configuration
[notifications]
  enabled = false              # Enable job notifications
  type = "none"                # Notification type ("desktop", "log", "none")

# Watch Daemon Configuration
[watch]
  inbox_dir = ""               # Directory watched for new media (required for serve)

# Provider API keys (or set OPENAI_API_KEY / GROQ_API_KEY environment variables)
[providers]
  [providers.openai]
    api_key = ""
  [providers.groq]
    api_key = ""

# Language codes: Use empty string ("") for automatic detection, or specific codes like:
# "en" (English), "it" (Italian), "es" (Spanish), "fr" (French), "de" (German), etc.
`

	if _, err := file.WriteString(configContent); err != nil {
		return fmt.Errorf("failed to write config content: %w", err)
	}

	return nil
}
