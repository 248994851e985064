package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

var ErrConfigNotFound = errors.New("config not found")

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	appDir := filepath.Join(configDir, "scribeflow")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(appDir, "config.toml"), nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: run scribeflow configure", ErrConfigNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
	}

	log.Printf("Config: loading configuration from %s", configPath)
	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if config.Providers == nil {
		config.Providers = make(map[string]ProviderConfig)
	}

	config.applyDefaults()

	log.Printf("Config: configuration loaded successfully")
	return &config, nil
}

// applyDefaults fills zero values a hand-edited file may have dropped.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Transcription.BatchSize == 0 {
		c.Transcription.BatchSize = def.Transcription.BatchSize
	}
	if c.Segmentation.SingleSegmentMax == 0 {
		c.Segmentation.SingleSegmentMax = def.Segmentation.SingleSegmentMax
	}
	if c.Segmentation.SegmentDuration == 0 {
		c.Segmentation.SegmentDuration = def.Segmentation.SegmentDuration
	}
	if c.Segmentation.ChapterMax == 0 {
		c.Segmentation.ChapterMax = def.Segmentation.ChapterMax
	}
	if c.Segmentation.MaxChunkDuration == 0 {
		c.Segmentation.MaxChunkDuration = def.Segmentation.MaxChunkDuration
	}
	if c.Segmentation.MaxShrinkAttempts == 0 {
		c.Segmentation.MaxShrinkAttempts = def.Segmentation.MaxShrinkAttempts
	}
}

// DataDir resolves the process directory root.
func (c *Config) DataDir() (string, error) {
	if c.General.DataDir != "" {
		return c.General.DataDir, nil
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "scribeflow", "processed"), nil
}

// TmpDir resolves the scratch directory for downloads and conversion.
func (c *Config) TmpDir() string {
	if c.General.TmpDir != "" {
		return c.General.TmpDir
	}
	return os.TempDir()
}
