package provider

import (
	"strings"

	"github.com/voxlab/scribeflow/internal/language"
)

// OpenAIProvider implements Provider for OpenAI services
type OpenAIProvider struct{}

func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

func (p *OpenAIProvider) RequiresAPIKey() bool {
	return true
}

func (p *OpenAIProvider) ValidateAPIKey(key string) bool {
	return strings.HasPrefix(key, "sk-")
}

func (p *OpenAIProvider) Models() []Model {
	allLangs := language.Codes()

	return []Model{
		// transcription models
		{
			ID:                 "whisper-1",
			Name:               "Whisper 1",
			Description:        "OpenAI's production speech-to-text model",
			Type:               Transcription,
			AdapterType:        AdapterOpenAI,
			MaxUploadBytes:     25 * 1024 * 1024,
			SupportedLanguages: allLangs,
			Endpoint:           &EndpointConfig{BaseURL: "https://api.openai.com/v1", Path: "/audio/transcriptions"},
		},
		// LLM models
		{
			ID:                 "gpt-4o-mini",
			Name:               "GPT-4o Mini",
			Description:        "Fast and affordable GPT-4 variant",
			Type:               LLM,
			AdapterType:        AdapterOpenAI,
			SupportedLanguages: allLangs,
			Endpoint:           &EndpointConfig{BaseURL: "https://api.openai.com/v1", Path: "/chat/completions"},
		},
		{
			ID:                 "gpt-4o",
			Name:               "GPT-4o",
			Description:        "Most capable GPT-4 model",
			Type:               LLM,
			AdapterType:        AdapterOpenAI,
			SupportedLanguages: allLangs,
			Endpoint:           &EndpointConfig{BaseURL: "https://api.openai.com/v1", Path: "/chat/completions"},
		},
	}
}
