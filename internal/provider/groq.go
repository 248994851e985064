package provider

import (
	"strings"

	"github.com/voxlab/scribeflow/internal/language"
)

// GroqBaseURL is the OpenAI-compatible Groq endpoint
const GroqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider implements Provider for Groq services
type GroqProvider struct{}

func (p *GroqProvider) Name() string {
	return ProviderGroq
}

func (p *GroqProvider) RequiresAPIKey() bool {
	return true
}

func (p *GroqProvider) ValidateAPIKey(key string) bool {
	return strings.HasPrefix(key, "gsk_")
}

func (p *GroqProvider) Models() []Model {
	allLangs := language.Codes()

	return []Model{
		{
			ID:                 "whisper-large-v3",
			Name:               "Whisper Large v3",
			Description:        "Whisper large served by Groq",
			Type:               Transcription,
			AdapterType:        AdapterGroq,
			MaxUploadBytes:     25 * 1024 * 1024,
			SupportedLanguages: allLangs,
			Endpoint:           &EndpointConfig{BaseURL: GroqBaseURL, Path: "/audio/transcriptions"},
		},
		{
			ID:                 "whisper-large-v3-turbo",
			Name:               "Whisper Large v3 Turbo",
			Description:        "Faster Whisper large variant",
			Type:               Transcription,
			AdapterType:        AdapterGroq,
			MaxUploadBytes:     25 * 1024 * 1024,
			SupportedLanguages: allLangs,
			Endpoint:           &EndpointConfig{BaseURL: GroqBaseURL, Path: "/audio/transcriptions"},
		},
		{
			ID:                 "llama-3.3-70b-versatile",
			Name:               "Llama 3.3 70B",
			Description:        "General purpose model for translation and transforms",
			Type:               LLM,
			AdapterType:        AdapterGroq,
			SupportedLanguages: allLangs,
			Endpoint:           &EndpointConfig{BaseURL: GroqBaseURL, Path: "/chat/completions"},
		},
	}
}
