package provider

// ModelType represents the type of a model
type ModelType int

const (
	Transcription ModelType = iota
	LLM
)

// Model represents a model with full metadata
type Model struct {
	ID                 string          // unique identifier (e.g., "whisper-1", "gpt-4o-mini")
	Name               string          // display name (e.g., "Whisper 1", "GPT-4o Mini")
	Description        string          // short description
	Type               ModelType       // transcription or LLM
	AdapterType        string          // which adapter to use (e.g., "openai", "groq")
	MaxUploadBytes     int64           // upload ceiling for one audio chunk; 0 for text models
	SupportedLanguages []string        // provider language codes; empty means all
	Endpoint           *EndpointConfig // HTTP endpoint metadata
}

// EndpointConfig holds HTTP endpoint configuration
type EndpointConfig struct {
	BaseURL string // e.g., "https://api.openai.com/v1"
	Path    string // e.g., "/audio/transcriptions"
}

// SupportsLanguage returns true if the model supports the given language code.
// Auto-detect (empty string) is always supported.
func (m *Model) SupportsLanguage(code string) bool {
	if code == "" || len(m.SupportedLanguages) == 0 {
		return true
	}
	for _, supported := range m.SupportedLanguages {
		if supported == code {
			return true
		}
	}
	return false
}
