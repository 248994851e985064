package provider

import (
	"fmt"
	"sort"
)

// Provider defines the interface for a transcription/LLM service provider
type Provider interface {
	Name() string
	RequiresAPIKey() bool
	ValidateAPIKey(key string) bool
	Models() []Model
}

var registry = make(map[string]Provider)

func init() {
	Register(&OpenAIProvider{})
	Register(&GroqProvider{})
}

// Register adds a provider to the registry
func Register(p Provider) {
	registry[p.Name()] = p
}

// GetProvider returns a provider by name, or nil if not found
func GetProvider(name string) Provider {
	return registry[name]
}

// ListProviders returns all registered provider names, sorted
func ListProviders() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ModelsOfType filters a provider's models by type
func ModelsOfType(p Provider, t ModelType) []Model {
	var models []Model
	for _, m := range p.Models() {
		if m.Type == t {
			models = append(models, m)
		}
	}
	return models
}

// FindModelByID searches all providers for a model and returns it with
// the owning provider's name.
func FindModelByID(id string) (*Model, string, error) {
	for name, p := range registry {
		for _, m := range p.Models() {
			if m.ID == id {
				model := m
				return &model, name, nil
			}
		}
	}
	return nil, "", fmt.Errorf("model not found: %s", id)
}

// UploadCeiling returns the chunk upload limit for a transcription model,
// or the conservative default when the model is unknown.
func UploadCeiling(modelID string) int64 {
	if m, _, err := FindModelByID(modelID); err == nil && m.MaxUploadBytes > 0 {
		return m.MaxUploadBytes
	}
	return DefaultUploadCeiling
}

// DefaultUploadCeiling is the Whisper-family 25MB request limit, the
// smallest ceiling across registered transcription models.
const DefaultUploadCeiling int64 = 25 * 1024 * 1024
