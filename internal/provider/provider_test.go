package provider

import "testing"

func TestGetProvider(t *testing.T) {
	for _, name := range []string{ProviderOpenAI, ProviderGroq} {
		if GetProvider(name) == nil {
			t.Errorf("expected provider %q to be registered", name)
		}
	}
	if GetProvider("mistral") != nil {
		t.Error("expected unknown provider to return nil")
	}
}

func TestFindModelByID(t *testing.T) {
	m, owner, err := FindModelByID("whisper-1")
	if err != nil {
		t.Fatalf("FindModelByID: %v", err)
	}
	if owner != ProviderOpenAI {
		t.Errorf("owner = %q, want %q", owner, ProviderOpenAI)
	}
	if m.Type != Transcription {
		t.Errorf("whisper-1 should be a transcription model")
	}

	if _, _, err := FindModelByID("no-such-model"); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestModelsOfType(t *testing.T) {
	for _, name := range ListProviders() {
		p := GetProvider(name)
		if len(ModelsOfType(p, Transcription)) == 0 {
			t.Errorf("provider %q has no transcription models", name)
		}
		if len(ModelsOfType(p, LLM)) == 0 {
			t.Errorf("provider %q has no LLM models", name)
		}
	}
}

func TestUploadCeiling(t *testing.T) {
	if got := UploadCeiling("whisper-1"); got != 25*1024*1024 {
		t.Errorf("UploadCeiling(whisper-1) = %d, want 25MB", got)
	}
	if got := UploadCeiling("unknown-model"); got != DefaultUploadCeiling {
		t.Errorf("UploadCeiling(unknown) = %d, want default %d", got, DefaultUploadCeiling)
	}
}
