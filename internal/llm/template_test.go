package llm

import (
	"strings"
	"testing"
)

func TestLookupTemplate(t *testing.T) {
	tmpl, err := LookupTemplate("meeting-summary")
	if err != nil {
		t.Fatalf("LookupTemplate: %v", err)
	}
	if tmpl.Name != "meeting-summary" || tmpl.System == "" {
		t.Errorf("unexpected template: %+v", tmpl)
	}

	if _, err := LookupTemplate("no-such-template"); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestListTemplatesSorted(t *testing.T) {
	templates := ListTemplates()
	if len(templates) < 3 {
		t.Fatalf("expected several templates, got %d", len(templates))
	}
	for i := 1; i < len(templates); i++ {
		if templates[i-1].Name >= templates[i].Name {
			t.Errorf("templates not sorted: %q >= %q", templates[i-1].Name, templates[i].Name)
		}
	}
}

func TestBuildTranslationSystemPrompt(t *testing.T) {
	prompt := BuildTranslationSystemPrompt("en", "de")
	if !strings.Contains(prompt, "German") {
		t.Errorf("prompt missing target language name: %q", prompt)
	}
	if !strings.Contains(prompt, "English") {
		t.Errorf("prompt missing source language name: %q", prompt)
	}

	// unknown source is simply omitted
	prompt = BuildTranslationSystemPrompt("", "it")
	if strings.Contains(prompt, "source language") {
		t.Errorf("prompt should omit unknown source: %q", prompt)
	}
}

func TestBuildTemplateSystemPrompt(t *testing.T) {
	tmpl, err := LookupTemplate("lecture-notes")
	if err != nil {
		t.Fatalf("LookupTemplate: %v", err)
	}

	prompt := BuildTemplateSystemPrompt(tmpl, "es", map[string]string{
		"course":   "algorithms",
		"audience": "undergrads",
	})
	if !strings.Contains(prompt, tmpl.System) {
		t.Error("prompt must embed the template skeleton")
	}
	if !strings.Contains(prompt, "Spanish") {
		t.Errorf("prompt missing target language: %q", prompt)
	}
	// context pairs are emitted in sorted key order
	audience := strings.Index(prompt, "audience: undergrads")
	course := strings.Index(prompt, "course: algorithms")
	if audience == -1 || course == -1 || audience > course {
		t.Errorf("context pairs missing or unsorted: %q", prompt)
	}
}
