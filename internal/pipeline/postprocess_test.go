package pipeline_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/voxlab/scribeflow/internal/llm"
	"github.com/voxlab/scribeflow/internal/pipeline"
	"github.com/voxlab/scribeflow/internal/store"
	"github.com/voxlab/scribeflow/internal/testutil"
)

func TestProcessNoPostProcessingWhenLanguageMatches(t *testing.T) {
	payload := testutil.WAVBytes(t, time.Minute, fixtureRate)
	mock := testutil.NewMockTranscriptionAdapter() // detects "en"
	mockLLM := testutil.NewMockLLMAdapter()
	p, _ := newTestPipeline(t, testPipelineConfig(3, 5*time.Minute), mock, mockLLM)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	res, err := p.Process(ctx, pipeline.Request{
		Bytes:          payload,
		Info:           store.SourceInfo{ID: "noop-postprocess-test"},
		TargetLanguage: "en",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if mockLLM.TranslateCalls != 0 || mockLLM.TransformCalls != 0 {
		t.Errorf("no LLM calls expected, got translate=%d transform=%d",
			mockLLM.TranslateCalls, mockLLM.TransformCalls)
	}
	if res.Transcription.SourceText != "" {
		t.Errorf("SourceText should be empty without post-processing, got %q", res.Transcription.SourceText)
	}
	// usage holds only transcription entries
	if len(res.Transcription.Usage) != 1 {
		t.Fatalf("expected 1 usage record, got %d", len(res.Transcription.Usage))
	}
	if res.Transcription.Usage[0].Model != "mock-transcriber" {
		t.Errorf("usage model = %q, want mock-transcriber", res.Transcription.Usage[0].Model)
	}
}

func TestProcessTranslatesOnLanguageMismatch(t *testing.T) {
	payload := testutil.WAVBytes(t, time.Minute, fixtureRate)
	mock := testutil.NewMockTranscriptionAdapter() // detects "en"
	mockLLM := testutil.NewMockLLMAdapter()
	p, _ := newTestPipeline(t, testPipelineConfig(3, 5*time.Minute), mock, mockLLM)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	res, err := p.Process(ctx, pipeline.Request{
		Bytes:          payload,
		Info:           store.SourceInfo{ID: "translate-test"},
		TargetLanguage: "de",
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if mockLLM.TranslateCalls != 1 {
		t.Fatalf("expected 1 translate call, got %d", mockLLM.TranslateCalls)
	}
	if !strings.HasPrefix(res.Transcription.Text, "translated(en->de):") {
		t.Errorf("text not translated: %q", res.Transcription.Text)
	}
	if res.Transcription.SourceText == "" {
		t.Error("pre-translation text must be retained in SourceText")
	}
	// transcription usage plus one LLM entry, appended last
	if n := len(res.Transcription.Usage); n != 2 {
		t.Fatalf("expected 2 usage records, got %d", n)
	}
	if last := res.Transcription.Usage[1]; last.Model != "mock-llm" {
		t.Errorf("last usage model = %q, want mock-llm", last.Model)
	}
}

func TestProcessTemplateWinsOverTranslation(t *testing.T) {
	payload := testutil.WAVBytes(t, time.Minute, fixtureRate)
	mock := testutil.NewMockTranscriptionAdapter()
	mockLLM := testutil.NewMockLLMAdapter()

	var gotTemplate, gotTarget string
	var gotContext map[string]string
	mockLLM.TransformFunc = func(ctx context.Context, text, template, targetLang string, tctx map[string]string) (*llm.Result, error) {
		gotTemplate, gotTarget, gotContext = template, targetLang, tctx
		return &llm.Result{Text: "structured notes", Tokens: 5, Model: "mock-llm"}, nil
	}

	p, _ := newTestPipeline(t, testPipelineConfig(3, 5*time.Minute), mock, mockLLM)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	res, err := p.Process(ctx, pipeline.Request{
		Bytes:           payload,
		Info:            store.SourceInfo{ID: "template-test"},
		TargetLanguage:  "de",
		Template:        "meeting-summary",
		TemplateContext: map[string]string{"attendees": "ada, lin"},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if mockLLM.TransformCalls != 1 {
		t.Fatalf("expected 1 transform call, got %d", mockLLM.TransformCalls)
	}
	if mockLLM.TranslateCalls != 0 {
		t.Errorf("template must preempt translation, got %d translate calls", mockLLM.TranslateCalls)
	}
	if gotTemplate != "meeting-summary" || gotTarget != "de" {
		t.Errorf("transform got template=%q target=%q", gotTemplate, gotTarget)
	}
	if gotContext["attendees"] != "ada, lin" {
		t.Errorf("template context lost: %v", gotContext)
	}
	if res.Transcription.Text != "structured notes" {
		t.Errorf("text = %q, want transformed output", res.Transcription.Text)
	}
	if res.Transcription.SourceText == "" {
		t.Error("original text must be retained in SourceText")
	}
	if res.Parameters.Template != "meeting-summary" {
		t.Errorf("parameters template = %q", res.Parameters.Template)
	}
}
