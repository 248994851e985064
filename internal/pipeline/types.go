package pipeline

import (
	"fmt"
	"time"

	"github.com/voxlab/scribeflow/internal/segment"
	"github.com/voxlab/scribeflow/internal/store"
)

// Stage labels where in the pipeline an invocation failed.
type Stage string

const (
	StageLoad        Stage = "load"
	StageSegment     Stage = "segment"
	StageTranscribe  Stage = "transcribe"
	StagePostProcess Stage = "post-process"
	StagePersist     Stage = "persist"
)

// ProcessingError wraps any stage failure with the stage reached. All
// failures are fatal for the invocation; no partial transcript is ever
// returned.
type ProcessingError struct {
	Stage Stage
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UnitError identifies which transcription unit failed within a batch.
type UnitError struct {
	Unit int
	Name string
	Err  error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("transcription unit %d (%s): %v", e.Unit, e.Name, e.Err)
}

func (e *UnitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Request describes one invocation of the pipeline. Exactly one of
// Bytes, URL or Path must be set.
type Request struct {
	Bytes []byte
	URL   string
	Path  string

	Info            store.SourceInfo
	Chapters        []segment.Chapter
	TargetLanguage  string
	Template        string
	TemplateContext map[string]string
	SkipSegments    []int
}

// ModelUsage is the append-only record of one external call.
type ModelUsage struct {
	Model      string    `json:"model"`
	Tokens     int       `json:"tokens"`
	DurationMs int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// SegmentTranscript is one planned segment's transcribed text, always
// assembled in segment order, never arrival order.
type SegmentTranscript struct {
	SegmentID int    `json:"segment_id"`
	Name      string `json:"name"`
	Text      string `json:"text"`
	Language  string `json:"language,omitempty"`
}

// TranscriptionResult is the aggregated outcome over all segments.
type TranscriptionResult struct {
	Text             string              `json:"text"`
	SourceText       string              `json:"source_text,omitempty"` // pre-translation text, when translated
	DetectedLanguage string              `json:"detected_language"`
	Segments         []SegmentTranscript `json:"segments"`
	Usage            []ModelUsage        `json:"usage"`
}

// TotalTokens sums tokens across the usage list.
func (r *TranscriptionResult) TotalTokens() int {
	total := 0
	for _, u := range r.Usage {
		total += u.Tokens
	}
	return total
}

// Parameters records what the invocation was asked to do.
type Parameters struct {
	TargetLanguage string `json:"target_language"`
	Template       string `json:"template,omitempty"`
	BatchSize      int    `json:"batch_size"`
	SkipSegments   []int  `json:"skip_segments,omitempty"`
}

// ProcessingResult is the final persisted artifact. Its presence in the
// process directory is what makes the next identical-key invocation a
// cache hit.
type ProcessingResult struct {
	Transcription TranscriptionResult `json:"transcription"`
	DurationMs    int64               `json:"duration_ms"`
	ProcessDir    string              `json:"process_dir"`
	Parameters    Parameters          `json:"parameters"`
	CreatedAt     time.Time           `json:"created_at"`
}
