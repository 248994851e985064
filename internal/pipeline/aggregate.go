package pipeline

import (
	"strings"

	"github.com/voxlab/scribeflow/internal/language"
)

// aggregate merges ordered segment transcripts into one result: texts
// joined in slot order, detected language by majority vote across
// per-unit detections, usage carried through append-only.
func aggregate(transcripts []SegmentTranscript, detections []string, usage []ModelUsage) TranscriptionResult {
	parts := make([]string, 0, len(transcripts))
	for _, t := range transcripts {
		text := strings.TrimSpace(t.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}

	return TranscriptionResult{
		Text:             strings.Join(parts, " "),
		DetectedLanguage: language.Majority(detections),
		Segments:         transcripts,
		Usage:            usage,
	}
}
