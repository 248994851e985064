// Package segment decides how a decoded audio buffer is cut for
// transcription: narrative planning (fixed slices or chapter bounds) and
// size-constrained chunk export.
package segment

import (
	"fmt"
	"time"

	"github.com/voxlab/scribeflow/internal/audio"
)

// Descriptor is one planned, time-bounded slice of the source audio.
type Descriptor struct {
	Index   int
	Name    string // deterministic artifact name, e.g. "segment_003"
	StartMs int64
	EndMs   int64
	Title   string // chapter title, when chapter-bounded
}

// DurationMs returns the planned slice length.
func (d Descriptor) DurationMs() int64 {
	return d.EndMs - d.StartMs
}

// Chapter is a caller-supplied narrative boundary.
type Chapter struct {
	Title   string
	StartMs int64
	EndMs   int64
}

// PlanConfig tunes the planner's cut points.
type PlanConfig struct {
	// SingleSegmentMax is the duration at or under which the whole
	// buffer becomes exactly one segment.
	SingleSegmentMax time.Duration
	// SegmentDuration is the fixed slice length when no chapters are
	// supplied.
	SegmentDuration time.Duration
	// ChapterMax caps one chapter's duration; longer chapters are cut
	// into sequential parts of at most this length.
	ChapterMax time.Duration
}

// DefaultPlanConfig mirrors the service defaults: 5 minute slices.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		SingleSegmentMax: 5 * time.Minute,
		SegmentDuration:  5 * time.Minute,
		ChapterMax:       5 * time.Minute,
	}
}

// PlanSegments emits the full ordered descriptor list for a buffer.
// Exactly one descriptor is emitted when the buffer fits the
// single-segment threshold; otherwise chapters win over fixed slicing.
func PlanSegments(buf *audio.Buffer, chapters []Chapter, cfg PlanConfig) []Descriptor {
	total := buf.DurationMs()

	if total <= cfg.SingleSegmentMax.Milliseconds() {
		return []Descriptor{{
			Index:   0,
			Name:    segmentName(0),
			StartMs: 0,
			EndMs:   total,
		}}
	}

	if len(chapters) > 0 {
		return planChapters(total, chapters, cfg)
	}

	return planFixed(total, cfg)
}

func planFixed(totalMs int64, cfg PlanConfig) []Descriptor {
	step := cfg.SegmentDuration.Milliseconds()
	if step <= 0 {
		step = DefaultPlanConfig().SegmentDuration.Milliseconds()
	}

	var descs []Descriptor
	for start := int64(0); start < totalMs; start += step {
		end := start + step
		if end > totalMs {
			end = totalMs
		}
		idx := len(descs)
		descs = append(descs, Descriptor{
			Index:   idx,
			Name:    segmentName(idx),
			StartMs: start,
			EndMs:   end,
		})
	}
	return descs
}

func planChapters(totalMs int64, chapters []Chapter, cfg PlanConfig) []Descriptor {
	capMs := cfg.ChapterMax.Milliseconds()
	if capMs <= 0 {
		capMs = DefaultPlanConfig().ChapterMax.Milliseconds()
	}

	var descs []Descriptor
	for ci, ch := range chapters {
		start, end := ch.StartMs, ch.EndMs
		if start < 0 {
			start = 0
		}
		if end > totalMs {
			end = totalMs
		}
		// empty or inverted after clipping
		if end <= start {
			continue
		}

		if end-start <= capMs {
			idx := len(descs)
			descs = append(descs, Descriptor{
				Index:   idx,
				Name:    chapterName(ci),
				StartMs: start,
				EndMs:   end,
				Title:   ch.Title,
			})
			continue
		}

		// over the cap: sequential parts of at most capMs, tail truncated
		for pi, partStart := 0, start; partStart < end; pi, partStart = pi+1, partStart+capMs {
			partEnd := partStart + capMs
			if partEnd > end {
				partEnd = end
			}
			idx := len(descs)
			descs = append(descs, Descriptor{
				Index:   idx,
				Name:    chapterPartName(ci, pi),
				StartMs: partStart,
				EndMs:   partEnd,
				Title:   ch.Title,
			})
		}
	}
	return descs
}

// ApplySkip returns the descriptors remaining after omitting the indices
// in skip. The omitted indices keep their on-disk artifacts, which the
// aggregator reuses.
func ApplySkip(descs []Descriptor, skip []int) []Descriptor {
	if len(skip) == 0 {
		return descs
	}
	skipped := make(map[int]bool, len(skip))
	for _, idx := range skip {
		skipped[idx] = true
	}

	remaining := make([]Descriptor, 0, len(descs))
	for _, d := range descs {
		if !skipped[d.Index] {
			remaining = append(remaining, d)
		}
	}
	return remaining
}

func segmentName(idx int) string {
	return fmt.Sprintf("segment_%03d", idx)
}

func chapterName(chapter int) string {
	return fmt.Sprintf("chapter_%02d", chapter)
}

func chapterPartName(chapter, part int) string {
	return fmt.Sprintf("chapter_%02d_part_%02d", chapter, part)
}
