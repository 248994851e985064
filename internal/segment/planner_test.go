package segment_test

import (
	"testing"
	"time"

	"github.com/voxlab/scribeflow/internal/segment"
	"github.com/voxlab/scribeflow/internal/testutil"
)

func planConfig(single, slice, chapterCap time.Duration) segment.PlanConfig {
	return segment.PlanConfig{
		SingleSegmentMax: single,
		SegmentDuration:  slice,
		ChapterMax:       chapterCap,
	}
}

func TestPlanSegmentsSingle(t *testing.T) {
	buf := testutil.TestBuffer(t, 4*time.Minute, 100)

	descs := segment.PlanSegments(buf, nil, planConfig(5*time.Minute, 5*time.Minute, 5*time.Minute))
	if len(descs) != 1 {
		t.Fatalf("expected 1 descriptor, got %d", len(descs))
	}
	d := descs[0]
	if d.Index != 0 || d.StartMs != 0 || d.EndMs != buf.DurationMs() {
		t.Errorf("unexpected descriptor: %+v", d)
	}
	if d.Name != "segment_000" {
		t.Errorf("name = %q, want segment_000", d.Name)
	}
}

func TestPlanSegmentsFixedSlices(t *testing.T) {
	// 40 minutes at 5 minute slices: 8 equal segments.
	buf := testutil.TestBuffer(t, 40*time.Minute, 100)

	descs := segment.PlanSegments(buf, nil, planConfig(5*time.Minute, 5*time.Minute, 5*time.Minute))
	if len(descs) != 8 {
		t.Fatalf("expected 8 descriptors, got %d", len(descs))
	}

	step := (5 * time.Minute).Milliseconds()
	for i, d := range descs {
		if d.Index != i {
			t.Errorf("descriptor %d has index %d", i, d.Index)
		}
		if d.StartMs != int64(i)*step {
			t.Errorf("descriptor %d starts at %d, want %d", i, d.StartMs, int64(i)*step)
		}
	}
	if last := descs[len(descs)-1]; last.EndMs != buf.DurationMs() {
		t.Errorf("last descriptor ends at %d, want %d", last.EndMs, buf.DurationMs())
	}
}

func TestPlanSegmentsShortTail(t *testing.T) {
	// 11 minutes at 5 minute slices: 5m, 5m, 1m.
	buf := testutil.TestBuffer(t, 11*time.Minute, 100)

	descs := segment.PlanSegments(buf, nil, planConfig(5*time.Minute, 5*time.Minute, 5*time.Minute))
	if len(descs) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(descs))
	}
	tail := descs[2]
	if got := tail.DurationMs(); got != (1 * time.Minute).Milliseconds() {
		t.Errorf("tail duration = %d ms, want 60000", got)
	}
}

func TestPlanSegmentsChapters(t *testing.T) {
	total := 20 * time.Minute
	buf := testutil.TestBuffer(t, total, 100)
	cfg := planConfig(5*time.Minute, 5*time.Minute, 5*time.Minute)

	tests := []struct {
		name     string
		chapters []segment.Chapter
		want     []struct {
			name    string
			startMs int64
			endMs   int64
		}
	}{
		{
			name: "chapter past the end is clipped",
			chapters: []segment.Chapter{
				{Title: "Intro", StartMs: 0, EndMs: 4 * 60 * 1000},
				{Title: "Outro", StartMs: 18 * 60 * 1000, EndMs: 30 * 60 * 1000},
			},
			want: []struct {
				name    string
				startMs int64
				endMs   int64
			}{
				{"chapter_00", 0, 240000},
				{"chapter_01", 1080000, 1200000},
			},
		},
		{
			name: "chapter entirely out of range is omitted",
			chapters: []segment.Chapter{
				{Title: "Real", StartMs: 0, EndMs: 240000},
				{Title: "Ghost", StartMs: 25 * 60 * 1000, EndMs: 30 * 60 * 1000},
			},
			want: []struct {
				name    string
				startMs int64
				endMs   int64
			}{
				{"chapter_00", 0, 240000},
			},
		},
		{
			name: "oversized chapter is cut into capped parts",
			chapters: []segment.Chapter{
				// 650s chapter against a 300s cap: 300s, 300s, 50s.
				{Title: "Long", StartMs: 0, EndMs: 650000},
			},
			want: []struct {
				name    string
				startMs int64
				endMs   int64
			}{
				{"chapter_00_part_00", 0, 300000},
				{"chapter_00_part_01", 300000, 600000},
				{"chapter_00_part_02", 600000, 650000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descs := segment.PlanSegments(buf, tt.chapters, cfg)
			if len(descs) != len(tt.want) {
				t.Fatalf("got %d descriptors, want %d: %+v", len(descs), len(tt.want), descs)
			}
			for i, w := range tt.want {
				d := descs[i]
				if d.Index != i {
					t.Errorf("descriptor %d has index %d", i, d.Index)
				}
				if d.Name != w.name || d.StartMs != w.startMs || d.EndMs != w.endMs {
					t.Errorf("descriptor %d = {%s %d %d}, want {%s %d %d}",
						i, d.Name, d.StartMs, d.EndMs, w.name, w.startMs, w.endMs)
				}
			}
		})
	}
}

func TestApplySkip(t *testing.T) {
	descs := []segment.Descriptor{
		{Index: 0, Name: "segment_000"},
		{Index: 1, Name: "segment_001"},
		{Index: 2, Name: "segment_002"},
	}

	got := segment.ApplySkip(descs, []int{1})
	if len(got) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(got))
	}
	if got[0].Index != 0 || got[1].Index != 2 {
		t.Errorf("remaining indices = %d,%d, want 0,2", got[0].Index, got[1].Index)
	}

	// indices survive the omission unchanged
	if got[1].Name != "segment_002" {
		t.Errorf("name = %q, want segment_002", got[1].Name)
	}

	if all := segment.ApplySkip(descs, nil); len(all) != 3 {
		t.Errorf("nil skip should keep everything, got %d", len(all))
	}
}
