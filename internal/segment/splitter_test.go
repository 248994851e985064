package segment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/voxlab/scribeflow/internal/segment"
	"github.com/voxlab/scribeflow/internal/store"
	"github.com/voxlab/scribeflow/internal/testutil"
)

func splitConfig(ceiling int64) segment.SplitConfig {
	return segment.SplitConfig{
		MaxChunkBytes:     ceiling,
		MaxChunkDuration:  15 * time.Minute,
		MaxShrinkAttempts: 4,
	}
}

func TestExportSingleChunkWhenUnderCeiling(t *testing.T) {
	fs := afero.NewMemMapFs()
	buf := testutil.TestBuffer(t, 10*time.Second, 1000)
	s := segment.NewSplitter(fs, splitConfig(1<<20))

	desc := segment.Descriptor{Index: 0, Name: "segment_000", StartMs: 0, EndMs: buf.DurationMs()}
	units, err := s.Export(context.Background(), buf, desc, "/proc")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}

	u := units[0]
	if u.Name != "segment_000" || u.Attempts != 1 {
		t.Errorf("unexpected unit: %+v", u)
	}
	fi, err := fs.Stat(u.Path)
	if err != nil {
		t.Fatalf("exported chunk missing: %v", err)
	}
	if fi.Size() != u.Size {
		t.Errorf("recorded size %d != file size %d", u.Size, fi.Size())
	}
}

func TestExportRecutsOversizedSegment(t *testing.T) {
	fs := afero.NewMemMapFs()
	// 60s of 16-bit mono at 1000 Hz is ~120KB encoded.
	buf := testutil.TestBuffer(t, 60*time.Second, 1000)
	ceiling := int64(30000)
	s := segment.NewSplitter(fs, splitConfig(ceiling))

	desc := segment.Descriptor{Index: 2, Name: "segment_002", StartMs: 0, EndMs: buf.DurationMs()}
	units, err := s.Export(context.Background(), buf, desc, "/proc")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(units) < 2 {
		t.Fatalf("expected a multi-chunk re-cut, got %d units", len(units))
	}

	// every chunk respects the ceiling and chunks tile the span exactly
	cursor := desc.StartMs
	for i, u := range units {
		if u.Size > ceiling {
			t.Errorf("unit %d size %d exceeds ceiling %d", i, u.Size, ceiling)
		}
		if u.StartMs != cursor {
			t.Errorf("unit %d starts at %d, want %d", i, u.StartMs, cursor)
		}
		if u.Segment != desc.Index {
			t.Errorf("unit %d owned by segment %d, want %d", i, u.Segment, desc.Index)
		}
		if _, err := fs.Stat(u.Path); err != nil {
			t.Errorf("unit %d file missing: %v", i, err)
		}
		cursor = u.EndMs
	}
	if cursor != desc.EndMs {
		t.Errorf("chunks end at %d, want %d (audio lost)", cursor, desc.EndMs)
	}

	// the oversized trial export must be gone
	if _, err := fs.Stat(store.ChunkPath("/proc", desc.Name)); err == nil {
		t.Error("oversized trial file was left behind")
	}
}

func TestExportFailsWhenCeilingUnreachable(t *testing.T) {
	fs := afero.NewMemMapFs()
	buf := testutil.TestBuffer(t, 30*time.Second, 1000)
	// ceiling below the WAV header size: no chunk can ever fit
	s := segment.NewSplitter(fs, splitConfig(40))

	desc := segment.Descriptor{Index: 0, Name: "segment_000", StartMs: 0, EndMs: buf.DurationMs()}
	_, err := s.Export(context.Background(), buf, desc, "/proc")
	if !errors.Is(err, segment.ErrSegmentTooLarge) {
		t.Fatalf("expected ErrSegmentTooLarge, got %v", err)
	}
}

func TestExportDirectSkipsSizeCheck(t *testing.T) {
	fs := afero.NewMemMapFs()
	buf := testutil.TestBuffer(t, 30*time.Second, 1000)
	// same unreachable ceiling: the direct path must not care
	s := segment.NewSplitter(fs, splitConfig(40))

	desc := segment.Descriptor{Index: 0, Name: "segment_000", StartMs: 0, EndMs: buf.DurationMs()}
	u, err := s.ExportDirect(context.Background(), buf, desc, "/proc")
	if err != nil {
		t.Fatalf("ExportDirect: %v", err)
	}
	if u.Size <= 40 {
		t.Errorf("expected an over-ceiling export, got %d bytes", u.Size)
	}
}

func TestExportCancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	buf := testutil.TestBuffer(t, 10*time.Second, 1000)
	s := segment.NewSplitter(fs, splitConfig(1<<20))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	desc := segment.Descriptor{Index: 0, Name: "segment_000", StartMs: 0, EndMs: buf.DurationMs()}
	if _, err := s.Export(ctx, buf, desc, "/proc"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
