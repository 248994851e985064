package segment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/afero"

	"github.com/voxlab/scribeflow/internal/audio"
	"github.com/voxlab/scribeflow/internal/store"
)

// ErrSegmentTooLarge is returned when the shrink-retry loop exhausts its
// attempt budget without getting a chunk under the upload ceiling. Fatal
// for the whole invocation.
var ErrSegmentTooLarge = errors.New("segment too large")

// Unit is one exported, file-backed chunk ready for transcription.
type Unit struct {
	Segment  int    // owning descriptor index
	Name     string // chunk artifact name
	Path     string // exported chunk file
	Title    string // chapter title, if any
	StartMs  int64
	EndMs    int64
	Size     int64 // measured exported size
	Attempts int   // export attempts spent on this chunk
}

// SplitConfig tunes the size-constrained export.
type SplitConfig struct {
	// MaxChunkBytes is the external upload ceiling for one chunk.
	MaxChunkBytes int64
	// MaxChunkDuration is the hard cap on one chunk regardless of how
	// generous the ceiling is.
	MaxChunkDuration time.Duration
	// MaxShrinkAttempts bounds halve-and-retry per chunk.
	MaxShrinkAttempts int
}

// DefaultSplitConfig uses the Whisper 25MB request limit with a 10%
// safety margin applied at target-duration time, 15 minute duration cap
// and 4 shrink attempts.
func DefaultSplitConfig() SplitConfig {
	return SplitConfig{
		MaxChunkBytes:     25 * 1024 * 1024,
		MaxChunkDuration:  15 * time.Minute,
		MaxShrinkAttempts: 4,
	}
}

// Splitter exports planned segments as chunk files, shrinking adaptively
// until each file satisfies the upload ceiling.
type Splitter struct {
	fs  afero.Fs
	cfg SplitConfig
}

// NewSplitter creates a Splitter writing chunks through fs.
func NewSplitter(fs afero.Fs, cfg SplitConfig) *Splitter {
	if cfg.MaxChunkBytes <= 0 {
		cfg.MaxChunkBytes = DefaultSplitConfig().MaxChunkBytes
	}
	if cfg.MaxChunkDuration <= 0 {
		cfg.MaxChunkDuration = DefaultSplitConfig().MaxChunkDuration
	}
	if cfg.MaxShrinkAttempts <= 0 {
		cfg.MaxShrinkAttempts = DefaultSplitConfig().MaxShrinkAttempts
	}
	return &Splitter{fs: fs, cfg: cfg}
}

// ExportDirect exports a descriptor's full span without any size
// iteration. Used for the single-segment path where the whole buffer is
// short enough that planning already produced exactly one slice.
func (s *Splitter) ExportDirect(ctx context.Context, buf *audio.Buffer, desc Descriptor, dir string) (Unit, error) {
	if err := ctx.Err(); err != nil {
		return Unit{}, err
	}

	path := store.ChunkPath(dir, desc.Name)
	size, err := s.exportFile(buf.Slice(desc.StartMs, desc.EndMs), path)
	if err != nil {
		return Unit{}, err
	}

	return Unit{
		Segment:  desc.Index,
		Name:     desc.Name,
		Path:     path,
		Title:    desc.Title,
		StartMs:  desc.StartMs,
		EndMs:    desc.EndMs,
		Size:     size,
		Attempts: 1,
	}, nil
}

// Export realizes one descriptor as one or more chunk files, each under
// the configured ceiling. A trial export of the full span measures the
// encoded density; if the span fits, it becomes a single chunk. Otherwise
// the span is re-cut at a density-derived target duration with a safety
// margin, and any chunk still over the ceiling is halved and re-exported
// up to the attempt budget.
func (s *Splitter) Export(ctx context.Context, buf *audio.Buffer, desc Descriptor, dir string) ([]Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trialPath := store.ChunkPath(dir, desc.Name)
	trialSize, err := s.exportFile(buf.Slice(desc.StartMs, desc.EndMs), trialPath)
	if err != nil {
		return nil, err
	}

	if trialSize <= s.cfg.MaxChunkBytes {
		return []Unit{{
			Segment:  desc.Index,
			Name:     desc.Name,
			Path:     trialPath,
			Title:    desc.Title,
			StartMs:  desc.StartMs,
			EndMs:    desc.EndMs,
			Size:     trialSize,
			Attempts: 1,
		}}, nil
	}

	// Trial is over the ceiling: derive bytes-per-ms and re-cut.
	if err := s.fs.Remove(trialPath); err != nil {
		log.Printf("splitter: remove oversized trial %s: %v", trialPath, err)
	}

	durMs := desc.DurationMs()
	if durMs <= 0 {
		return nil, fmt.Errorf("%w: %s has no duration", ErrSegmentTooLarge, desc.Name)
	}
	bytesPerMs := float64(trialSize) / float64(durMs)

	targetMs := int64(float64(s.cfg.MaxChunkBytes) * 0.9 / bytesPerMs)
	if maxMs := s.cfg.MaxChunkDuration.Milliseconds(); targetMs > maxMs {
		targetMs = maxMs
	}
	if targetMs <= 0 {
		targetMs = 1
	}

	log.Printf("splitter: %s is %d bytes over %d ms, re-cutting at %d ms chunks",
		desc.Name, trialSize, durMs, targetMs)

	var units []Unit
	for cursor := desc.StartMs; cursor < desc.EndMs; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := fmt.Sprintf("%s_chunk_%02d", desc.Name, len(units))
		unit, err := s.exportConstrained(buf, desc, name, dir, cursor, targetMs)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
		cursor = unit.EndMs
	}
	return units, nil
}

// exportConstrained exports one chunk starting at cursor, halving its
// duration until the exported file fits the ceiling or the attempt
// budget runs out. The chunk's actual end (after any shrinking) becomes
// the next cursor, so no audio is dropped.
func (s *Splitter) exportConstrained(buf *audio.Buffer, desc Descriptor, name, dir string, cursor, targetMs int64) (Unit, error) {
	path := store.ChunkPath(dir, name)
	chunkMs := targetMs

	for attempt := 1; attempt <= s.cfg.MaxShrinkAttempts; attempt++ {
		end := cursor + chunkMs
		if end > desc.EndMs {
			end = desc.EndMs
		}

		size, err := s.exportFile(buf.Slice(cursor, end), path)
		if err != nil {
			return Unit{}, err
		}

		if size <= s.cfg.MaxChunkBytes {
			return Unit{
				Segment:  desc.Index,
				Name:     name,
				Path:     path,
				Title:    desc.Title,
				StartMs:  cursor,
				EndMs:    end,
				Size:     size,
				Attempts: attempt,
			}, nil
		}

		log.Printf("splitter: %s attempt %d exported %d bytes over ceiling %d, halving",
			name, attempt, size, s.cfg.MaxChunkBytes)
		if err := s.fs.Remove(path); err != nil {
			log.Printf("splitter: remove oversized chunk %s: %v", path, err)
		}
		chunkMs /= 2
		if chunkMs <= 0 {
			break
		}
	}

	return Unit{}, fmt.Errorf("%w: %s still over %d bytes after %d attempts",
		ErrSegmentTooLarge, name, s.cfg.MaxChunkBytes, s.cfg.MaxShrinkAttempts)
}

func (s *Splitter) exportFile(slice *audio.Buffer, path string) (int64, error) {
	f, err := s.fs.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create chunk %s: %w", path, err)
	}

	if err := slice.Encode(f); err != nil {
		f.Close()
		return 0, fmt.Errorf("export chunk %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close chunk %s: %w", path, err)
	}

	fi, err := s.fs.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat chunk %s: %w", path, err)
	}
	return fi.Size(), nil
}
