// Package store owns the durable artifacts of one pipeline invocation:
// the content-keyed process directory, exported audio chunks, per-segment
// info sidecars and the final persisted transcript.
package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// TranscriptFile is the persisted artifact whose presence is the
	// sole cache-hit signal for a process directory.
	TranscriptFile = "transcript.json"

	chunkExt = ".wav"
	infoExt  = ".json"
)

// Store is the byte-addressable artifact store. The filesystem is
// abstracted so tests run against an in-memory fs.
type Store struct {
	fs      afero.Fs
	baseDir string
}

// New creates a Store rooted at baseDir.
func New(fs afero.Fs, baseDir string) *Store {
	return &Store{fs: fs, baseDir: baseDir}
}

// Fs exposes the underlying filesystem for collaborators that create
// chunk files inside a process directory.
func (s *Store) Fs() afero.Fs { return s.fs }

// TranscriptPath returns the persisted transcript location for a process dir.
func TranscriptPath(dir string) string {
	return filepath.Join(dir, TranscriptFile)
}

// ChunkPath returns the exported audio chunk location for a segment name.
func ChunkPath(dir, name string) string {
	return filepath.Join(dir, name+chunkExt)
}

// InfoPath returns the per-segment info sidecar location for a segment name.
func InfoPath(dir, name string) string {
	return filepath.Join(dir, name+infoExt)
}

// Exists reports whether a path is present in the store.
func (s *Store) Exists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

// Size returns the byte size of a stored file.
func (s *Store) Size(path string) (int64, error) {
	fi, err := s.fs.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// WriteJSON marshals v and writes it atomically enough for our single
// writer model (one invocation owns its process directory).
func (s *Store) WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a stored JSON artifact into v.
func (s *Store) ReadJSON(path string, v any) error {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", filepath.Base(path), err)
	}
	return nil
}

// SegmentInfo is the audit/resume sidecar written next to each exported
// chunk. A resumed run reads Text/Language back instead of re-calling
// the transcription service.
type SegmentInfo struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	StartMs  int64  `json:"start_ms"`
	EndMs    int64  `json:"end_ms"`
	Title    string `json:"title,omitempty"`
	Size     int64  `json:"size_bytes"`
	Attempts int    `json:"attempts"`
	Text     string `json:"text,omitempty"`
	Language string `json:"language,omitempty"`
	Tokens   int    `json:"tokens,omitempty"`
}
