package store

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// SourceInfo carries what the caller knows about the input's identity.
// The strongest available value becomes the content key.
type SourceInfo struct {
	ID       string // explicit stable identifier (e.g., video/track id)
	Filename string // original filename as uploaded
	Path     string // local source path, if any
	URL      string // remote source, if any
}

// ContentKey derives the stable key for one source. Preference order:
// explicit ID, embedded media title tag, original filename, raw path/URL.
// Same key, same process directory, which is what enables resume.
func (s *Store) ContentKey(info SourceInfo) string {
	if info.ID != "" {
		return info.ID
	}
	if info.Path != "" {
		if title := s.probeTitle(info.Path); title != "" {
			return title
		}
	}
	if info.Filename != "" {
		return info.Filename
	}
	if info.Path != "" {
		return info.Path
	}
	return info.URL
}

// probeTitle reads embedded metadata (ID3, MP4 atoms, vorbis comments)
// and returns the title tag when present.
func (s *Store) probeTitle(path string) string {
	f, err := s.fs.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return ""
	}

	title := strings.TrimSpace(meta.Title())
	if title != "" {
		log.Printf("store: using embedded title %q as content key for %s", title, filepath.Base(path))
	}
	return title
}

// ProcessDir resolves and creates the working directory for a content key.
// Deterministic for identical keys.
func (s *Store) ProcessDir(key string) (string, error) {
	sum := sha256.Sum256([]byte(key))
	dir := filepath.Join(s.baseDir, hex.EncodeToString(sum[:])[:16])
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
