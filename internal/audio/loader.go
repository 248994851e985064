package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrSourceUnavailable marks a source that could not be loaded or downloaded.
var ErrSourceUnavailable = errors.New("source unavailable")

// Loader obtains a decoded Buffer from bytes, a remote URL or a local path.
// It performs no segmentation or size logic; non-WAV input is converted to
// mono 16kHz WAV by ffmpeg before decoding.
type Loader struct {
	client *http.Client
	tmpDir string
}

// NewLoader creates a Loader writing temporary downloads under tmpDir
// (os.TempDir when empty).
func NewLoader(tmpDir string) *Loader {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Loader{
		client: &http.Client{},
		tmpDir: tmpDir,
	}
}

// FromBytes decodes an in-memory WAV payload.
func (l *Loader) FromBytes(data []byte) (*Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty source buffer", ErrSourceUnavailable)
	}
	buf, err := DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return buf, nil
}

// FromPath loads a local media file, converting through ffmpeg when the
// file is not already a WAV container.
func (l *Loader) FromPath(ctx context.Context, path string) (*Buffer, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	wavPath := path
	if !strings.EqualFold(filepath.Ext(path), ".wav") {
		converted, err := l.convertToWAV(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		defer os.Remove(converted)
		wavPath = converted
	}

	f, err := os.Open(wavPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	buf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return buf, nil
}

// FromURL downloads the source into a temporary file and loads it.
func (l *Loader) FromURL(ctx context.Context, url string) (*Buffer, error) {
	tmpPath, err := l.download(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer os.Remove(tmpPath)

	return l.FromPath(ctx, tmpPath)
}

func (l *Loader) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: status %s", url, resp.Status)
	}

	ext := filepath.Ext(url)
	if ext == "" || len(ext) > 5 {
		ext = ".bin"
	}
	tmpPath := filepath.Join(l.tmpDir, "scribeflow-"+uuid.New().String()+ext)

	out, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("write download: %w", err)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close download: %w", closeErr)
	}

	log.Printf("loader: downloaded %d bytes from %s in %v", n, url, time.Since(start))
	return tmpPath, nil
}

// convertToWAV shells out to ffmpeg for container/codec conversion.
// The core never decodes compressed audio itself.
func (l *Loader) convertToWAV(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return "", fmt.Errorf("ffmpeg not found: %w", err)
	}

	out := filepath.Join(l.tmpDir, "scribeflow-"+uuid.New().String()+".wav")
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", path,
		"-ac", "1", "-ar", "16000",
		"-f", "wav",
		out,
	)

	start := time.Now()
	if output, err := cmd.CombinedOutput(); err != nil {
		os.Remove(out)
		return "", fmt.Errorf("ffmpeg convert %s: %w: %s", path, err, lastLine(output))
	}

	log.Printf("loader: converted %s to WAV in %v", filepath.Base(path), time.Since(start))
	return out, nil
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
