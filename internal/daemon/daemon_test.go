package daemon

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testDaemon() *Daemon {
	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		jobs:   make(chan string, 4),
		ctx:    ctx,
		cancel: cancel,
	}
}

func TestEnqueueFiltersNonMedia(t *testing.T) {
	d := testDaemon()
	defer d.cancel()

	d.enqueue("/inbox/episode.mp3")
	d.enqueue("/inbox/notes.txt")
	d.enqueue("/inbox/.episode.mp3.part")
	d.enqueue("/inbox/INTERVIEW.WAV")

	if got := len(d.jobs); got != 2 {
		t.Fatalf("expected 2 queued jobs, got %d", got)
	}
	if first := <-d.jobs; first != "/inbox/episode.mp3" {
		t.Errorf("first job = %q", first)
	}
	if second := <-d.jobs; second != "/inbox/INTERVIEW.WAV" {
		t.Errorf("second job = %q", second)
	}
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	d := testDaemon()
	defer d.cancel()

	for i := 0; i < 10; i++ {
		d.enqueue("/inbox/a.wav")
	}
	if got := len(d.jobs); got != cap(d.jobs) {
		t.Errorf("queue length %d, want capacity %d", got, cap(d.jobs))
	}
}

func TestStatusString(t *testing.T) {
	d := testDaemon()
	defer d.cancel()

	if s := d.status(); !strings.HasPrefix(s, "idle") {
		t.Errorf("fresh daemon status = %q, want idle", s)
	}

	d.mu.Lock()
	d.current = "/inbox/show.mp3"
	d.done = 3
	d.failed = 1
	d.mu.Unlock()

	s := d.status()
	if !strings.Contains(s, "processing show.mp3") {
		t.Errorf("status %q missing current job", s)
	}
	if !strings.Contains(s, "done=3") || !strings.Contains(s, "failed=1") {
		t.Errorf("status %q missing counters", s)
	}
}

func TestWaitSettled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stable.wav")
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := waitSettled(context.Background(), path); err != nil {
		t.Errorf("waitSettled on a stable file: %v", err)
	}

	if err := waitSettled(context.Background(), filepath.Join(dir, "missing.wav")); err == nil {
		t.Error("expected error for a missing file")
	}
}
