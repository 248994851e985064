package daemon

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/voxlab/scribeflow/internal/audio"
	"github.com/voxlab/scribeflow/internal/bus"
	"github.com/voxlab/scribeflow/internal/config"
	"github.com/voxlab/scribeflow/internal/llm"
	"github.com/voxlab/scribeflow/internal/notify"
	"github.com/voxlab/scribeflow/internal/pipeline"
	"github.com/voxlab/scribeflow/internal/store"
	"github.com/voxlab/scribeflow/internal/transcriber"
)

// mediaExts are the inbox file types handed to the pipeline. Anything
// else dropped into the inbox is ignored.
var mediaExts = map[string]bool{
	".wav": true, ".mp3": true, ".m4a": true, ".mp4": true,
	".flac": true, ".ogg": true, ".webm": true, ".aac": true,
}

const jobQueueSize = 64

// Daemon watches an inbox directory and runs each new media file
// through the pipeline, one job at a time.
type Daemon struct {
	mu      sync.RWMutex
	current string // file being processed, empty when idle
	done    int    // jobs completed since start
	failed  int

	manager *config.Manager
	jobs    chan string

	ctx    context.Context
	cancel context.CancelFunc
}

func New(manager *config.Manager) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		manager: manager,
		jobs:    make(chan string, jobQueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (d *Daemon) status() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	state := "idle"
	if d.current != "" {
		state = fmt.Sprintf("processing %s", filepath.Base(d.current))
	}
	return fmt.Sprintf("%s queued=%d done=%d failed=%d", state, len(d.jobs), d.done, d.failed)
}

func (d *Daemon) Run() error {
	if err := bus.CheckExistingDaemon(); err != nil {
		return err
	}

	cfg := d.manager.GetConfig()
	inbox := cfg.Watch.InboxDir
	if inbox == "" {
		return fmt.Errorf("watch.inbox_dir not configured")
	}
	if err := os.MkdirAll(inbox, 0o755); err != nil {
		return fmt.Errorf("failed to create inbox directory: %w", err)
	}

	ln, err := bus.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	if err := bus.CreatePidFile(); err != nil {
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer bus.RemovePidFile()

	if err := d.manager.StartWatching(d.ctx); err != nil {
		log.Printf("Daemon: config watch unavailable: %v", err)
	}
	defer d.manager.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully", sig)
		d.cancel()
	}()

	// Close the listener when context is done
	go func() {
		<-d.ctx.Done()
		ln.Close()
	}()

	if err := d.watchInbox(inbox); err != nil {
		return err
	}
	go d.workLoop()

	// Files already sitting in the inbox are picked up on start.
	d.enqueueExisting(inbox)

	log.Printf("Daemon started, watching %s", inbox)

	for {
		c, err := ln.Accept()
		if err != nil {
			if d.ctx.Err() != nil {
				log.Printf("Shutdown requested")
				return nil
			}
			log.Printf("Accept error: %v", err)
			return fmt.Errorf("accept failed: %w", err)
		}
		go d.handle(c)
	}
}

func (d *Daemon) handle(c net.Conn) {
	defer c.Close()

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil {
		log.Printf("Client read error: %v", err)
		fmt.Fprintf(c, "ERR read_error: %v\n", err)
		return
	}
	if len(line) == 0 {
		fmt.Fprint(c, "ERR empty\n")
		return
	}
	cmd := line[0]

	switch cmd {
	case 's':
		fmt.Fprintf(c, "STATUS %s\n", d.status())
	case 'v':
		fmt.Fprintf(c, "STATUS proto=%s\n", bus.ProtoVer)
	case 'q':
		fmt.Fprint(c, "OK quitting\n")
		d.cancel()
	default:
		log.Printf("Unknown command: %c", cmd)
		fmt.Fprintf(c, "ERR unknown=%q\n", cmd)
	}
}

func (d *Daemon) watchInbox(inbox string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(inbox); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Create == fsnotify.Create {
					d.enqueue(event.Name)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Inbox watcher error: %v", err)

			case <-d.ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (d *Daemon) enqueueExisting(inbox string) {
	entries, err := os.ReadDir(inbox)
	if err != nil {
		log.Printf("Daemon: failed to scan inbox: %v", err)
		return
	}
	for _, e := range entries {
		if !e.IsDir() {
			d.enqueue(filepath.Join(inbox, e.Name()))
		}
	}
}

func (d *Daemon) enqueue(path string) {
	if !mediaExts[strings.ToLower(filepath.Ext(path))] {
		return
	}
	select {
	case d.jobs <- path:
		log.Printf("Daemon: queued %s", path)
	default:
		log.Printf("Daemon: queue full, dropping %s", path)
	}
}

func (d *Daemon) workLoop() {
	for {
		select {
		case path := <-d.jobs:
			d.process(path)
		case <-d.ctx.Done():
			return
		}
	}
}

func (d *Daemon) process(path string) {
	d.mu.Lock()
	d.current = path
	d.mu.Unlock()

	cfg := d.manager.GetConfig()
	notifier := notify.New(cfg.Notifications.Enabled, cfg.Notifications.Type)

	notifier.JobStarted(path)
	res, err := d.runJob(cfg, path)

	d.mu.Lock()
	d.current = ""
	if err != nil {
		d.failed++
	} else {
		d.done++
	}
	d.mu.Unlock()

	if err != nil {
		log.Printf("Daemon: job %s failed: %v", path, err)
		notifier.JobFailed(path, err)
		return
	}

	log.Printf("Daemon: job %s done: %d segments, language %q",
		path, len(res.Transcription.Segments), res.Transcription.DetectedLanguage)
	notifier.JobCompleted(path, res.Transcription.DetectedLanguage)
}

// runJob assembles a pipeline from the live config and processes one
// file. Rebuilding per job is what makes config hot-reload effective.
func (d *Daemon) runJob(cfg *config.Config, path string) (*pipeline.ProcessingResult, error) {
	if err := waitSettled(d.ctx, path); err != nil {
		return nil, err
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}

	ta, err := transcriber.NewAdapter(cfg.ToTranscriberConfig())
	if err != nil {
		return nil, err
	}

	var la llm.Adapter
	if cfg.NeedsLLM() {
		la, err = llm.NewAdapter(cfg.ToLLMConfig())
		if err != nil {
			return nil, err
		}
	}

	st := store.New(afero.NewOsFs(), dataDir)
	p := pipeline.New(cfg.ToPipelineConfig(), audio.NewLoader(cfg.TmpDir()), st, ta, la)

	return p.Process(d.ctx, pipeline.Request{
		Path:           path,
		TargetLanguage: cfg.Output.TargetLanguage,
		Template:       cfg.Output.Template,
	})
}

// waitSettled polls until the file size stops changing, so a job never
// starts on a half-copied file.
func waitSettled(ctx context.Context, path string) error {
	var last int64 = -1
	for {
		fi, err := os.Stat(path)
		if err != nil {
			return err
		}
		if fi.Size() == last {
			return nil
		}
		last = fi.Size()

		select {
		case <-time.After(500 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
