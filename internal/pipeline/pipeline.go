// Package pipeline orchestrates one media-processing invocation: load,
// cache check, segmentation, size-constrained export, batched
// transcription, aggregation, conditional post-processing and persist.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/voxlab/scribeflow/internal/audio"
	"github.com/voxlab/scribeflow/internal/language"
	"github.com/voxlab/scribeflow/internal/llm"
	"github.com/voxlab/scribeflow/internal/segment"
	"github.com/voxlab/scribeflow/internal/store"
	"github.com/voxlab/scribeflow/internal/transcriber"
)

// ProgressFunc observes stage transitions. Optional.
type ProgressFunc func(stage Stage, message string)

// Config tunes one pipeline instance.
type Config struct {
	// BatchSize is the width of one concurrent transcription batch.
	BatchSize int
	Plan      segment.PlanConfig
	Split     segment.SplitConfig
}

// DefaultConfig mirrors the service defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize: 3,
		Plan:      segment.DefaultPlanConfig(),
		Split:     segment.DefaultSplitConfig(),
	}
}

// Pipeline wires the collaborators for Process calls. Safe for reuse
// across invocations; each invocation owns its process directory.
type Pipeline struct {
	cfg        Config
	loader     *audio.Loader
	store      *store.Store
	splitter   *segment.Splitter
	transcribe transcriber.Adapter
	llm        llm.Adapter
	progress   ProgressFunc
}

// New assembles a Pipeline.
func New(cfg Config, loader *audio.Loader, st *store.Store, ta transcriber.Adapter, la llm.Adapter) *Pipeline {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	return &Pipeline{
		cfg:        cfg,
		loader:     loader,
		store:      st,
		splitter:   segment.NewSplitter(st.Fs(), cfg.Split),
		transcribe: ta,
		llm:        la,
	}
}

// OnProgress registers a stage observer.
func (p *Pipeline) OnProgress(fn ProgressFunc) {
	p.progress = fn
}

func (p *Pipeline) emit(stage Stage, msg string) {
	if p.progress != nil {
		p.progress(stage, msg)
	}
}

// Process runs the whole pipeline for one request. Any failure is
// returned as a ProcessingError carrying the stage reached; no partial
// transcript is ever produced.
func (p *Pipeline) Process(ctx context.Context, req Request) (*ProcessingResult, error) {
	p.emit(StageLoad, "loading source audio")
	buf, err := p.load(ctx, req)
	if err != nil {
		return nil, &ProcessingError{Stage: StageLoad, Err: err}
	}

	key := p.store.ContentKey(p.sourceInfo(req))
	dir, err := p.store.ProcessDir(key)
	if err != nil {
		return nil, &ProcessingError{Stage: StageLoad, Err: err}
	}

	// Whole-file resume: a persisted transcript short-circuits everything.
	transcriptPath := store.TranscriptPath(dir)
	if p.store.Exists(transcriptPath) {
		var cached ProcessingResult
		if err := p.store.ReadJSON(transcriptPath, &cached); err == nil {
			log.Printf("pipeline: cache hit for %q in %s", key, dir)
			return &cached, nil
		}
		log.Printf("pipeline: unreadable cached transcript in %s, reprocessing", dir)
	}

	p.emit(StageSegment, "planning segments")
	descs := segment.PlanSegments(buf, req.Chapters, p.cfg.Plan)
	work := segment.ApplySkip(descs, req.SkipSegments)

	// The single-segment path exports directly, without size iteration.
	singleBypass := len(descs) == 1 &&
		buf.Duration() <= p.cfg.Plan.SingleSegmentMax

	unitsByDesc := make(map[int][]segment.Unit, len(work))
	var units []segment.Unit
	for _, d := range work {
		var du []segment.Unit
		if singleBypass {
			u, err := p.splitter.ExportDirect(ctx, buf, d, dir)
			if err != nil {
				return nil, &ProcessingError{Stage: StageSegment, Err: err}
			}
			du = []segment.Unit{u}
		} else {
			var err error
			du, err = p.splitter.Export(ctx, buf, d, dir)
			if err != nil {
				return nil, &ProcessingError{Stage: StageSegment, Err: err}
			}
		}

		for _, u := range du {
			p.writeUnitInfo(dir, u)
		}
		unitsByDesc[d.Index] = du
		units = append(units, du...)
	}

	p.emit(StageTranscribe, fmt.Sprintf("transcribing %d chunks in batches of %d", len(units), p.cfg.BatchSize))
	sched := &scheduler{adapter: p.transcribe, fs: p.store.Fs(), batchSize: p.cfg.BatchSize}
	results, err := sched.run(ctx, units)
	if err != nil {
		return nil, &ProcessingError{Stage: StageTranscribe, Err: err}
	}

	resultByUnit := make(map[string]*transcriber.Result, len(units))
	for i, u := range units {
		resultByUnit[u.Name] = results[i]
	}

	skipped := make(map[int]bool, len(req.SkipSegments))
	for _, idx := range req.SkipSegments {
		skipped[idx] = true
	}

	var transcripts []SegmentTranscript
	var detections []string
	var usage []ModelUsage
	for _, d := range descs {
		if skipped[d.Index] {
			t, lang, err := p.loadResumedSegment(dir, d)
			if err != nil {
				return nil, &ProcessingError{Stage: StageTranscribe, Err: err}
			}
			transcripts = append(transcripts, t)
			if lang != "" {
				detections = append(detections, lang)
			}
			continue
		}

		t, segUsage, segDetections := p.assembleSegment(dir, d, unitsByDesc[d.Index], resultByUnit)
		transcripts = append(transcripts, t)
		detections = append(detections, segDetections...)
		usage = append(usage, segUsage...)
	}

	agg := aggregate(transcripts, detections, usage)

	p.emit(StagePostProcess, "post-processing")
	if err := p.postProcess(ctx, &agg, req); err != nil {
		return nil, &ProcessingError{Stage: StagePostProcess, Err: err}
	}

	result := &ProcessingResult{
		Transcription: agg,
		DurationMs:    buf.DurationMs(),
		ProcessDir:    dir,
		Parameters: Parameters{
			TargetLanguage: req.TargetLanguage,
			Template:       req.Template,
			BatchSize:      p.cfg.BatchSize,
			SkipSegments:   req.SkipSegments,
		},
		CreatedAt: time.Now().UTC(),
	}

	p.emit(StagePersist, "persisting transcript")
	if err := p.store.WriteJSON(transcriptPath, result); err != nil {
		return nil, &ProcessingError{Stage: StagePersist, Err: err}
	}

	log.Printf("pipeline: processed %q: %d segments, %d usage records, language %q",
		key, len(transcripts), len(agg.Usage), agg.DetectedLanguage)
	return result, nil
}

func (p *Pipeline) load(ctx context.Context, req Request) (*audio.Buffer, error) {
	switch {
	case len(req.Bytes) > 0:
		return p.loader.FromBytes(req.Bytes)
	case req.Path != "":
		return p.loader.FromPath(ctx, req.Path)
	case req.URL != "":
		return p.loader.FromURL(ctx, req.URL)
	default:
		return nil, fmt.Errorf("%w: no source supplied", audio.ErrSourceUnavailable)
	}
}

func (p *Pipeline) sourceInfo(req Request) store.SourceInfo {
	info := req.Info
	if info.Path == "" {
		info.Path = req.Path
	}
	if info.URL == "" {
		info.URL = req.URL
	}
	return info
}

// assembleSegment joins a descriptor's unit results in part order and
// refreshes its info sidecar so an aborted later stage can resume.
func (p *Pipeline) assembleSegment(dir string, d segment.Descriptor, du []segment.Unit, results map[string]*transcriber.Result) (SegmentTranscript, []ModelUsage, []string) {
	var texts []string
	var segDetections []string
	var segUsage []ModelUsage
	totalTokens := 0
	var totalSize int64
	attempts := 0

	for _, u := range du {
		r := results[u.Name]
		if r == nil {
			continue
		}
		if text := strings.TrimSpace(r.Text); text != "" {
			texts = append(texts, text)
		}
		if r.Language != "" {
			segDetections = append(segDetections, r.Language)
		}
		segUsage = append(segUsage, ModelUsage{
			Model:      r.Model,
			Tokens:     r.Tokens,
			DurationMs: r.Elapsed.Milliseconds(),
			Timestamp:  time.Now().UTC(),
		})
		totalTokens += r.Tokens
		totalSize += u.Size
		attempts += u.Attempts
	}

	t := SegmentTranscript{
		SegmentID: d.Index,
		Name:      d.Name,
		Text:      strings.Join(texts, " "),
		Language:  language.Majority(segDetections),
	}

	info := store.SegmentInfo{
		Index:    d.Index,
		Name:     d.Name,
		StartMs:  d.StartMs,
		EndMs:    d.EndMs,
		Title:    d.Title,
		Size:     totalSize,
		Attempts: attempts,
		Text:     t.Text,
		Language: t.Language,
		Tokens:   totalTokens,
	}
	if err := p.store.WriteJSON(store.InfoPath(dir, d.Name), info); err != nil {
		log.Printf("pipeline: write segment info %s: %v", d.Name, err)
	}

	return t, segUsage, segDetections
}

// loadResumedSegment reads a skipped segment's stored transcript from a
// previous run. Missing artifacts fail the invocation: skip indices
// promise that the work already exists.
func (p *Pipeline) loadResumedSegment(dir string, d segment.Descriptor) (SegmentTranscript, string, error) {
	var info store.SegmentInfo
	if err := p.store.ReadJSON(store.InfoPath(dir, d.Name), &info); err != nil {
		return SegmentTranscript{}, "", fmt.Errorf("resume segment %d: %w", d.Index, err)
	}

	return SegmentTranscript{
		SegmentID: d.Index,
		Name:      d.Name,
		Text:      info.Text,
		Language:  info.Language,
	}, info.Language, nil
}

// writeUnitInfo records export-time audit data for one chunk. The
// sidecar is refreshed with text after transcription completes.
func (p *Pipeline) writeUnitInfo(dir string, u segment.Unit) {
	info := store.SegmentInfo{
		Index:    u.Segment,
		Name:     u.Name,
		StartMs:  u.StartMs,
		EndMs:    u.EndMs,
		Title:    u.Title,
		Size:     u.Size,
		Attempts: u.Attempts,
	}
	if err := p.store.WriteJSON(store.InfoPath(dir, u.Name), info); err != nil {
		log.Printf("pipeline: write unit info %s: %v", u.Name, err)
	}
}
