package pipeline

import (
	"context"
	"log"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/voxlab/scribeflow/internal/segment"
	"github.com/voxlab/scribeflow/internal/transcriber"
)

// scheduler turns an ordered unit list into ordered results, bounding
// concurrent external calls. Units are grouped into sequential batches;
// within one batch all units run concurrently and the scheduler waits
// for the whole batch before starting the next.
type scheduler struct {
	adapter   transcriber.Adapter
	fs        afero.Fs
	batchSize int
}

// run dispatches all units and returns one result per unit, written
// into an index-keyed slot slice so final ordering never depends on
// completion order. The first unit failure cancels its batch and aborts
// the run; completed results from the failing batch are discarded with it.
func (s *scheduler) run(ctx context.Context, units []segment.Unit) ([]*transcriber.Result, error) {
	results := make([]*transcriber.Result, len(units))

	width := s.batchSize
	if width <= 0 {
		width = 3
	}

	for start := 0; start < len(units); start += width {
		end := start + width
		if end > len(units) {
			end = len(units)
		}
		batch := units[start:end]

		log.Printf("pipeline: dispatching batch of %d units (%d/%d done)",
			len(batch), start, len(units))

		if err := s.runBatch(ctx, batch, results[start:end], start); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (s *scheduler) runBatch(ctx context.Context, batch []segment.Unit, slots []*transcriber.Result, base int) error {
	batchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, len(batch))

	for i, unit := range batch {
		wg.Add(1)
		go func(slot int, u segment.Unit) {
			defer wg.Done()

			res, err := s.transcribeUnit(batchCtx, u)
			if err != nil {
				errCh <- &UnitError{Unit: base + slot, Name: u.Name, Err: err}
				cancel() // fail fast: abort the rest of the batch
				return
			}
			slots[slot] = res
		}(i, unit)
	}

	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		// no partial success: drop whatever completed alongside the failure
		for i := range slots {
			slots[i] = nil
		}
		return err
	}
	return nil
}

func (s *scheduler) transcribeUnit(ctx context.Context, u segment.Unit) (*transcriber.Result, error) {
	f, err := s.fs.Open(u.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return s.adapter.Transcribe(ctx, f, filepath.Base(u.Path))
}
