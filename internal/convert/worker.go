package convert

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/audio-converter/internal/model"
	"github.com/ytget/audio-converter/internal/session"
)

// ErrBatchRunning is returned by Start while another batch is in progress
var ErrBatchRunning = errors.New("a conversion batch is already running")

// Worker converts session snapshots one file at a time
type Worker struct {
	codec Codec

	mu    sync.RWMutex
	state model.BatchState
}

// NewWorker creates a new conversion worker
func NewWorker(codec Codec) *Worker {
	return &Worker{
		codec: codec,
		state: model.BatchStateIdle,
	}
}

// State returns whether a batch is running
func (w *Worker) State() model.BatchState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// RunBatch converts the snapshot files in order, yielding one outcome per
// attempted file. Iteration is lazy: nothing runs until the sequence is
// ranged over, and breaking out stops the batch. Cancellation of ctx is
// honoured between files; a file interrupted by cancellation yields nothing.
// Inputs sharing a stem write the same output path; the later file wins and
// its outcome names the file it replaced.
func (w *Worker) RunBatch(ctx context.Context, snap session.Snapshot) iter.Seq[model.Outcome] {
	return func(yield func(model.Outcome) bool) {
		container := snap.Format.Container()
		written := make(map[string]string) // output path -> input name
		for _, ref := range snap.Files {
			if ctx.Err() != nil {
				return
			}

			outputPath := snap.OutputPath(ref)
			err := w.codec.Transcode(ctx, ref.Path, outputPath, container)
			if err != nil && ctx.Err() != nil {
				return
			}

			var outcome model.Outcome
			if err != nil {
				slog.Warn("conversion failed", "file", ref.Path, "error", err)
				outcome = model.Failure(ref, err)
			} else {
				slog.Debug("converted", "file", ref.Path, "output", outputPath)
				outcome = model.Success(ref, outputPath)
				if prev, ok := written[outputPath]; ok {
					slog.Warn("output replaced", "file", ref.Path, "output", outputPath, "replaced", prev)
					outcome.Replaced = prev
				}
				written[outputPath] = ref.Name
			}
			if !yield(outcome) {
				return
			}
		}
	}
}

// Batch is a conversion batch running in the background
type Batch struct {
	ID       string
	Outcomes <-chan model.Outcome

	cancel  context.CancelFunc
	done    chan struct{}
	summary model.Summary
}

// Cancel stops the batch after the file currently being converted
func (b *Batch) Cancel() {
	b.cancel()
}

// Done is closed once the batch has finished
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the batch finishes and returns its summary
func (b *Batch) Wait() model.Summary {
	<-b.done
	return b.summary
}

// Start validates the snapshot and runs it in a background goroutine. The
// outcomes channel is buffered for the whole batch, so callers that only
// need the summary may skip draining it.
func (w *Worker) Start(ctx context.Context, snap session.Snapshot) (*Batch, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.state.IsActive() {
		w.mu.Unlock()
		return nil, ErrBatchRunning
	}
	w.state = model.BatchStateRunning
	w.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	outcomes := make(chan model.Outcome, len(snap.Files))
	batch := &Batch{
		ID:       generateBatchID(),
		Outcomes: outcomes,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	slog.Info("batch started", "batch", batch.ID, "files", len(snap.Files),
		"format", snap.Format, "output_dir", snap.OutputDir)

	go w.run(ctx, snap, batch, outcomes)
	return batch, nil
}

func (w *Worker) run(ctx context.Context, snap session.Snapshot, batch *Batch, outcomes chan<- model.Outcome) {
	defer batch.cancel()

	summary := model.Summary{
		BatchID:   batch.ID,
		Format:    snap.Format,
		OutputDir: snap.OutputDir,
		StartedAt: time.Now(),
	}
	for outcome := range w.RunBatch(ctx, snap) {
		summary.Add(outcome)
		outcomes <- outcome
	}
	summary.Cancelled = ctx.Err() != nil && summary.Total() < len(snap.Files)
	summary.FinishedAt = time.Now()

	batch.summary = summary
	close(outcomes)

	w.mu.Lock()
	w.state = model.BatchStateIdle
	w.mu.Unlock()

	slog.Info("batch finished", "batch", batch.ID, "converted", summary.Converted,
		"failed", summary.Failed, "cancelled", summary.Cancelled,
		"duration", summary.Duration())
	close(batch.done)
}

// generateBatchID generates a unique batch ID
func generateBatchID() string {
	return "batch-" + uuid.Must(uuid.NewV7()).String()
}
