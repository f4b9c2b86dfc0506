package convert

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ytget/audio-converter/internal/model"
	"github.com/ytget/audio-converter/internal/session"
)

type transcodeCall struct {
	input     string
	output    string
	container string
}

// fakeCodec fails for the configured base names and records every call
type fakeCodec struct {
	mu    sync.Mutex
	fail  map[string]bool
	calls []transcodeCall

	// when set, Transcode blocks until release is closed or ctx is done
	release chan struct{}
	started chan string
}

func (c *fakeCodec) Transcode(ctx context.Context, input, output, container string) error {
	c.mu.Lock()
	c.calls = append(c.calls, transcodeCall{input, output, container})
	c.mu.Unlock()

	if c.started != nil {
		c.started <- filepath.Base(input)
	}
	if c.release != nil {
		select {
		case <-c.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if c.fail[filepath.Base(input)] {
		return errors.New("invalid data found when processing input")
	}
	return nil
}

func (c *fakeCodec) Calls() []transcodeCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]transcodeCall(nil), c.calls...)
}

func newSnapshot(t *testing.T, format model.Format, names ...string) session.Snapshot {
	t.Helper()
	inputDir := t.TempDir()
	snap := session.Snapshot{Format: format, OutputDir: t.TempDir()}
	for _, name := range names {
		snap.Files = append(snap.Files, model.NewAudioFileRef(filepath.Join(inputDir, name)))
	}
	return snap
}

func TestRunBatch_ContinuesAfterFailure(t *testing.T) {
	codec := &fakeCodec{fail: map[string]bool{"b.mp3": true}}
	worker := NewWorker(codec)
	snap := newSnapshot(t, model.FormatWAV, "a.mp3", "b.mp3", "c.flac")

	var outcomes []model.Outcome
	for o := range worker.RunBatch(context.Background(), snap) {
		outcomes = append(outcomes, o)
	}

	if len(outcomes) != 3 {
		t.Fatalf("Expected 3 outcomes, got %d", len(outcomes))
	}

	expected := []struct {
		name   string
		ok     bool
		output string
	}{
		{"a.mp3", true, filepath.Join(snap.OutputDir, "a.wav")},
		{"b.mp3", false, ""},
		{"c.flac", true, filepath.Join(snap.OutputDir, "c.wav")},
	}
	for i, exp := range expected {
		o := outcomes[i]
		if o.File.Name != exp.name {
			t.Errorf("Outcome %d: expected %s, got %s", i, exp.name, o.File.Name)
		}
		if o.OK() != exp.ok {
			t.Errorf("Outcome %d: expected ok=%v, got %v (%v)", i, exp.ok, o.OK(), o.Err)
		}
		if o.OutputPath != exp.output {
			t.Errorf("Outcome %d: expected output %q, got %q", i, exp.output, o.OutputPath)
		}
	}
	if !strings.Contains(outcomes[1].Message(), "b.mp3") {
		t.Errorf("Expected failure message to name the file, got %q", outcomes[1].Message())
	}
}

func TestRunBatch_SharedStemReportsReplacedOutput(t *testing.T) {
	codec := &fakeCodec{fail: map[string]bool{"x.ogg": true}}
	worker := NewWorker(codec)
	snap := newSnapshot(t, model.FormatMP3, "x.wav", "x.ogg", "x.flac", "y.wav")

	var outcomes []model.Outcome
	for o := range worker.RunBatch(context.Background(), snap) {
		outcomes = append(outcomes, o)
	}
	if len(outcomes) != 4 {
		t.Fatalf("Expected 4 outcomes, got %d", len(outcomes))
	}

	want := filepath.Join(snap.OutputDir, "x.mp3")
	if outcomes[0].OutputPath != want || outcomes[2].OutputPath != want {
		t.Errorf("Expected both x files to write %s, got %s and %s", want, outcomes[0].OutputPath, outcomes[2].OutputPath)
	}
	if outcomes[0].Replaced != "" {
		t.Errorf("First writer replaced nothing, got %q", outcomes[0].Replaced)
	}
	// failed files never wrote an output
	if outcomes[1].Replaced != "" {
		t.Errorf("Failed file must not report a replacement, got %q", outcomes[1].Replaced)
	}
	if outcomes[2].Replaced != "x.wav" {
		t.Errorf("Expected x.flac to report replacing x.wav, got %q", outcomes[2].Replaced)
	}
	if outcomes[3].Replaced != "" {
		t.Errorf("Expected y.wav to replace nothing, got %q", outcomes[3].Replaced)
	}
}

func TestRunBatch_ContainerMapping(t *testing.T) {
	tests := []struct {
		format    model.Format
		container string
		ext       string
	}{
		{model.FormatMP3, "mp3", ".mp3"},
		{model.FormatWAV, "wav", ".wav"},
		{model.FormatFLAC, "flac", ".flac"},
		{model.FormatOGG, "ogg", ".ogg"},
		{model.FormatM4A, "mp4", ".m4a"},
	}

	for _, test := range tests {
		codec := &fakeCodec{}
		worker := NewWorker(codec)
		snap := newSnapshot(t, test.format, "song.wav")

		for range worker.RunBatch(context.Background(), snap) {
		}

		calls := codec.Calls()
		if len(calls) != 1 {
			t.Fatalf("%s: expected 1 call, got %d", test.format, len(calls))
		}
		if calls[0].container != test.container {
			t.Errorf("%s: expected container %s, got %s", test.format, test.container, calls[0].container)
		}
		if want := filepath.Join(snap.OutputDir, "song"+test.ext); calls[0].output != want {
			t.Errorf("%s: expected output %s, got %s", test.format, want, calls[0].output)
		}
	}
}

func TestRunBatch_IsLazy(t *testing.T) {
	codec := &fakeCodec{}
	worker := NewWorker(codec)
	snap := newSnapshot(t, model.FormatMP3, "a.wav", "b.wav", "c.wav")

	seq := worker.RunBatch(context.Background(), snap)
	if n := len(codec.Calls()); n != 0 {
		t.Fatalf("Expected no work before iteration, got %d calls", n)
	}

	for range seq {
		break
	}
	if n := len(codec.Calls()); n != 1 {
		t.Errorf("Expected breaking after the first outcome to stop the batch, got %d calls", n)
	}
}

func TestRunBatch_CancelledContext(t *testing.T) {
	codec := &fakeCodec{}
	worker := NewWorker(codec)
	snap := newSnapshot(t, model.FormatMP3, "a.wav", "b.wav")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for o := range worker.RunBatch(ctx, snap) {
		t.Errorf("Expected no outcomes, got %+v", o)
	}
	if n := len(codec.Calls()); n != 0 {
		t.Errorf("Expected no codec calls, got %d", n)
	}
}

func TestStart_Summary(t *testing.T) {
	codec := &fakeCodec{fail: map[string]bool{"b.mp3": true}}
	worker := NewWorker(codec)
	snap := newSnapshot(t, model.FormatOGG, "a.mp3", "b.mp3")

	batch, err := worker.Start(context.Background(), snap)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !strings.HasPrefix(batch.ID, "batch-") {
		t.Errorf("Expected batch ID to start with batch-, got %s", batch.ID)
	}

	var names []string
	for o := range batch.Outcomes {
		names = append(names, o.File.Name)
	}
	if strings.Join(names, ",") != "a.mp3,b.mp3" {
		t.Errorf("Expected outcomes in list order, got %v", names)
	}

	summary := batch.Wait()
	if summary.BatchID != batch.ID {
		t.Errorf("Expected summary for %s, got %s", batch.ID, summary.BatchID)
	}
	if summary.Converted != 1 || summary.Failed != 1 {
		t.Errorf("Expected 1 converted and 1 failed, got %d and %d", summary.Converted, summary.Failed)
	}
	if summary.Cancelled {
		t.Error("Expected batch not to be cancelled")
	}
	if summary.Format != model.FormatOGG || summary.OutputDir != snap.OutputDir {
		t.Errorf("Unexpected summary target: %s %s", summary.Format, summary.OutputDir)
	}
	if worker.State() != model.BatchStateIdle {
		t.Errorf("Expected worker to be idle after the batch, got %s", worker.State())
	}
}

func TestStart_WaitWithoutDraining(t *testing.T) {
	worker := NewWorker(&fakeCodec{})
	snap := newSnapshot(t, model.FormatFLAC, "a.wav", "b.wav", "c.wav")

	batch, err := worker.Start(context.Background(), snap)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	select {
	case <-batch.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Batch did not finish")
	}
	if summary := batch.Wait(); summary.Converted != 3 {
		t.Errorf("Expected 3 converted, got %d", summary.Converted)
	}
}

func TestStart_InvalidSnapshot(t *testing.T) {
	codec := &fakeCodec{}
	worker := NewWorker(codec)

	_, err := worker.Start(context.Background(), session.Snapshot{Format: model.FormatMP3, OutputDir: t.TempDir()})
	if !errors.Is(err, session.ErrNoFiles) {
		t.Errorf("Expected ErrNoFiles, got %v", err)
	}

	snap := newSnapshot(t, model.FormatMP3, "a.wav")
	snap.OutputDir = ""
	_, err = worker.Start(context.Background(), snap)
	if !errors.Is(err, session.ErrNoOutputDirectory) {
		t.Errorf("Expected ErrNoOutputDirectory, got %v", err)
	}

	if worker.State() != model.BatchStateIdle {
		t.Errorf("Expected worker to stay idle, got %s", worker.State())
	}
	if n := len(codec.Calls()); n != 0 {
		t.Errorf("Expected no codec calls, got %d", n)
	}
}

func TestStart_BatchAlreadyRunning(t *testing.T) {
	codec := &fakeCodec{release: make(chan struct{}), started: make(chan string, 4)}
	worker := NewWorker(codec)

	batch, err := worker.Start(context.Background(), newSnapshot(t, model.FormatMP3, "a.wav"))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	<-codec.started

	if worker.State() != model.BatchStateRunning {
		t.Errorf("Expected running state, got %s", worker.State())
	}
	_, err = worker.Start(context.Background(), newSnapshot(t, model.FormatMP3, "b.wav"))
	if !errors.Is(err, ErrBatchRunning) {
		t.Errorf("Expected ErrBatchRunning, got %v", err)
	}

	close(codec.release)
	batch.Wait()

	second, err := worker.Start(context.Background(), newSnapshot(t, model.FormatMP3, "b.wav"))
	if err != nil {
		t.Fatalf("Expected a new batch after the first finished, got %v", err)
	}
	<-codec.started
	if summary := second.Wait(); summary.Converted != 1 {
		t.Errorf("Expected second batch to convert 1 file, got %d", summary.Converted)
	}
}

func TestBatch_Cancel(t *testing.T) {
	codec := &fakeCodec{release: make(chan struct{}), started: make(chan string, 4)}
	worker := NewWorker(codec)
	snap := newSnapshot(t, model.FormatMP3, "a.wav", "b.wav", "c.wav")

	batch, err := worker.Start(context.Background(), snap)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if name := <-codec.started; name != "a.wav" {
		t.Fatalf("Expected a.wav first, got %s", name)
	}

	batch.Cancel()
	summary := batch.Wait()

	if !summary.Cancelled {
		t.Error("Expected summary to be marked cancelled")
	}
	if summary.Total() != 0 {
		t.Errorf("Expected the interrupted file to produce no outcome, got %d", summary.Total())
	}
	if n := len(codec.Calls()); n != 1 {
		t.Errorf("Expected remaining files to be skipped, got %d calls", n)
	}
	if worker.State() != model.BatchStateIdle {
		t.Errorf("Expected worker to be idle after cancel, got %s", worker.State())
	}
}

func TestGenerateBatchID(t *testing.T) {
	id1 := generateBatchID()
	id2 := generateBatchID()
	if id1 == id2 {
		t.Error("Expected unique batch IDs")
	}
	if !strings.HasPrefix(id1, "batch-") {
		t.Errorf("Expected batch- prefix, got %s", id1)
	}
}
