package exportjob

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/tanakrit-dev/thaidoc/internal/document"
	"github.com/tanakrit-dev/thaidoc/internal/render"
)

type fakeRenderer struct {
	mu        sync.Mutex
	calls     int
	failTimes int
	block     chan struct{}
}

func (f *fakeRenderer) Render(ctx context.Context, draft document.Draft) (render.Artifact, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return render.Artifact{}, ctx.Err()
		}
	}
	if call <= f.failTimes {
		return render.Artifact{}, errors.New("chromium unavailable")
	}
	return render.Artifact{
		Name:        draft.DocNumber + ".html",
		Body:        []byte("<html>" + draft.DocNumber + "</html>"),
		ContentType: "text/html",
	}, nil
}

func (f *fakeRenderer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testConfig() Config {
	return Config{
		MaxConcurrentJobs: 2,
		MaxQueueDepth:     8,
		MaxRetries:        3,
		RetryBaseDelay:    time.Millisecond,
	}
}

func testDrafts(numbers ...string) []document.Draft {
	drafts := make([]document.Draft, 0, len(numbers))
	for _, n := range numbers {
		drafts = append(drafts, document.Draft{Kind: document.Invoice, DocNumber: n})
	}
	return drafts
}

func waitTerminal(t *testing.T, q *Queue, jobID string) Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, ok := q.Get(jobID)
		if !ok {
			t.Fatalf("job %s disappeared", jobID)
		}
		if job.Status.Terminal() {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish in time", jobID)
	return Job{}
}

func TestQueueSuccess(t *testing.T) {
	storage := NewMemStorage()
	q := NewQueue(&fakeRenderer{}, storage, testConfig(), slog.Default())

	job, err := q.Enqueue(testDrafts("IV-1", "IV-2", "IV-3"))
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	done := waitTerminal(t, q, job.JobID.String())

	if done.Status != Succeeded {
		t.Fatalf("status = %s, error = %s", done.Status, done.Error)
	}
	if done.Progress != 100 {
		t.Errorf("progress = %d, want 100", done.Progress)
	}
	// three artifacts plus the manifest
	if len(done.Files) != 4 {
		t.Fatalf("files = %v", done.Files)
	}
	if storage.Len() != 4 {
		t.Errorf("stored objects = %d, want 4", storage.Len())
	}

	manifestKey := job.JobID.String() + "/manifest.json"
	raw, ok := storage.Get(manifestKey)
	if !ok {
		t.Fatalf("manifest not stored")
	}
	var manifest []manifestEntry
	if err := json.Unmarshal(raw, &manifest); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if len(manifest) != 3 || manifest[0].Name != "IV-1.html" || manifest[0].SHA256 == "" {
		t.Errorf("manifest = %+v", manifest)
	}

	body, ok := storage.Get(job.JobID.String() + "/IV-2.html")
	if !ok || hashBytes(body) != manifest[1].SHA256 {
		t.Errorf("manifest hash does not match stored artifact")
	}
}

func TestQueueRetriesThenSucceeds(t *testing.T) {
	renderer := &fakeRenderer{failTimes: 1}
	q := NewQueue(renderer, NewMemStorage(), testConfig(), slog.Default())

	job, err := q.Enqueue(testDrafts("IV-1"))
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	done := waitTerminal(t, q, job.JobID.String())
	if done.Status != Succeeded {
		t.Fatalf("status = %s, error = %s", done.Status, done.Error)
	}
	if done.RetryCount != 1 {
		t.Errorf("retryCount = %d, want 1", done.RetryCount)
	}
}

func TestQueueFailsAfterMaxRetries(t *testing.T) {
	renderer := &fakeRenderer{failTimes: 1000}
	q := NewQueue(renderer, NewMemStorage(), testConfig(), slog.Default())

	job, err := q.Enqueue(testDrafts("IV-1"))
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	done := waitTerminal(t, q, job.JobID.String())
	if done.Status != Failed {
		t.Fatalf("status = %s", done.Status)
	}
	if done.Error == "" {
		t.Errorf("failed job must carry an error message")
	}
	if got := renderer.callCount(); got != testConfig().MaxRetries {
		t.Errorf("render attempts = %d, want %d", got, testConfig().MaxRetries)
	}
}

func TestQueueCancel(t *testing.T) {
	renderer := &fakeRenderer{block: make(chan struct{})}
	q := NewQueue(renderer, NewMemStorage(), testConfig(), slog.Default())

	job, err := q.Enqueue(testDrafts("IV-1"))
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	// wait until the job is actually running before canceling
	deadline := time.Now().Add(5 * time.Second)
	for {
		got, _ := q.Get(job.JobID.String())
		if got.Status == Running {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job never started")
		}
		time.Sleep(2 * time.Millisecond)
	}

	canceled, err := q.Cancel(job.JobID.String())
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if canceled.Status != Canceled {
		t.Fatalf("status = %s", canceled.Status)
	}
	close(renderer.block)

	// the worker must not resurrect a canceled job
	time.Sleep(20 * time.Millisecond)
	got, _ := q.Get(job.JobID.String())
	if got.Status != Canceled {
		t.Errorf("status after worker exit = %s, want CANCELED", got.Status)
	}

	if _, err := q.Cancel(job.JobID.String()); err == nil {
		t.Errorf("canceling a terminal job must error")
	}
}

func TestQueueDepthLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxQueueDepth = 1
	renderer := &fakeRenderer{block: make(chan struct{})}
	q := NewQueue(renderer, NewMemStorage(), cfg, slog.Default())

	first, err := q.Enqueue(testDrafts("IV-1"))
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := q.Enqueue(testDrafts("IV-2")); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	close(renderer.block)
	waitTerminal(t, q, first.JobID.String())

	if _, err := q.Enqueue(testDrafts("IV-3")); err != nil {
		t.Fatalf("queue should accept work again: %v", err)
	}
}

func TestQueueRejectsEmptyBatch(t *testing.T) {
	q := NewQueue(&fakeRenderer{}, NewMemStorage(), testConfig(), slog.Default())
	if _, err := q.Enqueue(nil); err == nil {
		t.Fatalf("empty batch must be rejected")
	}
}
