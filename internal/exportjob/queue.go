package exportjob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tanakrit-dev/thaidoc/internal/document"
	"github.com/tanakrit-dev/thaidoc/internal/render"
)

type Status string

const (
	Queued    Status = "QUEUED"
	Running   Status = "RUNNING"
	Succeeded Status = "SUCCEEDED"
	Failed    Status = "FAILED"
	Canceled  Status = "CANCELED"
)

// Terminal reports whether the job has finished one way or another.
func (s Status) Terminal() bool {
	return s == Succeeded || s == Failed || s == Canceled
}

// Job is the externally visible state of one batch export.
type Job struct {
	JobID       uuid.UUID  `json:"jobId"`
	Status      Status     `json:"status"`
	Progress    int        `json:"progress"`
	Documents   int        `json:"documents"`
	RequestedAt time.Time  `json:"requestedAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
	RetryCount  int        `json:"retryCount"`
	Files       []string   `json:"files,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Renderer turns one draft into a storable artifact.
type Renderer interface {
	Render(ctx context.Context, draft document.Draft) (render.Artifact, error)
}

var (
	ErrNotFound  = errors.New("export job not found")
	ErrQueueFull = errors.New("export queue full")
)

type jobState struct {
	job    Job
	drafts []document.Draft
	cancel context.CancelFunc
}

// Queue runs export jobs with bounded concurrency. Each job renders its
// drafts sequentially; distinct jobs compete for worker slots.
type Queue struct {
	mu          sync.RWMutex
	jobs        map[string]*jobState
	renderer    Renderer
	storage     Storage
	cfg         Config
	logger      *slog.Logger
	workerSlots chan struct{}
}

func NewQueue(renderer Renderer, storage Storage, cfg Config, logger *slog.Logger) *Queue {
	slots := cfg.MaxConcurrentJobs
	if slots < 1 {
		slots = 1
	}
	return &Queue{
		jobs:        map[string]*jobState{},
		renderer:    renderer,
		storage:     storage,
		cfg:         cfg,
		logger:      logger,
		workerSlots: make(chan struct{}, slots),
	}
}

// Enqueue registers a batch and starts it in the background.
func (q *Queue) Enqueue(drafts []document.Draft) (Job, error) {
	if len(drafts) == 0 {
		return Job{}, errors.New("no drafts to export")
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.cfg.MaxQueueDepth > 0 && q.activeCountLocked() >= q.cfg.MaxQueueDepth {
		return Job{}, ErrQueueFull
	}

	job := Job{
		JobID:       uuid.New(),
		Status:      Queued,
		Documents:   len(drafts),
		RequestedAt: time.Now().UTC(),
	}
	jobCtx, cancel := context.WithCancel(context.Background())
	state := &jobState{
		job:    job,
		drafts: drafts,
		cancel: cancel,
	}
	q.jobs[job.JobID.String()] = state

	go q.runJob(jobCtx, state)
	return cloneJob(job), nil
}

// Get returns a snapshot of the job.
func (q *Queue) Get(jobID string) (Job, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	state, ok := q.jobs[jobID]
	if !ok {
		return Job{}, false
	}
	return cloneJob(state.job), true
}

// Cancel stops a queued or running job.
func (q *Queue) Cancel(jobID string) (Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	state, ok := q.jobs[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	if state.job.Status.Terminal() {
		return cloneJob(state.job), fmt.Errorf("job %s already %s", jobID, state.job.Status)
	}
	state.cancel()
	now := time.Now().UTC()
	state.job.Status = Canceled
	state.job.FinishedAt = &now
	state.job.Error = "canceled by user"
	return cloneJob(state.job), nil
}

func (q *Queue) runJob(ctx context.Context, state *jobState) {
	q.workerSlots <- struct{}{}
	defer func() { <-q.workerSlots }()

	start := time.Now().UTC()
	if err := q.update(state.job.JobID, func(job *Job) error {
		if job.Status.Terminal() {
			return context.Canceled
		}
		job.Status = Running
		job.StartedAt = &start
		job.Progress = 5
		return nil
	}); err != nil {
		return
	}

	attempt := 0
	for {
		attempt++
		q.setRetryCount(state.job.JobID, attempt-1)
		err := q.processJob(ctx, state)
		if err == nil {
			return
		}
		if errors.Is(err, context.Canceled) {
			return
		}
		q.logger.Warn("export attempt failed", "job", state.job.JobID, "attempt", attempt, "error", err)
		if attempt >= q.cfg.MaxRetries {
			q.failJob(state.job.JobID, err)
			return
		}
		backoff := q.cfg.RetryBaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return
		}
	}
}

type manifestEntry struct {
	Name   string `json:"name"`
	SHA256 string `json:"sha256"`
	Size   int    `json:"size"`
}

func (q *Queue) processJob(ctx context.Context, state *jobState) error {
	prefix := state.job.JobID.String()
	files := make([]string, 0, len(state.drafts))
	manifest := make([]manifestEntry, 0, len(state.drafts))

	for i, draft := range state.drafts {
		if err := ctx.Err(); err != nil {
			return err
		}
		artifact, err := q.renderer.Render(ctx, draft)
		if err != nil {
			return fmt.Errorf("render draft %d: %w", i, err)
		}
		key := prefix + "/" + artifact.Name
		if err := q.storage.Put(ctx, key, artifact.Body, artifact.ContentType); err != nil {
			return fmt.Errorf("store %s: %w", key, err)
		}
		files = append(files, key)
		manifest = append(manifest, manifestEntry{
			Name:   artifact.Name,
			SHA256: hashBytes(artifact.Body),
			Size:   len(artifact.Body),
		})
		progress := 5 + 90*(i+1)/len(state.drafts)
		if err := q.bumpProgress(state.job.JobID, progress); err != nil {
			return err
		}
	}

	index, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	manifestKey := prefix + "/manifest.json"
	if err := q.storage.Put(ctx, manifestKey, index, "application/json"); err != nil {
		return fmt.Errorf("store manifest: %w", err)
	}
	files = append(files, manifestKey)

	q.completeJob(state.job.JobID, files)
	return nil
}

func (q *Queue) completeJob(jobID uuid.UUID, files []string) {
	now := time.Now().UTC()
	_ = q.update(jobID, func(job *Job) error {
		if job.Status.Terminal() {
			return context.Canceled
		}
		job.Status = Succeeded
		job.FinishedAt = &now
		job.Progress = 100
		job.Files = files
		job.Error = ""
		return nil
	})
}

func (q *Queue) failJob(jobID uuid.UUID, err error) {
	now := time.Now().UTC()
	_ = q.update(jobID, func(job *Job) error {
		if job.Status.Terminal() {
			return context.Canceled
		}
		job.Status = Failed
		job.FinishedAt = &now
		job.Error = err.Error()
		return nil
	})
}

func (q *Queue) bumpProgress(jobID uuid.UUID, progress int) error {
	return q.update(jobID, func(job *Job) error {
		if job.Status == Canceled {
			return context.Canceled
		}
		if progress > job.Progress {
			job.Progress = progress
		}
		return nil
	})
}

func (q *Queue) setRetryCount(jobID uuid.UUID, retries int) {
	_ = q.update(jobID, func(job *Job) error {
		job.RetryCount = retries
		return nil
	})
}

func (q *Queue) update(jobID uuid.UUID, mutate func(job *Job) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	state, ok := q.jobs[jobID.String()]
	if !ok {
		return ErrNotFound
	}
	return mutate(&state.job)
}

func (q *Queue) activeCountLocked() int {
	count := 0
	for _, state := range q.jobs {
		if !state.job.Status.Terminal() {
			count++
		}
	}
	return count
}

func cloneJob(job Job) Job {
	clone := job
	if job.StartedAt != nil {
		t := *job.StartedAt
		clone.StartedAt = &t
	}
	if job.FinishedAt != nil {
		t := *job.FinishedAt
		clone.FinishedAt = &t
	}
	clone.Files = append([]string(nil), job.Files...)
	return clone
}

func hashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
