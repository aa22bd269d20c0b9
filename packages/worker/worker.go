// Package worker
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"langid/packages/config"
	"langid/packages/detector"
	"langid/packages/domain"
	"langid/packages/metrics"
)

// JobStore is the slice of storage the worker needs.
type JobStore interface {
	LockJobs(ctx context.Context, fromStatus, toStatus domain.JobStatus, limit int32) ([]domain.Job, error)
	UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus, reason string) error
	EnqueueResult(r domain.StoredResult) bool
}

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*domain.FetchedPage, error)
}

type Publisher interface {
	Publish(ctx context.Context, r domain.StoredResult) error
}

var errQueueFull = errors.New("result queue is full")

type Worker struct {
	cfg       config.Config
	store     JobStore
	fetcher   Fetcher
	detector  *detector.Detector
	publisher Publisher
	now       func() time.Time
}

func New(cfg config.Config, store JobStore, fetcher Fetcher, det *detector.Detector, pub Publisher) *Worker {
	return &Worker{
		cfg:       cfg,
		store:     store,
		fetcher:   fetcher,
		detector:  det,
		publisher: pub,
		now:       time.Now,
	}
}

// ProcessJobs claims one batch of pending jobs and detects each of them.
// It returns the number of jobs claimed.
func (w *Worker) ProcessJobs(ctx context.Context) int {
	jobsList, err := w.store.LockJobs(ctx, domain.Pending, domain.Detecting, w.cfg.BatchSize)
	if err != nil {
		slog.Error("Failed to lock jobs", "error", err)
		return 0
	}

	if len(jobsList) == 0 {
		return 0
	}

	slog.Info("Locked and dispatched jobs", "count", len(jobsList))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(w.cfg.MaxWorkers, 1))

	for _, job := range jobsList {
		job := job
		g.Go(func() error {
			if err := w.processJob(gCtx, job); err != nil {
				slog.Error("Task failed", "job_id", job.ID, "url", job.URL, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	slog.Info("Finished processing batch", "count", len(jobsList))
	return len(jobsList)
}

func (w *Worker) processJob(ctx context.Context, job domain.Job) error {
	page, err := w.fetcher.Fetch(ctx, job.URL)
	if err != nil {
		return w.finish(ctx, job, domain.Failed, "fetch: "+err.Error())
	}
	if page.IsNonText {
		return w.finish(ctx, job, domain.Skipped, "Content-Type was not text: "+page.ContentType)
	}

	opts := w.cfg.Options()
	opts.IsPlainText = page.PlainText
	req := domain.Request{
		Text:       page.Body,
		Options:    opts,
		Hints:      mergeHints(job.Hints, page.Hints),
		WantChunks: w.cfg.WantChunks,
	}

	dctx := ctx
	if w.cfg.DetectTimeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, w.cfg.DetectTimeout)
		defer cancel()
	}
	res, err := w.detector.DetectContext(dctx, req)
	switch {
	case errors.Is(err, domain.ErrHint):
		return w.finish(ctx, job, domain.Rejected, err.Error())
	case err != nil:
		return w.finish(ctx, job, domain.Failed, "detect: "+err.Error())
	}

	stored := domain.StoredResult{
		JobID:      job.ID,
		URL:        page.FinalURL,
		Engine:     w.detector.EngineName(),
		Result:     res,
		DetectedAt: w.now().UTC(),
	}
	// The job stays in detecting until the result writer stores the result
	// and completes it. A dropped result waits for the reaper instead.
	if !w.store.EnqueueResult(stored) {
		return fmt.Errorf("job %d: %w", job.ID, errQueueFull)
	}
	if err := w.publisher.Publish(ctx, stored); err != nil {
		slog.Warn("Failed to publish result", "job_id", job.ID, "error", err)
	}
	return nil
}

func (w *Worker) finish(ctx context.Context, job domain.Job, status domain.JobStatus, reason string) error {
	metrics.Jobs.WithLabelValues(string(status)).Inc()
	if reason != "" {
		slog.Debug("Job finished", "job_id", job.ID, "status", status, "reason", reason)
	}
	return w.store.UpdateStatus(ctx, job.ID, status, reason)
}

// mergeHints prefers hints stored with the job over hints derived from the
// page, field by field.
func mergeHints(job, page domain.RawHints) domain.RawHints {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return domain.RawHints{
		Language:        pick(job.Language, page.Language),
		Encoding:        pick(job.Encoding, page.Encoding),
		TopLevelDomain:  pick(job.TopLevelDomain, page.TopLevelDomain),
		ContentLanguage: pick(job.ContentLanguage, page.ContentLanguage),
	}
}
