// Package db
package db

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"langid/packages/domain"
	"langid/packages/metrics"
)

//go:embed schema.sql
var schema string

type Storage struct {
	DB          *pgxpool.Pool
	cfg         Config
	resultQueue chan domain.StoredResult
	flush       func(ctx context.Context, results []domain.StoredResult) error
}

type Config struct {
	JobTimeout          time.Duration
	ResultWriteInterval time.Duration
	ResultQueueSize     int
}

func New(ctx context.Context, databaseURL string, cfg Config) (*Storage, error) {
	db, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	s := &Storage{
		DB:          db,
		cfg:         cfg,
		resultQueue: make(chan domain.StoredResult, cfg.ResultQueueSize),
	}
	s.flush = s.writeResults
	return s, nil
}

// StartWriter launches the background result writer. It flushes on every
// tick and once more when ctx ends or Close is called. The returned channel is
// closed after the final flush; wait on it before calling Close.
func (s *Storage) StartWriter(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.resultWriter(ctx)
	}()
	slog.Info("Database writer goroutine started")
	return done
}

// Close must not be called while workers may still enqueue results.
func (s *Storage) Close() {
	close(s.resultQueue)
	s.DB.Close()
}

// Migrate creates the tables when they do not exist.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.DB.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Storage) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	return fn(tx)
}

func observe(query string, start time.Time) {
	metrics.DBQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}

// EnqueueJob adds url to the queue, or resets it to pending with new hints.
func (s *Storage) EnqueueJob(ctx context.Context, url string, hints domain.RawHints) (int64, error) {
	defer observe("enqueue_job", time.Now())
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO detection_jobs (url, language_hint, encoding_hint, tld_hint, content_language_hint)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (url) DO UPDATE
		SET status = $6, status_reason = NULL,
		    language_hint = EXCLUDED.language_hint, encoding_hint = EXCLUDED.encoding_hint,
		    tld_hint = EXCLUDED.tld_hint, content_language_hint = EXCLUDED.content_language_hint,
		    updated_at = now()
		RETURNING id`,
		url, hints.Language, hints.Encoding, hints.TopLevelDomain, hints.ContentLanguage, string(domain.Pending),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue job: %w", err)
	}
	return id, nil
}

// LockJobs claims up to limit jobs in fromStatus and moves them to toStatus.
// Rows locked by another worker are skipped.
func (s *Storage) LockJobs(ctx context.Context, fromStatus, toStatus domain.JobStatus, limit int32) ([]domain.Job, error) {
	defer observe("lock_jobs", time.Now())
	var jobs []domain.Job

	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id, url, language_hint, encoding_hint, tld_hint, content_language_hint
			FROM detection_jobs
			WHERE status = $1
			ORDER BY updated_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED`,
			string(fromStatus), limit,
		)
		if err != nil {
			return fmt.Errorf("failed to lock jobs: %w", err)
		}
		var job domain.Job
		if _, err := pgx.ForEachRow(rows, []any{
			&job.ID, &job.URL, &job.Hints.Language, &job.Hints.Encoding, &job.Hints.TopLevelDomain, &job.Hints.ContentLanguage,
		}, func() error {
			jobs = append(jobs, job)
			return nil
		}); err != nil {
			return fmt.Errorf("failed to iterate locked jobs: %w", err)
		}
		if len(jobs) == 0 {
			return nil
		}

		jobIDs := make([]int64, len(jobs))
		for i, j := range jobs {
			jobIDs[i] = j.ID
		}
		_, err = tx.Exec(ctx,
			`UPDATE detection_jobs SET status = $1, updated_at = now() WHERE id = ANY($2)`,
			string(toStatus), jobIDs,
		)
		if err != nil {
			return fmt.Errorf("failed to update locked jobs: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *Storage) UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus, reason string) error {
	defer observe("update_status", time.Now())
	_, err := s.DB.Exec(ctx,
		`UPDATE detection_jobs SET status = $1, status_reason = $2, updated_at = now() WHERE id = $3`,
		string(status), reason, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update status of job %d: %w", jobID, err)
	}
	return nil
}

// EnqueueResult hands a result to the background writer, which marks the job
// completed in the same transaction that stores the result. It never blocks;
// a full queue drops the result and the job is retried after the stall timeout.
func (s *Storage) EnqueueResult(r domain.StoredResult) bool {
	select {
	case s.resultQueue <- r:
		return true
	default:
		slog.Warn("Result queue is full. Dropping result.", "job_id", r.JobID)
		return false
	}
}

// ResetStalledJobs returns jobs stuck in detecting for longer than the job
// timeout to pending.
func (s *Storage) ResetStalledJobs(ctx context.Context) error {
	defer observe("reset_stalled_jobs", time.Now())
	interval := pgtype.Interval{
		Microseconds: s.cfg.JobTimeout.Microseconds(),
		Valid:        true,
	}
	tag, err := s.DB.Exec(ctx, `
		UPDATE detection_jobs SET status = $1, updated_at = now()
		WHERE status = $2 AND updated_at < now() - $3::interval`,
		string(domain.Pending), string(domain.Detecting), interval,
	)
	if err != nil {
		return fmt.Errorf("failed to reset stalled jobs: %w", err)
	}
	if n := tag.RowsAffected(); n > 0 {
		slog.Info("Reset stalled jobs", "count", n)
	}
	return nil
}

func (s *Storage) RefreshPendingJobCount(ctx context.Context) error {
	defer observe("count_pending_jobs", time.Now())
	var n int64
	if err := s.DB.QueryRow(ctx, `SELECT count(*) FROM detection_jobs WHERE status = $1`, string(domain.Pending)).Scan(&n); err != nil {
		return fmt.Errorf("failed to count pending jobs: %w", err)
	}
	metrics.PendingJobs.Set(float64(n))
	return nil
}

func (s *Storage) resultWriter(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.ResultWriteInterval)
	defer ticker.Stop()
	var pending []domain.StoredResult

	flush := func(ctx context.Context) {
		if len(pending) == 0 {
			return
		}
		// Jobs of a failed batch stay in detecting until the reaper resets them.
		if err := s.flush(ctx, pending); err != nil {
			slog.Error("DB Writer: Transaction failed", "error", err, "results", len(pending))
		}
		pending = nil
	}

	for {
		select {
		case <-ctx.Done():
			pending = s.drainQueue(pending)
			slog.Info("DB Writer: Final write on shutdown...", "results", len(pending))
			flush(context.Background())
			slog.Info("DB Writer: Shutdown.")
			return
		case r, ok := <-s.resultQueue:
			if !ok {
				flush(context.Background())
				slog.Info("DB Writer: Result queue closed, exiting.")
				return
			}
			pending = append(pending, r)
		case <-ticker.C:
			flush(ctx)
		}
	}
}

// drainQueue appends whatever is already buffered without waiting for more.
func (s *Storage) drainQueue(pending []domain.StoredResult) []domain.StoredResult {
	for {
		select {
		case r, ok := <-s.resultQueue:
			if !ok {
				return pending
			}
			pending = append(pending, r)
		default:
			return pending
		}
	}
}

// writeResults stores results and moves their jobs from detecting to
// completed in one transaction.
func (s *Storage) writeResults(ctx context.Context, results []domain.StoredResult) error {
	defer observe("write_results", time.Now())
	rows := buildRows(results)

	var completed int64
	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		// Reprocessed jobs replace their previous rows.
		if _, err := tx.Exec(ctx, `DELETE FROM detection_results WHERE job_id = ANY($1)`, rows.jobIDs); err != nil {
			return fmt.Errorf("failed to clear previous results: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM detection_candidates WHERE job_id = ANY($1)`, rows.jobIDs); err != nil {
			return fmt.Errorf("failed to clear previous candidates: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM detection_chunks WHERE job_id = ANY($1)`, rows.jobIDs); err != nil {
			return fmt.Errorf("failed to clear previous chunks: %w", err)
		}

		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"detection_results"}, resultColumns, pgx.CopyFromRows(rows.results)); err != nil {
			return fmt.Errorf("failed to bulk insert results: %w", err)
		}
		if len(rows.candidates) > 0 {
			if _, err := tx.CopyFrom(ctx, pgx.Identifier{"detection_candidates"}, candidateColumns, pgx.CopyFromRows(rows.candidates)); err != nil {
				return fmt.Errorf("failed to bulk insert candidates: %w", err)
			}
		}
		if len(rows.chunks) > 0 {
			if _, err := tx.CopyFrom(ctx, pgx.Identifier{"detection_chunks"}, chunkColumns, pgx.CopyFromRows(rows.chunks)); err != nil {
				return fmt.Errorf("failed to bulk insert chunks: %w", err)
			}
		}

		tag, err := tx.Exec(ctx, `
			UPDATE detection_jobs SET status = $1, status_reason = NULL, updated_at = now()
			WHERE id = ANY($2) AND status = $3`,
			string(domain.Completed), rows.jobIDs, string(domain.Detecting),
		)
		if err != nil {
			return fmt.Errorf("failed to mark jobs completed: %w", err)
		}
		completed = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}

	metrics.Jobs.WithLabelValues(string(domain.Completed)).Add(float64(completed))
	slog.Info("DB Writer: Successfully committed batch", "results", len(results), "completed", completed)
	return nil
}
