// Package detector is the entry point for language detection. It resolves
// hints, invokes the engine once per request and shapes the engine output into
// a domain.Result.
package detector

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"langid/packages/domain"
	"langid/packages/engine"
	"langid/packages/hints"
	"langid/packages/metrics"
	"langid/packages/registry"
)

// Detector is safe for concurrent use. It holds no lock across engine calls.
type Detector struct {
	engine     engine.Engine
	logger     *slog.Logger
	sem        *semaphore.Weighted
	batchLimit int
}

type Option func(*Detector)

func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) { d.logger = l }
}

// WithMaxConcurrent bounds the number of engine invocations in flight.
// n <= 0 means unbounded.
func WithMaxConcurrent(n int64) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sem = semaphore.NewWeighted(n)
		}
	}
}

// WithBatchLimit sets how many requests DetectBatch runs at once.
func WithBatchLimit(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.batchLimit = n
		}
	}
}

func New(e engine.Engine, opts ...Option) *Detector {
	d := &Detector{
		engine:     e,
		logger:     slog.Default(),
		batchLimit: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "detector", "engine", e.Name())
	return d
}

// Detect runs one detection synchronously.
func (d *Detector) Detect(req domain.Request) (domain.Result, error) {
	return d.detect(context.Background(), req)
}

// DetectSimple detects plain text with no hints.
func (d *Detector) DetectSimple(text []byte) (domain.Result, error) {
	opts := domain.DefaultOptions()
	opts.IsPlainText = true
	return d.Detect(domain.Request{Text: text, Options: opts})
}

// DetectContext is Detect bounded by ctx. On expiry it returns ctx.Err(); the
// engine call is not interrupted and its result is discarded.
func (d *Detector) DetectContext(ctx context.Context, req domain.Request) (domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}

	type outcome struct {
		res domain.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := d.detect(ctx, req)
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		d.logger.Warn("Detection abandoned", "error", ctx.Err(), "bytes", len(req.Text))
		return domain.Result{}, ctx.Err()
	}
}

// Outcome is one DetectBatch entry.
type Outcome struct {
	Result domain.Result
	Err    error
}

// DetectBatch detects every request and returns outcomes in input order.
func (d *Detector) DetectBatch(ctx context.Context, reqs []domain.Request) []Outcome {
	out := make([]Outcome, len(reqs))
	var g errgroup.Group
	g.SetLimit(d.batchLimit)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			res, err := d.DetectContext(ctx, req)
			out[i] = Outcome{Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// EngineName names the engine behind d.
func (d *Detector) EngineName() string { return d.engine.Name() }

// DetectableLanguages lists every language the engine can return.
func (d *Detector) DetectableLanguages() []registry.Language {
	return d.engine.Languages()
}

func (d *Detector) detect(ctx context.Context, req domain.Request) (domain.Result, error) {
	name := d.engine.Name()

	h, err := hints.Resolve(req.Hints)
	if err == nil {
		err = d.engine.CheckHints(h)
	}
	if err != nil {
		var he *domain.HintError
		if errors.As(err, &he) {
			metrics.HintErrors.WithLabelValues(he.Kind.String()).Inc()
		}
		metrics.Detections.WithLabelValues(name, "hint_error").Inc()
		d.logger.Debug("Rejected hints", "error", err)
		return domain.Result{}, err
	}

	if len(req.Text) == 0 {
		metrics.Detections.WithLabelValues(name, "empty").Inc()
		return emptyResult(req.WantChunks), nil
	}

	if d.sem != nil {
		if err := d.sem.Acquire(ctx, 1); err != nil {
			return domain.Result{}, err
		}
		defer d.sem.Release(1)
	}

	flags := Flags(req.Options.Diagnostics)
	start := time.Now()
	raw, err := d.engine.Detect(engineRequest(req, h, flags))
	metrics.DetectionDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Detections.WithLabelValues(name, "engine_error").Inc()
		d.logger.Error("Engine failed", "error", err, "bytes", len(req.Text), "flags", uint32(flags))
		return domain.Result{}, domain.NewEngineError(name, h, uint32(flags), err)
	}

	res := Aggregate(raw, req.Options, req.WantChunks)
	metrics.TextBytes.Add(float64(res.TextBytesFound))
	outcome := "unreliable"
	if res.IsReliable {
		outcome = "reliable"
	}
	metrics.Detections.WithLabelValues(name, outcome).Inc()
	d.logger.Debug("Detected language",
		"language", res.Language.Code(),
		"reliable", res.IsReliable,
		"text_bytes", res.TextBytesFound,
		"candidates", len(res.Candidates),
	)
	return res, nil
}
