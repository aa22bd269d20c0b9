package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langid/packages/config"
	"langid/packages/detector"
	"langid/packages/domain"
	"langid/packages/engine"
	"langid/packages/registry"
)

type fakeStore struct {
	mu       sync.Mutex
	jobs     []domain.Job
	statuses map[int64]domain.JobStatus
	reasons  map[int64]string
	results  []domain.StoredResult
	full     bool
}

func newFakeStore(jobs ...domain.Job) *fakeStore {
	return &fakeStore{jobs: jobs, statuses: map[int64]domain.JobStatus{}, reasons: map[int64]string{}}
}

func (s *fakeStore) LockJobs(_ context.Context, from, to domain.JobStatus, limit int32) ([]domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := min(int(limit), len(s.jobs))
	locked := s.jobs[:n]
	s.jobs = s.jobs[n:]
	for _, j := range locked {
		s.statuses[j.ID] = to
	}
	return locked, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id int64, status domain.JobStatus, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[id] = status
	s.reasons[id] = reason
	return nil
}

func (s *fakeStore) EnqueueResult(r domain.StoredResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.full {
		return false
	}
	s.results = append(s.results, r)
	return true
}

type fakeFetcher map[string]*domain.FetchedPage

func (f fakeFetcher) Fetch(_ context.Context, rawURL string) (*domain.FetchedPage, error) {
	if p, ok := f[rawURL]; ok {
		return p, nil
	}
	return nil, errors.New("bad status code: 404")
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []int64
}

func (p *fakePublisher) Publish(_ context.Context, r domain.StoredResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, r.JobID)
	return nil
}

// germanEngine reports German for any text and records what it saw.
type germanEngine struct {
	mu   sync.Mutex
	reqs []engine.Request
}

func (e *germanEngine) Name() string { return "german" }
func (e *germanEngine) Languages() []registry.Language { return []registry.Language{registry.German} }
func (e *germanEngine) CheckHints(domain.Hints) error { return nil }
func (e *germanEngine) Detect(req engine.Request) (engine.Result, error) {
	e.mu.Lock()
	e.reqs = append(e.reqs, req)
	e.mu.Unlock()
	return engine.Result{
		Slots:     [engine.Slots]engine.Slot{{Language: registry.German, Percent: 100, Score: 0.9}},
		Summary:   registry.German,
		Reliable:  true,
		TextBytes: len(req.Text),
	}, nil
}

func testConfig() config.Config {
	return config.Config{
		BatchSize:         10,
		MaxWorkers:        4,
		DetectTimeout:     time.Second,
		RemoveWeakMatches: true,
	}
}

func TestProcessJobs(t *testing.T) {
	store := newFakeStore(
		domain.Job{ID: 1, URL: "https://example.de/"},
		domain.Job{ID: 2, URL: "https://example.de/missing"},
		domain.Job{ID: 3, URL: "https://example.de/logo.png"},
		domain.Job{ID: 4, URL: "https://example.de/bad-hint", Hints: domain.RawHints{Language: "KLINGON"}},
		domain.Job{ID: 5, URL: "https://example.de/notes.txt"},
	)
	fetcher := fakeFetcher{
		"https://example.de/": {
			FinalURL: "https://example.de/",
			Body:     []byte("<p>Guten Tag</p>"),
			Hints:    domain.RawHints{Language: "de", TopLevelDomain: "de", Encoding: "UTF8"},
		},
		"https://example.de/logo.png": {IsNonText: true, ContentType: "image/png"},
		"https://example.de/bad-hint": {Body: []byte("<p>Hallo</p>")},
		"https://example.de/notes.txt": {
			FinalURL:  "https://example.de/notes.txt",
			Body:      []byte("Hallo Welt"),
			PlainText: true,
		},
	}
	eng := &germanEngine{}
	pub := &fakePublisher{}
	w := New(testConfig(), store, fetcher, detector.New(eng), pub)

	assert.Equal(t, 5, w.ProcessJobs(context.Background()))
	assert.Equal(t, 0, w.ProcessJobs(context.Background()))

	// Completion is left to the result writer.
	assert.Equal(t, domain.Detecting, store.statuses[1])
	assert.Equal(t, domain.Failed, store.statuses[2])
	assert.Contains(t, store.reasons[2], "404")
	assert.Equal(t, domain.Skipped, store.statuses[3])
	assert.Equal(t, domain.Rejected, store.statuses[4])
	assert.Contains(t, store.reasons[4], "KLINGON")
	assert.Equal(t, domain.Detecting, store.statuses[5])
	for id, status := range store.statuses {
		assert.NotEqual(t, domain.Completed, status, "job %d", id)
	}

	require.Len(t, store.results, 2)
	for _, r := range store.results {
		assert.Equal(t, "german", r.Engine)
		assert.Equal(t, registry.German, r.Result.Language)
		assert.False(t, r.DetectedAt.IsZero())
	}
	assert.ElementsMatch(t, []int64{1, 5}, pub.sent)

	require.Len(t, eng.reqs, 2)
	for _, req := range eng.reqs {
		if string(req.Text) == "Hallo Welt" {
			assert.True(t, req.PlainText)
		} else {
			assert.False(t, req.PlainText)
			assert.Equal(t, registry.German, req.Hints.Language)
			assert.Equal(t, "de", req.Hints.TopLevelDomain)
		}
		assert.True(t, req.RemoveWeak)
	}
}

func TestProcessJobsLeavesJobWhenQueueIsFull(t *testing.T) {
	store := newFakeStore(domain.Job{ID: 9, URL: "https://example.de/"})
	store.full = true
	fetcher := fakeFetcher{"https://example.de/": {Body: []byte("Guten Tag")}}
	pub := &fakePublisher{}
	w := New(testConfig(), store, fetcher, detector.New(&germanEngine{}), pub)

	w.ProcessJobs(context.Background())
	assert.Equal(t, domain.Detecting, store.statuses[9])
	assert.Empty(t, pub.sent)
}

func TestMergeHintsPrefersJobHints(t *testing.T) {
	got := mergeHints(
		domain.RawHints{Language: "fr"},
		domain.RawHints{Language: "de", Encoding: "UTF8", TopLevelDomain: "ch", ContentLanguage: "de-CH"},
	)
	assert.Equal(t, domain.RawHints{
		Language:        "fr",
		Encoding:        "UTF8",
		TopLevelDomain:  "ch",
		ContentLanguage: "de-CH",
	}, got)
}
