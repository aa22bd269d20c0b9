// Package publish streams stored detection results to Redis for downstream
// consumers.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"langid/packages/domain"
	"langid/packages/metrics"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	Stream   string
	MaxLen   int64
}

// Publisher appends results to a Redis stream. A nil *Publisher is valid and
// publishes nothing.
type Publisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// New returns nil when no address is configured.
func New(cfg Config) *Publisher {
	if cfg.Addr == "" {
		return nil
	}
	return &Publisher{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		stream: cfg.Stream,
		maxLen: cfg.MaxLen,
	}
}

func (p *Publisher) Ping(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.client.Ping(ctx).Err()
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.client.Close()
}

// Event is the stream payload: the result flattened to codes.
type Event struct {
	JobID      int64            `json:"job_id"`
	URL        string           `json:"url"`
	Engine     string           `json:"engine"`
	Language   string           `json:"language"`
	IsReliable bool             `json:"is_reliable"`
	TextBytes  uint32           `json:"text_bytes"`
	Candidates []EventCandidate `json:"candidates"`
	DetectedAt time.Time        `json:"detected_at"`
}

type EventCandidate struct {
	Language string  `json:"language"`
	Percent  uint8   `json:"percent"`
	Score    float64 `json:"score"`
}

func NewEvent(r domain.StoredResult) Event {
	ev := Event{
		JobID:      r.JobID,
		URL:        r.URL,
		Engine:     r.Engine,
		Language:   r.Result.Language.Code(),
		IsReliable: r.Result.IsReliable,
		TextBytes:  r.Result.TextBytesFound,
		Candidates: make([]EventCandidate, len(r.Result.Candidates)),
		DetectedAt: r.DetectedAt,
	}
	for i, c := range r.Result.Candidates {
		ev.Candidates[i] = EventCandidate{Language: c.Language.Code(), Percent: c.Percent, Score: c.NormalizedScore}
	}
	return ev
}

func (p *Publisher) Publish(ctx context.Context, r domain.StoredResult) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(NewEvent(r))
	if err != nil {
		return fmt.Errorf("failed to encode result for job %d: %w", r.JobID, err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			"job_id":   r.JobID,
			"language": r.Result.Language.Code(),
			"payload":  payload,
		},
	}).Err()
	if err != nil {
		metrics.PublishedResults.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to publish result for job %d: %w", r.JobID, err)
	}
	metrics.PublishedResults.WithLabelValues("ok").Inc()
	return nil
}
