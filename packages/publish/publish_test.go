package publish

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langid/packages/domain"
	"langid/packages/registry"
)

func TestNewWithoutAddressIsDisabled(t *testing.T) {
	p := New(Config{Stream: "langid:results"})
	assert.Nil(t, p)
	assert.NoError(t, p.Ping(context.Background()))
	assert.NoError(t, p.Publish(context.Background(), domain.StoredResult{JobID: 1}))
	assert.NoError(t, p.Close())
}

func TestEventEncoding(t *testing.T) {
	at := time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC)
	ev := NewEvent(domain.StoredResult{
		JobID:  42,
		URL:    "https://example.co.nz/",
		Engine: "whatlang",
		Result: domain.Result{
			Language:       registry.Maori,
			IsReliable:     true,
			TextBytesFound: 1200,
			Candidates: []domain.Candidate{
				{Language: registry.Maori, Percent: 85, NormalizedScore: 0.8},
				{Language: registry.English, Percent: 15, NormalizedScore: 0.4},
			},
		},
		DetectedAt: at,
	})

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"job_id": 42,
		"url": "https://example.co.nz/",
		"engine": "whatlang",
		"language": "mi",
		"is_reliable": true,
		"text_bytes": 1200,
		"candidates": [
			{"language": "mi", "percent": 85, "score": 0.8},
			{"language": "en", "percent": 15, "score": 0.4}
		],
		"detected_at": "2026-10-01T08:30:00Z"
	}`, string(data))
}

func TestEventEncodesEmptyCandidatesAsArray(t *testing.T) {
	data, err := json.Marshal(NewEvent(domain.StoredResult{JobID: 3}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"candidates":[]`)
	assert.Contains(t, string(data), `"language":"un"`)
}
