package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/langid")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "whatlang", cfg.Engine)
	assert.Equal(t, int32(200), cfg.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.DetectTimeout)
	assert.Equal(t, 15*time.Minute, cfg.JobTimeout)
	assert.Zero(t, cfg.MaxConcurrentDetections)
	assert.True(t, cfg.IncludeExtendedLanguages)
	assert.False(t, cfg.PickSummaryLanguage)
	assert.True(t, cfg.RemoveWeakMatches)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "langid:results", cfg.ResultStream)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/langid")
	t.Setenv("ENGINE", "lingua")
	t.Setenv("BATCH_SIZE", "50")
	t.Setenv("MAX_CONCURRENT_DETECTIONS", "4")
	t.Setenv("DETECT_TIMEOUT", "750ms")
	t.Setenv("FETCH_RATE", "2.5")
	t.Setenv("PICK_SUMMARY_LANGUAGE", "true")
	t.Setenv("REMOVE_WEAK_MATCHES", "false")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RESULT_STREAM_MAXLEN", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "lingua", cfg.Engine)
	assert.Equal(t, int32(50), cfg.BatchSize)
	assert.Equal(t, int64(4), cfg.MaxConcurrentDetections)
	assert.Equal(t, 750*time.Millisecond, cfg.DetectTimeout)
	assert.InDelta(t, 2.5, cfg.FetchRate, 1e-9)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, int64(10), cfg.ResultStreamMaxLen)

	opts := cfg.Options()
	assert.True(t, opts.PickSummaryLanguage)
	assert.False(t, opts.RemoveWeakMatches)
	assert.False(t, opts.IsPlainText)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/langid")
	t.Setenv("BATCH_SIZE", "many")
	t.Setenv("DETECT_TIMEOUT", "soon")
	t.Setenv("WANT_CHUNKS", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int32(200), cfg.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.DetectTimeout)
	assert.False(t, cfg.WantChunks)
}
