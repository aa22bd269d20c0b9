// Package config
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"langid/packages/domain"
)

type Config struct {
	DatabaseURL string
	Engine      string

	BatchSize               int32
	MaxWorkers              int
	MaxConcurrentDetections int64
	DetectTimeout           time.Duration
	SleepInterval           time.Duration
	JobTimeout              time.Duration
	FetchTimeout            time.Duration
	FetchRate               float64

	ResultWriteInterval time.Duration
	ResultQueueSize     int

	WantChunks               bool
	IncludeExtendedLanguages bool
	PickSummaryLanguage      bool
	RemoveWeakMatches        bool

	LogFile     string
	LogLevel    string
	MetricsAddr string

	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	ResultStream       string
	ResultStreamMaxLen int64
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first; variables already set take precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	cfg := Config{}
	var missingVars []string

	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		missingVars = append(missingVars, "DATABASE_URL")
	}
	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	cfg.Engine = getEnv("ENGINE", "whatlang")

	batchSize, err := strconv.Atoi(getEnv("BATCH_SIZE", "200"))
	if err != nil || batchSize <= 0 {
		slog.Warn("Invalid BATCH_SIZE", "value", getEnv("BATCH_SIZE", "200"), "error", err)
		batchSize = 200
	}
	cfg.BatchSize = int32(batchSize)
	cfg.MaxWorkers = getInt("MAX_WORKERS", 32)
	cfg.MaxConcurrentDetections = int64(getInt("MAX_CONCURRENT_DETECTIONS", 0))
	cfg.DetectTimeout = getDuration("DETECT_TIMEOUT", 2*time.Second)
	cfg.SleepInterval = getDuration("SLEEP_INTERVAL", 5*time.Second)
	cfg.JobTimeout = getDuration("JOB_TIMEOUT", 15*time.Minute)
	cfg.FetchTimeout = getDuration("FETCH_TIMEOUT", 6*time.Second)
	cfg.FetchRate, _ = strconv.ParseFloat(getEnv("FETCH_RATE", "20"), 64)

	cfg.ResultWriteInterval = getDuration("RESULT_WRITE_INTERVAL", 2*time.Second)
	cfg.ResultQueueSize = getInt("RESULT_QUEUE_SIZE", 2000)

	defaults := domain.DefaultOptions()
	cfg.WantChunks = getBool("WANT_CHUNKS", false)
	cfg.IncludeExtendedLanguages = getBool("INCLUDE_EXTENDED_LANGUAGES", defaults.IncludeExtendedLanguages)
	cfg.PickSummaryLanguage = getBool("PICK_SUMMARY_LANGUAGE", defaults.PickSummaryLanguage)
	cfg.RemoveWeakMatches = getBool("REMOVE_WEAK_MATCHES", defaults.RemoveWeakMatches)

	cfg.LogFile = getEnv("LOG_FILE", "logs/worker.log")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.MetricsAddr = getEnv("METRICS_ADDR", "0.0.0.0:9092")

	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB = getInt("REDIS_DB", 0)
	cfg.ResultStream = getEnv("RESULT_STREAM", "langid:results")
	cfg.ResultStreamMaxLen, _ = strconv.ParseInt(getEnv("RESULT_STREAM_MAXLEN", "100000"), 10, 64)

	return cfg, nil
}

// Options returns the detection options selected by the environment.
func (c Config) Options() domain.Options {
	return domain.Options{
		IncludeExtendedLanguages: c.IncludeExtendedLanguages,
		PickSummaryLanguage:      c.PickSummaryLanguage,
		RemoveWeakMatches:        c.RemoveWeakMatches,
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultVal)))
	if err != nil {
		slog.Warn("Invalid integer setting", "key", key, "error", err)
		return defaultVal
	}
	return v
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, defaultVal.String()))
	if err != nil {
		slog.Warn("Invalid duration setting", "key", key, "error", err)
		return defaultVal
	}
	return v
}

func getBool(key string, defaultVal bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultVal)))
	if err != nil {
		slog.Warn("Invalid boolean setting", "key", key, "error", err)
		return defaultVal
	}
	return v
}
