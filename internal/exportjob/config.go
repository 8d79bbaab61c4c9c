// Package exportjob runs batch document exports: many drafts rendered
// concurrently under a bounded worker pool, with per-job retry,
// progress reporting and cancellation.
package exportjob

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	MaxConcurrentJobs int
	MaxQueueDepth     int
	MaxRetries        int
	RetryBaseDelay    time.Duration
	OutputDir         string
}

func LoadConfig() Config {
	return Config{
		MaxConcurrentJobs: getInt("MAX_PARALLEL_JOBS", 4),
		MaxQueueDepth:     getInt("MAX_QUEUE_DEPTH", 32),
		MaxRetries:        getInt("MAX_EXPORT_RETRIES", 3),
		RetryBaseDelay:    getDuration("EXPORT_RETRY_BASE_DELAY", time.Second),
		OutputDir:         getenv("EXPORT_OUTPUT_DIR", "exports"),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
