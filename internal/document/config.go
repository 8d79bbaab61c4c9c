package document

import (
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven settings for validation and rendering.
type Config struct {
	Currency        string
	MaxLines        int
	MaxDescription  int
	DefaultTimeZone string
	PDFEnabled      bool
	PDFChromiumPath string
	PDFTimeout      time.Duration
}

func LoadConfig() Config {
	return Config{
		Currency:        getenv("DOC_CURRENCY", "THB"),
		MaxLines:        getInt("MAX_DOC_LINES", 200),
		MaxDescription:  getInt("MAX_DESCRIPTION_LEN", 240),
		DefaultTimeZone: getenv("DEFAULT_TZ", "Asia/Bangkok"),
		PDFEnabled:      getBool("PDF_ENABLED", true),
		PDFChromiumPath: getenv("PDF_CHROMIUM_PATH", ""),
		PDFTimeout:      getDuration("PDF_TIMEOUT", 15*time.Second),
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

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
