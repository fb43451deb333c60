package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth. Empty disables authentication (co-located deployments).
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Batch pipeline
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// Heuristic bounds for the parsing core. Defaults mirror the values the
	// heuristics were tuned with; they are exposed so deployments can widen
	// the reference tail window for unusually formatted documents.
	RefMaxEntries   int
	RefTailLines    int
	RefMinLineChars int
	AbstractLines   int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("PAPERPARSE_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		JobTTL:       envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		RefMaxEntries:   envInt("REF_MAX_ENTRIES", 60),
		RefTailLines:    envInt("REF_TAIL_LINES", 120),
		RefMinLineChars: envInt("REF_MIN_LINE_CHARS", 30),
		AbstractLines:   envInt("ABSTRACT_LINES", 5),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.RefMaxEntries <= 0 {
		cfg.RefMaxEntries = 60
	}
	if cfg.RefTailLines <= 0 {
		cfg.RefTailLines = 120
	}
	if cfg.RefMinLineChars <= 0 {
		cfg.RefMinLineChars = 30
	}
	if cfg.AbstractLines <= 0 {
		cfg.AbstractLines = 5
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
