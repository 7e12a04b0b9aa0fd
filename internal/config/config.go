package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Downstream export; disabled when ExportURL is empty
	ExportURL    string
	ExportAPIKey string

	// Directory watch mode; disabled when empty
	WatchDir string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Input limits
	MaxSourceBytes int64

	// Structure detection
	FallbackChunkSize    int
	TocScanFirst         int
	TocScanLast          int
	MinStructureCoverage float64

	// Synthetic pagination for non-paginated formats
	SynthPageChars int

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("DOCSTRUCT_API_KEY"),

		ExportURL:    os.Getenv("EXPORT_URL"),
		ExportAPIKey: os.Getenv("EXPORT_API_KEY"),

		WatchDir: os.Getenv("WATCH_DIR"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxSourceBytes: envInt64("MAX_SOURCE_BYTES", 104857600), // 100MB

		FallbackChunkSize:    envInt("FALLBACK_CHUNK_SIZE", 15),
		TocScanFirst:         envInt("TOC_SCAN_FIRST", 5),
		TocScanLast:          envInt("TOC_SCAN_LAST", 3),
		MinStructureCoverage: envFloat("MIN_STRUCTURE_COVERAGE", 0.5),

		SynthPageChars: envInt("SYNTH_PAGE_CHARS", 3000),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxSourceBytes <= 0 {
		cfg.MaxSourceBytes = 104857600
	}
	if cfg.FallbackChunkSize <= 0 {
		cfg.FallbackChunkSize = 15
	}
	if cfg.TocScanFirst <= 0 {
		cfg.TocScanFirst = 5
	}
	if cfg.TocScanLast <= 0 {
		cfg.TocScanLast = 3
	}
	if cfg.MinStructureCoverage <= 0 || cfg.MinStructureCoverage > 1 {
		cfg.MinStructureCoverage = 0.5
	}
	if cfg.SynthPageChars <= 0 {
		cfg.SynthPageChars = 3000
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCSTRUCT_API_KEY is required")
	}
	if c.ExportURL != "" && c.ExportAPIKey == "" {
		return fmt.Errorf("EXPORT_API_KEY is required when EXPORT_URL is set")
	}
	return nil
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

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
