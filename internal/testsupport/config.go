package testsupport

import (
	"path/filepath"
	"testing"

	"mediareel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(base, "media")
	cfg.Paths.OutputDir = filepath.Join(base, "media", "output")
	cfg.Paths.StoreFile = filepath.Join(base, "records.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSortOrder sets the catalog sort key and direction on the test config.
func WithSortOrder(key, direction string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalog.SortKey = key
		cfg.Catalog.SortDirection = direction
	}
}

// WithInterval sets the per-image display interval on the test config.
func WithInterval(seconds float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Render.IntervalSeconds = seconds
	}
}
