package testsupport

import (
	"path/filepath"
	"testing"

	"cutsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with a unique temp database per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Store.DBPath = filepath.Join(t.TempDir(), "records.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMappingMode overrides the frame-mapping mode on the test config.
func WithMappingMode(mode string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Editorial.MappingMode = mode
	}
}

// WithSmartFields switches the test config to the smart shot field set.
func WithSmartFields() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Editorial.UseSmartFields = true
	}
}
