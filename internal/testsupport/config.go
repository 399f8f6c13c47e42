// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"streamfetch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.CacheFile = filepath.Join(base, "videoMetadata.json")
	cfg.Paths.ReportFile = filepath.Join(base, "download-report.csv")
	cfg.Paths.LockFile = filepath.Join(base, "streamfetch.lock")
	cfg.Stream.APIBaseURL = "https://api.example.com"
	cfg.Stream.AccessToken = "test-token"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	return &cfg
}

// WithTemplate sets the naming template on the test config.
func WithTemplate(template string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Naming.Template = template
	}
}

// WithSubtitles enables caption resolution on the test config.
func WithSubtitles() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Subtitles.Enabled = true
	}
}
