package testsupport

import (
	"path/filepath"
	"testing"

	"trajview/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Output verification is disabled because tests stub the encoder and never
// produce a real container.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Render.Width = 320
	cfg.Render.Height = 240
	cfg.Video.VerifyOutput = false

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// WithWorkers overrides the render worker count on the test config.
func WithWorkers(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Render.Workers = n
	}
}

// WithKeepFrames keeps scratch artifacts after a successful run.
func WithKeepFrames() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Video.KeepFrames = true
	}
}

// WithFPS overrides the output frame rate on the test config.
func WithFPS(fps int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Video.FPS = fps
	}
}
