package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPassesValidation(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize returned error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults failed validation: %v", err)
	}
	if cfg.Video.FPS != 10 {
		t.Fatalf("expected default fps 10, got %d", cfg.Video.FPS)
	}
	if cfg.Video.OutputName != "argon_simulation.mp4" {
		t.Fatalf("unexpected default output name %q", cfg.Video.OutputName)
	}
	if cfg.Render.Width != 640 || cfg.Render.Height != 480 {
		t.Fatalf("unexpected default frame size %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for a missing config file")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Video.FFmpegBinary != "ffmpeg" {
		t.Fatalf("expected default ffmpeg binary, got %q", cfg.Video.FFmpegBinary)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajview.toml")
	contents := `
[render]
width = 800
height = 600
workers = 4

[video]
fps = 24
output_name = "run.mp4"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Render.Width != 800 || cfg.Render.Height != 600 {
		t.Fatalf("overrides not applied: %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.Workers != 4 {
		t.Fatalf("expected 4 workers, got %d", cfg.Render.Workers)
	}
	if cfg.Video.FPS != 24 || cfg.Video.OutputName != "run.mp4" {
		t.Fatalf("video overrides not applied: fps=%d name=%q", cfg.Video.FPS, cfg.Video.OutputName)
	}
	// Unset sections keep defaults.
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected default logging format, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"odd width":      "[render]\nwidth = 641\n",
		"zero fps":       "[video]\nfps = -1\n",
		"bad log format": "[logging]\nformat = \"xml\"\n",
		"neg workers":    "[render]\nworkers = -2\n",
	}
	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := Load(path); err == nil {
				t.Fatalf("expected validation error for %s", name)
			}
		})
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	expanded, err := ExpandPath("~/staging")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if expanded != filepath.Join(home, "staging") {
		t.Fatalf("unexpected expansion %q", expanded)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[video]") {
		t.Fatalf("sample config missing video section")
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StagingDir, cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist", dir)
		}
	}
}
