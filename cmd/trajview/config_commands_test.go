package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	cfgPath := writeCLIConfig(t)
	out, _, err = runCLI(t, []string{"config", "validate"}, cfgPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, cfgPath)
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	_, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil {
		t.Fatal("expected error for existing config without --overwrite")
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigPathPrintsResolvedPath(t *testing.T) {
	cfgPath := writeCLIConfig(t)
	out, _, err := runCLI(t, []string{"config", "path"}, cfgPath)
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	requireContains(t, out, cfgPath)
}

func TestConfigShowListsSettings(t *testing.T) {
	out, _, err := runCLI(t, []string{"config", "show"}, writeCLIConfig(t))
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "video.fps")
	requireContains(t, out, "argon_simulation.mp4")
	requireContains(t, out, "render.workers")
}
