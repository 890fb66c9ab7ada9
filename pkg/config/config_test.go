package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LevelsPath != "./levels" {
		t.Fatalf("LevelsPath = %q", cfg.LevelsPath)
	}
	if cfg.MaxOperations != 1000 {
		t.Fatalf("MaxOperations = %d", cfg.MaxOperations)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("log settings = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "levelsPath: /opt/levels\nmaxOperations: 250\nlogLevel: debug\nlogFormat: json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LevelsPath != "/opt/levels" || cfg.MaxOperations != 250 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("log settings = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GRIDBOT_LEVELS_PATH", "/env/levels")
	t.Setenv("GRIDBOT_MAX_OPERATIONS", "42")
	t.Setenv("GRIDBOT_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LevelsPath != "/env/levels" || cfg.MaxOperations != 42 || cfg.LogLevel != "warn" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestInvalidMaxOperationsEnv(t *testing.T) {
	for _, bad := range []string{"abc", "0", "-5"} {
		t.Setenv("GRIDBOT_MAX_OPERATIONS", bad)
		if _, err := Load(""); err == nil {
			t.Fatalf("%q: Load should fail", bad)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load should fail for a missing file")
	}
}
