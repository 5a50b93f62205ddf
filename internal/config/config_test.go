package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("burydays-test", pflag.ContinueOnError)
	fs.String("db-path", "bury.db", "")
	fs.Int("sweep-every", 10, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlagSet(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "bury.db" {
		t.Errorf("Expected default db path, got %q", cfg.DBPath)
	}
	if cfg.SweepEvery != 10 {
		t.Errorf("Expected default sweep_every 10, got %d", cfg.SweepEvery)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burydays.yaml")
	content := "db_path: /data/bury.db\nsweep_every: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(newFlagSet(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "/data/bury.db" {
		t.Errorf("Expected file db path, got %q", cfg.DBPath)
	}
	if cfg.SweepEvery != 5 {
		t.Errorf("Expected file sweep_every 5, got %d", cfg.SweepEvery)
	}
}

func TestLoadMissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(newFlagSet(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Missing config file should not be fatal: %v", err)
	}
	if cfg.DBPath != "bury.db" {
		t.Errorf("Expected defaults when file is missing, got %q", cfg.DBPath)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burydays.yaml")
	if err := os.WriteFile(path, []byte("db_path: /data/bury.db\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("BURYDAYS_DB_PATH", "/env/bury.db")

	cfg, err := Load(newFlagSet(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "/env/bury.db" {
		t.Errorf("Expected env to override file, got %q", cfg.DBPath)
	}
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Setenv("BURYDAYS_DB_PATH", "/env/bury.db")

	fs := newFlagSet()
	if err := fs.Parse([]string{"--db-path", "/flag/bury.db"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := Load(fs, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "/flag/bury.db" {
		t.Errorf("Expected explicit flag to win, got %q", cfg.DBPath)
	}
}

func TestLoadRejectsInvalidSweepEvery(t *testing.T) {
	fs := newFlagSet()
	if err := fs.Parse([]string{"--sweep-every", "0"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if _, err := Load(fs, ""); err == nil {
		t.Error("Expected validation error for sweep_every=0")
	}
}
