package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Dataset != "upi" {
		t.Errorf("Dataset = %q, want upi", cfg.Dataset)
	}
	if cfg.ForecastHorizon != 3 {
		t.Errorf("ForecastHorizon = %d, want 3", cfg.ForecastHorizon)
	}
	if cfg.Bucket != "" {
		t.Errorf("Bucket = %q, want empty", cfg.Bucket)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "port: \"9090\"\nbucket: upi-exports\nforecast_horizon: 6\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.Bucket != "upi-exports" {
		t.Errorf("Bucket = %q, want upi-exports", cfg.Bucket)
	}
	if cfg.ForecastHorizon != 6 {
		t.Errorf("ForecastHorizon = %d, want 6", cfg.ForecastHorizon)
	}
	// Untouched keys keep their defaults.
	if cfg.Dataset != "upi" {
		t.Errorf("Dataset = %q, want upi", cfg.Dataset)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with missing file should fail")
	}
}
