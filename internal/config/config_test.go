package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Precision != -1 || cfg.Display != "fraction" || cfg.Format != "console" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.MaxTrials != 10000000 {
		t.Fatalf("expected default cap 10000000, got %d", cfg.MaxTrials)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GCALC_PRECISION", "3")
	t.Setenv("GCALC_FALLBACK", "rollback")
	t.Setenv("GCALC_VERBOSE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Precision != 3 || cfg.Fallback != "rollback" || !cfg.Verbose {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadError(t *testing.T) {
	t.Setenv("GCALC_MAX_TRIALS", "lots")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
