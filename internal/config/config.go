// Package config loads CLI defaults from GCALC_* environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// #region config
// Config holds defaults that flags may override.
type Config struct {
	Precision  int    `env:"GCALC_PRECISION" envDefault:"-1"`
	Display    string `env:"GCALC_DISPLAY" envDefault:"fraction"`
	Format     string `env:"GCALC_FORMAT" envDefault:"console"`
	Fallback   string `env:"GCALC_FALLBACK" envDefault:"none"`
	Exhaustion string `env:"GCALC_EXHAUSTION" envDefault:"repeat"`
	MaxTrials  int    `env:"GCALC_MAX_TRIALS" envDefault:"10000000"`
	ScheduleDB string `env:"GCALC_SCHEDULE_DB" envDefault:"gcalc_schedules.db"`
	Verbose    bool   `env:"GCALC_VERBOSE"`
	RunLog     bool   `env:"GCALC_RUN_LOG"`
}

// #endregion config

// #region load
// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// #endregion load

// #region exit
// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// #endregion exit
