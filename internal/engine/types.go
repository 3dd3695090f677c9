package engine

import (
	"github.com/danielpatrickdp/gcalc/internal/prob"
	"github.com/danielpatrickdp/gcalc/internal/source"
)

// #region termination
// Termination lists the stop conditions. FixedCount 0 means unset; Target and
// Budget may combine and the first one crossed wins. Trailing extra trials
// run after the primary stop without any checks.
type Termination struct {
	FixedCount int
	Target     *float64
	Budget     *float64
	Trailing   int
}

// #endregion termination

// #region config
// Config is the complete, immutable description of one computation.
type Config struct {
	Probability float64
	Bonus       float64
	Cost        float64

	Display     prob.Display
	Termination Termination
	StartOffset int // records hidden from the display window

	// Override rows come from Rows when non-nil, otherwise from Source.
	Source     source.Ref
	Rows       []source.Row
	Columns    source.ColumnMap
	HasHeader  bool
	Fallback   source.Fallback
	Exhaustion source.Exhaustion

	MaxTrials int // 0 disables the iteration cap
}

// DefaultConfig returns a config with no stop condition, full-precision
// fractions, the default column map and fail-fast policies.
func DefaultConfig() Config {
	return Config{
		Display:    prob.DefaultDisplay(),
		Columns:    source.DefaultColumnMap(),
		Fallback:   source.FallbackNone,
		Exhaustion: source.ExhaustRepeat,
	}
}

// HasOverrides reports whether an override source is configured. A
// configured source may still turn out to hold no rows.
func (c Config) HasOverrides() bool {
	return c.Rows != nil || c.Source.Kind != source.RefNone
}

// #endregion config

// #region record
// Record is one trial of output. Cost is cumulative.
type Record struct {
	Index       int     `json:"count"`
	Probability float64 `json:"probability"`
	Formatted   string  `json:"formatted"`
	Cost        float64 `json:"cost"`
	Bonus       float64 `json:"bonus"`
}

// Window is an inclusive range of record positions to display.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Result is an ordered record sequence plus an optional display window.
type Result struct {
	Records []Record
	Window  *Window
}

// Visible returns the records inside the window, or all of them.
func (r Result) Visible() []Record {
	if r.Window == nil {
		return r.Records
	}
	start, end := r.Window.Start, r.Window.End
	if start < 0 {
		start = 0
	}
	if end >= len(r.Records) {
		end = len(r.Records) - 1
	}
	if start > end {
		return nil
	}
	return r.Records[start : end+1]
}

// #endregion record

// #region qualification
// Qualification is the single-line summary of a computation.
type Qualification struct {
	TrialCount       int     `json:"count"`
	FinalCost        float64 `json:"cost"`
	FinalProbability float64 `json:"probability"`
	Formatted        string  `json:"formatted"`
	ClosedForm       bool    `json:"closed_form"`
}

// #endregion qualification
