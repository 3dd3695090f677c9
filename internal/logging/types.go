package logging

import "time"

// #region run-entry
// RunEntry is a single row in the run_log table. OptionsJSON holds the
// engine.Options the run was started with, so the run can be replayed.
type RunEntry struct {
	RunID            string
	Mode             string // "range" | "conditional" | "qualification"
	OptionsJSON      string
	ScheduleName     string
	TrialCount       int
	FinalProbability float64
	FinalCost        float64
	ErrorCode        string
	ErrorMessage     string
	CreatedAt        time.Time
}

// Failed reports whether the run ended in an error.
func (e RunEntry) Failed() bool {
	return e.ErrorCode != "" || e.ErrorMessage != ""
}

// #endregion run-entry
