package eval

// #region eval-config
// EvalConfig holds tolerances for the record audit.
type EvalConfig struct {
	Tolerance float64 // allowed floating drift in monotonicity and range checks
}

// DefaultEvalConfig returns the tolerance used by the replay harness.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{Tolerance: 1e-9}
}

// #endregion eval-config

// #region eval-metric
// EvalMetric captures a single check result.
type EvalMetric struct {
	Name  string
	Value float64 // worst observed violation, 0 when clean
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the outcome of auditing one record sequence.
type EvalResult struct {
	Passed  bool
	Metrics []EvalMetric
	Reason  string
}

// #endregion eval-result
