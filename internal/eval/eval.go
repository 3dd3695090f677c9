package eval

import (
	"fmt"

	"github.com/danielpatrickdp/gcalc/internal/engine"
)

// #region eval-harness
// EvalHarness checks the guarantees every record sequence must meet.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run audits records: non-empty, dense 1-based indices, probabilities in
// [0, 1], non-decreasing probability and cost.
func (h *EvalHarness) Run(records []engine.Record) EvalResult {
	tol := h.config.Tolerance
	var metrics []EvalMetric
	var failReasons []string

	// 1. Non-empty
	nonEmpty := len(records) > 0
	metrics = append(metrics, EvalMetric{Name: "non_empty", Pass: nonEmpty})
	if !nonEmpty {
		failReasons = append(failReasons, "record sequence is empty")
	}

	// 2. Dense indices
	var gap float64
	for i, r := range records {
		if r.Index != i+1 {
			gap = float64(r.Index - (i + 1))
			failReasons = append(failReasons, fmt.Sprintf("record %d has index %d", i+1, r.Index))
			break
		}
	}
	metrics = append(metrics, EvalMetric{Name: "dense_index", Value: gap, Pass: gap == 0})

	// 3. Probability range
	var outside float64
	for _, r := range records {
		if d := r.Probability - 1; d > outside {
			outside = d
		}
		if d := -r.Probability; d > outside {
			outside = d
		}
	}
	rangePass := outside <= tol
	metrics = append(metrics, EvalMetric{Name: "probability_range", Value: outside, Pass: rangePass})
	if !rangePass {
		failReasons = append(failReasons, fmt.Sprintf("probability leaves [0, 1] by %.3g", outside))
	}

	// 4-5. Monotonicity
	probDrop := worstDrop(records, func(r engine.Record) float64 { return r.Probability })
	probPass := probDrop <= tol
	metrics = append(metrics, EvalMetric{Name: "probability_monotonic", Value: probDrop, Pass: probPass})
	if !probPass {
		failReasons = append(failReasons, fmt.Sprintf("cumulative probability decreased by %.3g", probDrop))
	}

	costDrop := worstDrop(records, func(r engine.Record) float64 { return r.Cost })
	costPass := costDrop <= tol
	metrics = append(metrics, EvalMetric{Name: "cost_monotonic", Value: costDrop, Pass: costPass})
	if !costPass {
		failReasons = append(failReasons, fmt.Sprintf("total cost decreased by %.3g", costDrop))
	}

	reason := "all checks passed"
	if len(failReasons) > 0 {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return EvalResult{
		Passed:  len(failReasons) == 0,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion eval-harness

// #region helpers
// worstDrop returns the largest decrease between consecutive records.
func worstDrop(records []engine.Record, value func(engine.Record) float64) float64 {
	var worst float64
	for i := 1; i < len(records); i++ {
		if d := value(records[i-1]) - value(records[i]); d > worst {
			worst = d
		}
	}
	return worst
}

// #endregion helpers
