// Package replay runs recorded calculation scenarios through the engine and
// compares the output against expectations.
package replay

import (
	"errors"
	"fmt"
	"math"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
	"github.com/danielpatrickdp/gcalc/internal/engine"
	"github.com/danielpatrickdp/gcalc/internal/eval"
)

// #region types
// Operation selects which engine entry point a scenario exercises.
type Operation string

const (
	OpRange         Operation = "range"
	OpConditional   Operation = "conditional"
	OpQualification Operation = "qualification"
)

// Expectation is the domain form of FixtureExpected.
type Expectation struct {
	ErrorCode        calcerr.Code
	Count            int
	FinalProbability *float64
	FinalCost        *float64
	Checkpoints      []FixtureCheckpoint
	Tolerance        float64
}

// Scenario is a single recorded computation.
type Scenario struct {
	Name      string
	Operation Operation
	Options   engine.Options
	Expected  Expectation
}

// ReplayConfig holds harness-wide settings.
type ReplayConfig struct {
	EvalConfig       eval.EvalConfig
	DefaultTolerance float64
}

// DefaultReplayConfig returns sensible defaults.
func DefaultReplayConfig() ReplayConfig {
	return ReplayConfig{
		EvalConfig:       eval.DefaultEvalConfig(),
		DefaultTolerance: 1e-9,
	}
}

// ReplayResult captures the outcome of replaying one scenario.
type ReplayResult struct {
	Name   string
	Action string // "match" | "diverge" | "eval_fail"
	Reason string

	Records   int
	ErrorCode calcerr.Code

	// Nil for qualification and error scenarios.
	EvalResult *eval.EvalResult
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	Total        int
	Matches      int
	Diverged     int
	EvalFailures int
}

// #endregion types

// #region replay
// Replay runs every scenario independently. Scenarios never share state.
func Replay(scenarios []Scenario, config ReplayConfig) []ReplayResult {
	results := make([]ReplayResult, 0, len(scenarios))
	evalInst := eval.NewEvalHarness(config.EvalConfig)

	for _, sc := range scenarios {
		tol := sc.Expected.Tolerance
		if tol == 0 {
			tol = config.DefaultTolerance
		}
		results = append(results, replayOne(sc, evalInst, tol))
	}
	return results
}

func replayOne(sc Scenario, evalInst *eval.EvalHarness, tol float64) ReplayResult {
	res := ReplayResult{Name: sc.Name}

	cfg, err := engine.FromOptions(sc.Options)
	var records []engine.Record
	var qual engine.Qualification
	if err == nil {
		switch sc.Operation {
		case OpRange:
			var r engine.Result
			r, err = engine.Range(cfg)
			records = r.Records
		case OpConditional:
			var r engine.Result
			r, err = engine.Conditional(cfg)
			records = r.Records
		case OpQualification:
			qual, err = engine.Qualify(cfg)
		default:
			err = fmt.Errorf("unknown operation %q", sc.Operation)
		}
	}

	// 1. Error scenarios
	if err != nil {
		var ce *calcerr.Error
		if errors.As(err, &ce) {
			res.ErrorCode = ce.Code
		}
		if sc.Expected.ErrorCode != "" && res.ErrorCode == sc.Expected.ErrorCode {
			return match(res, fmt.Sprintf("expected %s error", res.ErrorCode))
		}
		return diverge(res, fmt.Sprintf("unexpected error: %v", err))
	}
	if sc.Expected.ErrorCode != "" {
		return diverge(res, fmt.Sprintf("expected %s error, got success", sc.Expected.ErrorCode))
	}

	// 2. Qualification summary
	if sc.Operation == OpQualification {
		res.Records = qual.TrialCount
		if reason := compareSummary(sc.Expected, qual.TrialCount, qual.FinalProbability, qual.FinalCost, tol); reason != "" {
			return diverge(res, reason)
		}
		return match(res, "summary matches")
	}

	// 3. Record sequence
	res.Records = len(records)
	evalResult := evalInst.Run(records)
	res.EvalResult = &evalResult
	if !evalResult.Passed {
		res.Action = "eval_fail"
		res.Reason = evalResult.Reason
		return res
	}
	last := records[len(records)-1]
	if reason := compareSummary(sc.Expected, len(records), last.Probability, last.Cost, tol); reason != "" {
		return diverge(res, reason)
	}
	if reason := compareCheckpoints(sc.Expected.Checkpoints, records, tol); reason != "" {
		return diverge(res, reason)
	}
	return match(res, "records match")
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult) ReplaySummary {
	s := ReplaySummary{Total: len(results)}
	for _, r := range results {
		switch r.Action {
		case "match":
			s.Matches++
		case "diverge":
			s.Diverged++
		case "eval_fail":
			s.EvalFailures++
		}
	}
	return s
}

// #endregion replay

// #region compare
func compareSummary(exp Expectation, count int, p, cost, tol float64) string {
	if exp.Count != 0 && exp.Count != count {
		return fmt.Sprintf("expected count %d, got %d", exp.Count, count)
	}
	if exp.FinalProbability != nil && math.Abs(*exp.FinalProbability-p) > tol {
		return fmt.Sprintf("expected final probability %v, got %v", *exp.FinalProbability, p)
	}
	if exp.FinalCost != nil && math.Abs(*exp.FinalCost-cost) > tol {
		return fmt.Sprintf("expected final cost %v, got %v", *exp.FinalCost, cost)
	}
	return ""
}

func compareCheckpoints(checkpoints []FixtureCheckpoint, records []engine.Record, tol float64) string {
	for _, cp := range checkpoints {
		if cp.Count < 1 || cp.Count > len(records) {
			return fmt.Sprintf("checkpoint %d outside %d records", cp.Count, len(records))
		}
		r := records[cp.Count-1]
		if cp.Probability != nil && math.Abs(*cp.Probability-r.Probability) > tol {
			return fmt.Sprintf("trial %d: expected probability %v, got %v", cp.Count, *cp.Probability, r.Probability)
		}
		if cp.Cost != nil && math.Abs(*cp.Cost-r.Cost) > tol {
			return fmt.Sprintf("trial %d: expected cost %v, got %v", cp.Count, *cp.Cost, r.Cost)
		}
		if cp.Bonus != nil && math.Abs(*cp.Bonus-r.Bonus) > tol {
			return fmt.Sprintf("trial %d: expected bonus %v, got %v", cp.Count, *cp.Bonus, r.Bonus)
		}
		if cp.Formatted != "" && cp.Formatted != r.Formatted {
			return fmt.Sprintf("trial %d: expected %q, got %q", cp.Count, cp.Formatted, r.Formatted)
		}
	}
	return ""
}

func match(res ReplayResult, reason string) ReplayResult {
	res.Action = "match"
	res.Reason = reason
	return res
}

func diverge(res ReplayResult, reason string) ReplayResult {
	res.Action = "diverge"
	res.Reason = reason
	return res
}

// #endregion compare
