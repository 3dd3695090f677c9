package replay

import (
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
	"github.com/danielpatrickdp/gcalc/internal/engine"
)

func loadScenarios(t *testing.T) []Scenario {
	t.Helper()
	f, err := LoadFixture(filepath.Join("testdata", "scenarios.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	scenarios, err := f.ToScenarios()
	if err != nil {
		t.Fatalf("ToScenarios: %v", err)
	}
	return scenarios
}

// 1. Every reference scenario replays cleanly.
func TestReplay_ReferenceScenarios(t *testing.T) {
	scenarios := loadScenarios(t)
	results := Replay(scenarios, DefaultReplayConfig())

	if len(results) != len(scenarios) {
		t.Fatalf("expected %d results, got %d", len(scenarios), len(results))
	}
	for _, r := range results {
		if r.Action != "match" {
			t.Errorf("%s: %s (%s)", r.Name, r.Action, r.Reason)
		}
	}

	s := Summarize(results)
	if s.Matches != len(scenarios) || s.Diverged != 0 || s.EvalFailures != 0 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

// 2. Record scenarios carry an eval result, error scenarios record the code.
func TestReplay_ResultDetails(t *testing.T) {
	results := Replay(loadScenarios(t), DefaultReplayConfig())
	byName := make(map[string]ReplayResult, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}

	fixed := byName["fixed-count"]
	if fixed.EvalResult == nil || !fixed.EvalResult.Passed {
		t.Fatalf("expected passing eval on fixed-count, got %+v", fixed.EvalResult)
	}
	if fixed.Records != 5 {
		t.Fatalf("expected 5 records, got %d", fixed.Records)
	}

	budget := byName["zero-cost-budget"]
	if budget.ErrorCode != calcerr.CodeConfiguration {
		t.Fatalf("expected configuration error, got %q", budget.ErrorCode)
	}
	if budget.EvalResult != nil {
		t.Fatal("expected no eval result on error scenario")
	}
}

// 3. A wrong expectation is reported as divergence.
func TestReplay_Divergence(t *testing.T) {
	wrong := 0.5
	scenarios := []Scenario{
		{
			Name:      "wrong-final",
			Operation: OpRange,
			Options:   engine.Options{Probability: "0.3", FixedCount: 5},
			Expected:  Expectation{FinalProbability: &wrong},
		},
		{
			Name:      "missing-error",
			Operation: OpRange,
			Options:   engine.Options{Probability: "0.3", FixedCount: 1},
			Expected:  Expectation{ErrorCode: calcerr.CodeParse},
		},
		{
			Name:      "wrong-error",
			Operation: OpConditional,
			Options:   engine.Options{Probability: "0.3"},
			Expected:  Expectation{ErrorCode: calcerr.CodeDomain},
		},
	}

	results := Replay(scenarios, DefaultReplayConfig())
	for _, r := range results {
		if r.Action != "diverge" {
			t.Errorf("%s: expected diverge, got %s (%s)", r.Name, r.Action, r.Reason)
		}
	}
	if s := Summarize(results); s.Diverged != 3 {
		t.Fatalf("expected 3 diverged, got %+v", s)
	}
}

// 4. Operation defaults from the fixed count.
func TestFixtureScenario_DefaultOperation(t *testing.T) {
	fs := FixtureScenario{Name: "x", Options: engine.Options{FixedCount: 3}}
	s, err := fs.ToScenario()
	if err != nil {
		t.Fatalf("ToScenario: %v", err)
	}
	if s.Operation != OpRange {
		t.Fatalf("expected range, got %s", s.Operation)
	}

	fs = FixtureScenario{Name: "y", Operation: "simulate"}
	if _, err := fs.ToScenario(); err == nil {
		t.Fatal("expected error for unknown operation")
	}
}

// 5. Scenarios do not leak state into each other.
func TestReplay_Independent(t *testing.T) {
	scenarios := loadScenarios(t)
	first := Replay(scenarios, DefaultReplayConfig())
	second := Replay(scenarios, DefaultReplayConfig())
	for i := range first {
		if first[i].Action != second[i].Action || first[i].Records != second[i].Records {
			t.Fatalf("scenario %s differs between runs", first[i].Name)
		}
	}
}
