package validate

import (
	"errors"
	"math"
	"testing"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
)

func f(v float64) *float64 { return &v }

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		wantPass bool
		wantVeto VetoType
	}{
		{
			name:     "target reachable",
			in:       Input{Probability: 0.1, Target: f(0.9)},
			wantPass: true,
		},
		{
			name:     "NaN budget",
			in:       Input{Probability: 0.1, Cost: 1, Budget: f(math.NaN())},
			wantVeto: VetoInvalidThreshold,
		},
		{
			name:     "no condition",
			in:       Input{Probability: 0.1},
			wantVeto: VetoNoCondition,
		},
		{
			name:     "budget with zero cost",
			in:       Input{Probability: 0.1, Budget: f(100)},
			wantVeto: VetoZeroCost,
		},
		{
			name:     "target with zero probability",
			in:       Input{Target: f(0.5)},
			wantVeto: VetoZeroProbability,
		},
		{
			name:     "certain target without full bonus",
			in:       Input{Probability: 0.5, Bonus: 0.2, Target: f(1)},
			wantVeto: VetoUnreachable,
		},
		{
			name:     "certain target with full bonus",
			in:       Input{Probability: 0.5, Bonus: 1, Target: f(1)},
			wantPass: true,
		},
		{
			name:     "source defers zero checks",
			in:       Input{HasSource: true, Budget: f(100)},
			wantPass: true,
		},
		{
			name:     "source still needs a condition",
			in:       Input{HasSource: true},
			wantVeto: VetoNoCondition,
		},
		{
			name:     "fixed count skips loop checks",
			in:       Input{FixedCount: 10},
			wantPass: true,
		},
		{
			name:     "target out of range",
			in:       Input{FixedCount: 10, Target: f(1.5)},
			wantVeto: VetoInvalidThreshold,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.in)
			if d.Passed != tt.wantPass {
				t.Fatalf("expected passed=%v, got %v (%+v)", tt.wantPass, d.Passed, d.Vetoes)
			}
			if tt.wantPass {
				return
			}
			if d.Vetoes[0].Type != tt.wantVeto {
				t.Fatalf("expected veto %s, got %s", tt.wantVeto, d.Vetoes[0].Type)
			}
		})
	}
}

func TestCheckReturnsConfigurationError(t *testing.T) {
	err := Check(Input{Budget: f(50), Target: f(0.5)})
	if !errors.Is(err, calcerr.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	var e *calcerr.Error
	if !errors.As(err, &e) || e.Metadata["veto"] != string(VetoZeroCost) {
		t.Fatalf("expected first veto %s, got %v", VetoZeroCost, err)
	}
}

func TestCheckPasses(t *testing.T) {
	if err := Check(Input{Probability: 0.1, Target: f(0.9)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
