// Package validate rejects configurations that would never terminate or that
// ask for an unreachable goal.
package validate

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
)

// #region evaluate
// Evaluate collects every veto for in. Computations with a fixed count always
// terminate and only get their thresholds checked.
func Evaluate(in Input) Decision {
	var vetoes []VetoSignal

	if in.Target != nil && (math.IsNaN(*in.Target) || *in.Target < 0 || *in.Target > 1) {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoInvalidThreshold,
			Reason: fmt.Sprintf("target probability %v is outside [0, 1]", *in.Target),
		})
	}
	if in.Budget != nil && (math.IsNaN(*in.Budget) || *in.Budget < 0) {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoInvalidThreshold,
			Reason: fmt.Sprintf("budget %v is not a non-negative number", *in.Budget),
		})
	}

	if in.FixedCount > 0 {
		return decide(vetoes)
	}

	// 1. Ambiguous stopping condition
	if in.Target == nil && in.Budget == nil {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoNoCondition,
			Reason: "either target probability or budget should be present",
		})
		return decide(vetoes)
	}

	// Override rows can change any of these per trial.
	if in.HasSource {
		return decide(vetoes)
	}

	// 2. Budget can never be exceeded
	if in.Budget != nil && in.Cost == 0 {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoZeroCost,
			Reason: "0 cost with budget will incur infinite loop",
		})
	}

	// 3. Target can never be reached
	if in.Target != nil && in.Probability == 0 {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoZeroProbability,
			Reason: "0 probability with target probability will incur infinite loop",
		})
	}

	// 4. Unreachable even in the limit
	if in.Target != nil && *in.Target == 1 && in.Bonus < 1 {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoUnreachable,
			Reason: "target probability 1.0 is unreachable while bonus is below 1.0",
		})
	}

	return decide(vetoes)
}

// Check runs Evaluate and turns the first veto into a configuration error.
func Check(in Input) error {
	d := Evaluate(in)
	if d.Passed {
		return nil
	}
	err := calcerr.Configuration("%s", d.Vetoes[0].Reason)
	err.Metadata = map[string]string{"veto": string(d.Vetoes[0].Type)}
	if len(d.Vetoes) > 1 {
		err.Message = fmt.Sprintf("%s (and %d more)", err.Message, len(d.Vetoes)-1)
	}
	return err
}

// #endregion evaluate

// #region helpers
func decide(vetoes []VetoSignal) Decision {
	return Decision{Passed: len(vetoes) == 0, Vetoes: vetoes}
}

// #endregion helpers
