// Package engine drives the per-trial accumulation: it pulls overrides from
// the source, advances the step state, charges cost, formats each record and
// applies the stop conditions.
package engine

import (
	"math"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
	"github.com/danielpatrickdp/gcalc/internal/closedform"
	"github.com/danielpatrickdp/gcalc/internal/prob"
	"github.com/danielpatrickdp/gcalc/internal/source"
	"github.com/danielpatrickdp/gcalc/internal/state"
	"github.com/danielpatrickdp/gcalc/internal/validate"
)

// #region operations
// Range runs a fixed number of trials and windows the output from
// StartOffset to the last record.
func Range(cfg Config) (Result, error) {
	if cfg.Termination.FixedCount <= 0 {
		return Result{}, calcerr.Configuration("range requires a positive trial count")
	}
	records, err := Run(cfg)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Records: records,
		Window:  &Window{Start: cfg.StartOffset, End: len(records) - 1},
	}, nil
}

// Conditional runs until the target probability or the budget is crossed.
func Conditional(cfg Config) (Result, error) {
	if cfg.Termination.FixedCount > 0 {
		return Result{}, calcerr.Configuration("conditional calculation does not take a trial count")
	}
	records, err := Run(cfg)
	if err != nil {
		return Result{}, err
	}
	res := Result{Records: records}
	if cfg.StartOffset > 0 {
		res.Window = &Window{Start: cfg.StartOffset, End: len(records) - 1}
	}
	return res, nil
}

// Qualify summarizes where the computation stops. Without an override source
// or a fixed count it uses the closed form instead of the loop.
func Qualify(cfg Config) (Qualification, error) {
	src, err := prepare(cfg)
	if err != nil {
		return Qualification{}, err
	}

	if src == nil && cfg.Termination.FixedCount == 0 {
		n, err := closedform.MinTrials(cfg.Probability, cfg.Bonus, closedform.Limits{
			Target: cfg.Termination.Target,
			Budget: cfg.Termination.Budget,
			Cost:   cfg.Cost,
		})
		if err != nil {
			return Qualification{}, err
		}
		p := closedform.Displayed(cfg.Probability, cfg.Bonus, n)
		return Qualification{
			TrialCount:       n,
			FinalCost:        float64(n) * cfg.Cost,
			FinalProbability: p,
			Formatted:        prob.Format(p, cfg.Display),
			ClosedForm:       true,
		}, nil
	}

	cfg.Termination.Trailing = 0
	records, err := run(cfg, src)
	if err != nil {
		return Qualification{}, err
	}
	last := records[len(records)-1]
	return Qualification{
		TrialCount:       len(records),
		FinalCost:        last.Cost,
		FinalProbability: last.Probability,
		Formatted:        last.Formatted,
	}, nil
}

// #endregion operations

// #region check
// Check validates cfg in full before any trial runs. The override source is
// opened so that a blank one is validated as no source at all.
func Check(cfg Config) error {
	_, err := prepare(cfg)
	return err
}

func prepare(cfg Config) (*source.Source, error) {
	if err := checkShape(cfg); err != nil {
		return nil, err
	}
	src, err := openSource(cfg)
	if err != nil {
		return nil, err
	}
	err = validate.Check(validate.Input{
		HasSource:   src != nil,
		Probability: cfg.Probability,
		Bonus:       cfg.Bonus,
		Cost:        cfg.Cost,
		FixedCount:  cfg.Termination.FixedCount,
		Target:      cfg.Termination.Target,
		Budget:      cfg.Termination.Budget,
	})
	if err != nil {
		return nil, err
	}
	return src, nil
}

func checkShape(cfg Config) error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"probability", cfg.Probability},
		{"bonus", cfg.Bonus},
	} {
		if math.IsNaN(v.value) || v.value < 0 || v.value > 1 {
			return calcerr.Configuration("%s %v is outside [0, 1]", v.name, v.value)
		}
	}
	if math.IsNaN(cfg.Cost) || math.IsInf(cfg.Cost, 0) {
		return calcerr.Configuration("cost %v is not a finite number", cfg.Cost)
	}
	if cfg.Cost < 0 {
		return calcerr.NegativeCost(cfg.Cost)
	}
	if cfg.Termination.FixedCount < 0 || cfg.Termination.Trailing < 0 || cfg.StartOffset < 0 || cfg.MaxTrials < 0 {
		return calcerr.Configuration("counts and offsets must not be negative")
	}
	if cfg.Rows != nil && cfg.Source.Kind != source.RefNone {
		return calcerr.Configuration("override rows and an override source reference are mutually exclusive")
	}
	return nil
}

// #endregion check

// #region run
// Run validates cfg and drives the trial loop. On any error no records are
// returned.
func Run(cfg Config) ([]Record, error) {
	src, err := prepare(cfg)
	if err != nil {
		return nil, err
	}
	return run(cfg, src)
}

func run(cfg Config, src *source.Source) ([]Record, error) {
	st := state.New(cfg.Probability, cfg.Bonus, cfg.Cost)
	term := cfg.Termination
	records := make([]Record, 0, capacityHint(term))

	var totalCost float64
	stopped := false
	trailing := 0

	for trial := 1; ; trial++ {
		if !stopped && cfg.MaxTrials > 0 && trial > cfg.MaxTrials {
			return nil, calcerr.Configuration("no stop condition reached within %d trials", cfg.MaxTrials)
		}

		// 1. Overrides
		if src != nil {
			if err := applyOverrides(src, st, trial, cfg); err != nil {
				return nil, err
			}
			if trial == 1 {
				st.Snapshot()
			}
		}

		// 2. Recurrence
		st.Advance()

		// 3. Cost is charged for every trial attempted
		totalCost += st.Cost

		// 4-5. Emit
		records = append(records, Record{
			Index:       trial,
			Probability: st.CumulativeSuccess,
			Formatted:   prob.Format(st.CumulativeSuccess, cfg.Display),
			Cost:        totalCost,
			Bonus:       st.Bonus,
		})

		// 6. Termination
		if stopped {
			trailing--
			if trailing <= 0 {
				break
			}
			continue
		}
		if shouldStop(term, st.CumulativeSuccess, totalCost, trial) {
			if term.Trailing == 0 {
				break
			}
			stopped = true
			trailing = term.Trailing
		}
	}
	return records, nil
}

// #endregion run

// #region helpers
// openSource returns nil when no override rows are configured or the
// configured source holds none.
func openSource(cfg Config) (*source.Source, error) {
	if cfg.Rows != nil {
		if len(cfg.Rows) == 0 {
			return nil, nil
		}
		return source.New(cfg.Rows), nil
	}
	src, err := source.Load(cfg.Source, cfg.Columns, cfg.HasHeader)
	if err != nil || src == nil || src.Len() == 0 {
		return nil, err
	}
	return src, nil
}

func applyOverrides(src *source.Source, st *state.StepState, trial int, cfg Config) error {
	step := src.Next(trial)
	switch step.Cursor {
	case source.CursorAdvance:
		if err := source.Resolve(step.Row, st, cfg.Fallback); err != nil {
			return calcerr.WithTrial(err, trial)
		}
	case source.CursorExhausted:
		if cfg.Exhaustion == source.ExhaustPanic {
			return calcerr.SourceExhausted(trial)
		}
	}
	return nil
}

// shouldStop applies target, then budget, then fixed count. A fully
// resolved state satisfies any target, including 1.0.
func shouldStop(term Termination, success, totalCost float64, trial int) bool {
	if term.Target != nil && (success > *term.Target || success >= 1) {
		return true
	}
	if term.Budget != nil && totalCost > *term.Budget {
		return true
	}
	return term.FixedCount > 0 && trial >= term.FixedCount
}

func capacityHint(term Termination) int {
	const maxHint = 1 << 16
	if n := term.FixedCount + term.Trailing; term.FixedCount > 0 && n < maxHint {
		return n
	}
	return 64
}

// #endregion helpers
