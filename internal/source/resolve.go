package source

import (
	"errors"
	"math"
	"strconv"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
	"github.com/danielpatrickdp/gcalc/internal/prob"
	"github.com/danielpatrickdp/gcalc/internal/state"
)

var errNotFinite = errors.New("not a finite number")

// #region resolve
// Resolve merges a consumed row into st. Probability and bonus must parse;
// an empty cost means 0. Parse failures go through fallback, domain errors
// never do.
func Resolve(row Row, st *state.StepState, fallback Fallback) error {
	if row.Probability != nil {
		v, err := prob.Parse("probability", *row.Probability)
		if err != nil {
			if v, err = recoverField(fallback, err, st.Probability, st.InitialProbability); err != nil {
				return err
			}
		}
		st.Probability = v
	}

	if row.Bonus != nil {
		v, err := prob.Parse("bonus", *row.Bonus)
		if err != nil {
			if v, err = recoverField(fallback, err, st.Bonus, st.InitialBonus); err != nil {
				return err
			}
		}
		st.Bonus = v
	}

	if row.Cost != nil {
		v, err := parseCost(*row.Cost)
		if err != nil {
			if v, err = recoverField(fallback, err, st.Cost, st.InitialCost); err != nil {
				return err
			}
		}
		st.Cost = v
	}
	return nil
}

// #endregion resolve

// #region helpers
func recoverField(fallback Fallback, err error, prior, initial float64) (float64, error) {
	if !errors.Is(err, calcerr.ErrParse) {
		return 0, err
	}
	switch fallback {
	case FallbackIgnore:
		return prior, nil
	case FallbackRollback:
		return initial, nil
	}
	return 0, err
}

func parseCost(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, calcerr.Parse("cost", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, calcerr.Parse("cost", raw, errNotFinite)
	}
	if v < 0 {
		return 0, calcerr.NegativeCost(v)
	}
	return v, nil
}

// #endregion helpers
