// Package closedform computes cumulative success directly from the geometric
// series when odds are constant for the whole computation.
//
// The series sums the per-trial first-success terms p·(1-p)^(k-1), so the
// first term is p and the ratio is the failure rate 1-p:
//
//	S(n) = p·(1 - (1-p)^n) / (1 - (1-p)) = 1 - (1-p)^n
//
// Both directions go through Log1p and Expm1 so that a p too small to
// change 1-p in float64 still yields a finite answer.
//
// Bonus is not compounded into the series. It is added to the displayed value
// only, which can disagree with the per-trial recurrence when bonus > 0.
package closedform

import (
	"math"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
)

// #region sum
// Sum is the cumulative success probability after n trials at constant p.
func Sum(p float64, n int) float64 {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return -math.Expm1(float64(n) * math.Log1p(-p))
}

// Displayed is Sum with bonus added afterwards, capped at 1.
func Displayed(p, bonus float64, n int) float64 {
	return math.Min(1, Sum(p, n)+bonus)
}

// #endregion sum

// #region min-trials
// Limits bounds the inverse computation. Nil fields are inactive.
type Limits struct {
	Target *float64
	Budget *float64
	Cost   float64
}

// MinTrials returns the smallest n with S(n) >= target, capped at
// floor(budget / cost) when a budget is active. The result is at least 1.
func MinTrials(p, bonus float64, lim Limits) (int, error) {
	if lim.Target == nil && lim.Budget == nil {
		return 0, calcerr.Configuration("either target probability or budget should be present")
	}

	n := math.MaxInt
	if lim.Target != nil {
		t, err := trialsForTarget(p, bonus, *lim.Target)
		if err != nil {
			return 0, err
		}
		n = t
	}
	if lim.Budget != nil {
		if lim.Cost <= 0 {
			if lim.Target == nil {
				return 0, calcerr.Configuration("0 cost with budget will incur infinite loop")
			}
		} else if affordable := math.Floor(*lim.Budget / lim.Cost); affordable < float64(n) {
			n = int(affordable)
		}
	}
	if n == math.MaxInt {
		return 0, calcerr.Configuration("stop condition needs more trials than can be counted")
	}
	if n < 1 {
		n = 1
	}
	return n, nil
}

// #endregion min-trials

// #region helpers
// trialsForTarget solves (1-p)^n <= 1-target with a base-(1-p) logarithm.
// Counts past math.MaxInt come back as math.MaxInt.
func trialsForTarget(p, bonus, target float64) (int, error) {
	switch {
	case target <= 0 || p >= 1:
		return 1, nil
	case target >= 1:
		if bonus >= 1 {
			return 1, nil
		}
		return 0, calcerr.Configuration("target probability 1.0 is unreachable while bonus is below 1.0")
	case p <= 0:
		return 0, calcerr.Configuration("0 probability with target probability will incur infinite loop")
	}
	n := math.Ceil(math.Log1p(-target)/math.Log1p(-p) - 1e-12)
	if n >= float64(math.MaxInt) {
		return math.MaxInt, nil
	}
	return int(n), nil
}

// #endregion helpers
