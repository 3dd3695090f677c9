// Package state holds the per-trial probability recurrence.
package state

import "math"

// #region constructor
// New creates a state with no mass resolved yet and snapshots the inputs.
func New(probability, bonus, cost float64) *StepState {
	s := &StepState{
		Probability:       probability,
		Bonus:             bonus,
		Cost:              cost,
		CumulativeSuccess: 0,
		FailCarry:         1,
	}
	s.Snapshot()
	return s
}

// #endregion constructor

// #region snapshot
// Snapshot re-captures the current probability, bonus and cost as the
// rollback values.
func (s *StepState) Snapshot() {
	s.InitialProbability = s.Probability
	s.InitialBonus = s.Bonus
	s.InitialCost = s.Cost
}

// #endregion snapshot

// #region advance
// SuccessRate is the independent success chance of the next trial, capped at 1.
func (s *StepState) SuccessRate() float64 {
	return math.Min(1, s.Probability+s.Bonus)
}

// Advance resolves one trial: the success fraction of the still-unresolved
// mass moves to CumulativeSuccess, the rest carries forward.
func (s *StepState) Advance() {
	success := s.SuccessRate()
	s.CumulativeSuccess += s.FailCarry * success
	s.FailCarry *= math.Max(0, 1-success)
}

// #endregion advance
