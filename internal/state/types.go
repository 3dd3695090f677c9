package state

// #region step-state
// StepState is the mutable per-trial accumulator. CumulativeSuccess and
// FailCarry always sum to 1.
type StepState struct {
	Probability float64 // base per-trial success probability
	Bonus       float64 // additive pity boost
	Cost        float64 // cost charged for the next trial

	CumulativeSuccess float64 // P(at least one success so far)
	FailCarry         float64 // P(no success so far)

	// Snapshots used by the rollback fallback. Not the previous trial's values.
	InitialProbability float64
	InitialBonus       float64
	InitialCost        float64
}

// #endregion step-state
