package validate

// #region veto-type
// VetoType names why a configuration cannot terminate.
type VetoType string

const (
	VetoNoCondition      VetoType = "no_condition"
	VetoZeroCost         VetoType = "zero_cost_budget"
	VetoZeroProbability  VetoType = "zero_probability_target"
	VetoUnreachable      VetoType = "unreachable_target"
	VetoInvalidThreshold VetoType = "invalid_threshold"
)

// #endregion veto-type

// #region veto-signal
// VetoSignal is one detected rejection.
type VetoSignal struct {
	Type   VetoType
	Reason string
}

// #endregion veto-signal

// #region input
// Input is what the validator needs to know about a computation.
type Input struct {
	HasSource   bool
	Probability float64
	Bonus       float64
	Cost        float64
	FixedCount  int      // 0 when the computation is target/budget driven
	Target      *float64 // nil when unset
	Budget      *float64 // nil when unset
}

// #endregion input

// #region decision
// Decision is the validator's verdict. Vetoes is empty when Passed.
type Decision struct {
	Passed bool
	Vetoes []VetoSignal
}

// #endregion decision
