package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
	"github.com/danielpatrickdp/gcalc/internal/engine"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a scenario file.
type Fixture struct {
	Description string            `json:"description"`
	Scenarios   []FixtureScenario `json:"scenarios"`
}

// FixtureScenario is one computation and what it must produce.
type FixtureScenario struct {
	Name      string          `json:"name"`
	Operation string          `json:"operation"` // "range" | "conditional" | "qualification"
	Options   engine.Options  `json:"options"`
	Expected  FixtureExpected `json:"expected"`
}

// FixtureExpected holds the assertions. Unset fields are not checked.
type FixtureExpected struct {
	Error            string              `json:"error,omitempty"` // calcerr code
	Count            int                 `json:"count,omitempty"`
	FinalProbability *float64            `json:"final_probability,omitempty"`
	FinalCost        *float64            `json:"final_cost,omitempty"`
	Checkpoints      []FixtureCheckpoint `json:"checkpoints,omitempty"`
	Tolerance        float64             `json:"tolerance,omitempty"`
}

// FixtureCheckpoint pins the record for one trial.
type FixtureCheckpoint struct {
	Count       int      `json:"count"`
	Probability *float64 `json:"probability,omitempty"`
	Cost        *float64 `json:"cost,omitempty"`
	Bonus       *float64 `json:"bonus,omitempty"`
	Formatted   string   `json:"formatted,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToScenario converts a FixtureScenario to a domain Scenario.
func (fs *FixtureScenario) ToScenario() (Scenario, error) {
	op := Operation(fs.Operation)
	switch op {
	case OpRange, OpConditional, OpQualification:
	case "":
		op = OpRange
		if fs.Options.FixedCount == 0 {
			op = OpConditional
		}
	default:
		return Scenario{}, fmt.Errorf("scenario %s: unknown operation %q", fs.Name, fs.Operation)
	}
	return Scenario{
		Name:      fs.Name,
		Operation: op,
		Options:   fs.Options,
		Expected: Expectation{
			ErrorCode:        calcerr.Code(fs.Expected.Error),
			Count:            fs.Expected.Count,
			FinalProbability: fs.Expected.FinalProbability,
			FinalCost:        fs.Expected.FinalCost,
			Checkpoints:      fs.Expected.Checkpoints,
			Tolerance:        fs.Expected.Tolerance,
		},
	}, nil
}

// ToScenarios converts every fixture scenario.
func (f *Fixture) ToScenarios() ([]Scenario, error) {
	out := make([]Scenario, 0, len(f.Scenarios))
	for i := range f.Scenarios {
		s, err := f.Scenarios[i].ToScenario()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// #endregion fixture-loader
