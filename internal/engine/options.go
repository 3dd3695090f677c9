package engine

import (
	"strings"

	"github.com/danielpatrickdp/gcalc/internal/prob"
	"github.com/danielpatrickdp/gcalc/internal/source"
)

// #region options
// Options is the textual configuration surface, as read from flags or
// fixture files. Probabilities accept fractions, percentages and a '%' suffix.
type Options struct {
	Probability            string            `json:"probability"`
	Bonus                  string            `json:"bonus,omitempty"`
	Cost                   float64           `json:"cost,omitempty"`
	DisplayPrecision       *int              `json:"display_precision,omitempty"`
	ProbabilityDisplayMode string            `json:"probability_display_mode,omitempty"`
	TargetProbability      string            `json:"target_probability,omitempty"`
	Budget                 *float64          `json:"budget,omitempty"`
	FixedCount             int               `json:"fixed_count,omitempty"`
	StartOffset            int               `json:"start_offset,omitempty"`
	TrailingOffset         int               `json:"trailing_offset,omitempty"`
	CsvFallback            string            `json:"csv_fallback,omitempty"`
	SourceExhaustion       string            `json:"source_exhaustion,omitempty"`
	ColumnMapping          *source.ColumnMap `json:"column_mapping,omitempty"`
	HasHeader              bool              `json:"has_header,omitempty"`
	Source                 source.Ref        `json:"source,omitempty"`
	MaxTrials              int               `json:"max_trials,omitempty"`
}

// #endregion options

// #region from-options
// FromOptions parses o into a Config. It does not run the validator.
func FromOptions(o Options) (Config, error) {
	cfg := DefaultConfig()
	var err error

	if cfg.Probability, err = parseOptional("probability", o.Probability); err != nil {
		return Config{}, err
	}
	if cfg.Bonus, err = parseOptional("bonus", o.Bonus); err != nil {
		return Config{}, err
	}
	cfg.Cost = o.Cost

	if o.DisplayPrecision != nil {
		cfg.Display.Precision = *o.DisplayPrecision
	}
	if cfg.Display.Mode, err = prob.ParseDisplayMode(o.ProbabilityDisplayMode); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(o.TargetProbability) != "" {
		t, err := prob.Parse("target_probability", o.TargetProbability)
		if err != nil {
			return Config{}, err
		}
		cfg.Termination.Target = &t
	}
	if o.Budget != nil {
		b := *o.Budget
		cfg.Termination.Budget = &b
	}
	cfg.Termination.FixedCount = o.FixedCount
	cfg.Termination.Trailing = o.TrailingOffset
	cfg.StartOffset = o.StartOffset

	if cfg.Fallback, err = source.ParseFallback(o.CsvFallback); err != nil {
		return Config{}, err
	}
	if cfg.Exhaustion, err = source.ParseExhaustion(o.SourceExhaustion); err != nil {
		return Config{}, err
	}
	if o.ColumnMapping != nil {
		cfg.Columns = *o.ColumnMapping
	}
	cfg.HasHeader = o.HasHeader
	cfg.Source = o.Source
	cfg.MaxTrials = o.MaxTrials
	return cfg, nil
}

// #endregion from-options

// #region helpers
func parseOptional(field, raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return prob.Parse(field, raw)
}

// #endregion helpers
