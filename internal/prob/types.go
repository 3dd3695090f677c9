package prob

import (
	"strings"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
)

// #region display-mode
// DisplayMode selects how a cumulative probability is rendered.
type DisplayMode string

const (
	DisplayFraction   DisplayMode = "fraction"
	DisplayPercentage DisplayMode = "percentage"
)

// ParseDisplayMode accepts fraction|float and percentage|percent, case-insensitively.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fraction", "float":
		return DisplayFraction, nil
	case "percentage", "percent":
		return DisplayPercentage, nil
	}
	return "", calcerr.Configuration("%q is not a valid probability display mode", s)
}

// #endregion display-mode

// #region display
// Display bundles the formatting settings applied to every record.
// Precision < 0 means "shortest representation", no truncation.
type Display struct {
	Mode      DisplayMode
	Precision int
}

// DefaultDisplay renders fractions at full precision.
func DefaultDisplay() Display {
	return Display{Mode: DisplayFraction, Precision: -1}
}

// #endregion display
