// Package prob normalizes lenient probability inputs and formats cumulative
// probabilities for display.
package prob

import (
	"math"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
)

// truncGuard absorbs binary representation error before truncation.
const truncGuard = 1e-9

// #region normalize
// Normalize maps v onto [0, 1]. Values in [0, 1] are fractions, values in
// (1, 100] are percentages. Anything else is a domain error.
func Normalize(v float64) (float64, error) {
	switch {
	case math.IsNaN(v) || v < 0 || v > 100:
		return 0, calcerr.Domain(v)
	case v <= 1:
		return v, nil
	default:
		return v / 100, nil
	}
}

// Parse reads a bare number with an optional trailing '%' and normalizes it.
// An empty string is a parse failure; there is no implicit zero.
func Parse(field, s string) (float64, error) {
	raw := strings.TrimSpace(s)
	num := strings.TrimSpace(strings.TrimSuffix(raw, "%"))
	if num == "" {
		return 0, calcerr.Parse(field, s, nil)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, calcerr.Parse(field, s, err)
	}
	return Normalize(v)
}

// #endregion normalize

// #region format
// Format renders v per d. With a non-negative precision the value is
// truncated, not rounded, to that many decimals first.
func Format(v float64, d Display) string {
	if d.Mode == DisplayPercentage {
		v *= 100
	}
	var s string
	if d.Precision < 0 {
		s = strconv.FormatFloat(v, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(Truncate(v, d.Precision), 'f', d.Precision, 64)
	}
	if d.Mode == DisplayPercentage {
		s += "%"
	}
	return s
}

// Truncate drops every decimal past precision.
func Truncate(v float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.Trunc(v*scale+truncGuard) / scale
}

// #endregion format
