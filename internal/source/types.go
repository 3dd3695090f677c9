package source

import (
	"strings"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
)

// #region column-map
// Unmapped disables a column in a ColumnMap.
const Unmapped = -1

// ColumnMap gives the zero-based position of each logical column.
type ColumnMap struct {
	Index       int `json:"index"`
	Probability int `json:"probability"`
	Bonus       int `json:"bonus"`
	Cost        int `json:"cost"`
}

// DefaultColumnMap is index, probability, bonus, cost in that order.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{Index: 0, Probability: 1, Bonus: 2, Cost: 3}
}

// #endregion column-map

// #region row
// Row is one override row. A nil field was not present in the source row.
type Row struct {
	IndexHint   int // 0 when the row carries no index
	Probability *string
	Bonus       *string
	Cost        *string
}

// #endregion row

// #region policies
// Fallback decides what happens when an override field fails to parse.
type Fallback string

const (
	FallbackNone     Fallback = "none"     // fail the computation
	FallbackIgnore   Fallback = "ignore"   // keep the prior value
	FallbackRollback Fallback = "rollback" // restore the snapshot value
)

// ParseFallback reads none|ignore|rollback.
func ParseFallback(s string) (Fallback, error) {
	switch f := Fallback(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FallbackNone, nil
	case FallbackNone, FallbackIgnore, FallbackRollback:
		return f, nil
	}
	return "", calcerr.Configuration("%q is not a valid csv fallback", s)
}

// Exhaustion decides what happens when the source runs out of rows.
type Exhaustion string

const (
	ExhaustRepeat Exhaustion = "repeat" // keep the last values
	ExhaustPanic  Exhaustion = "panic"  // fail the computation
)

// ParseExhaustion reads repeat|panic.
func ParseExhaustion(s string) (Exhaustion, error) {
	switch e := Exhaustion(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return ExhaustRepeat, nil
	case ExhaustRepeat, ExhaustPanic:
		return e, nil
	}
	return "", calcerr.Configuration("%q is not a valid source exhaustion policy", s)
}

// #endregion policies

// #region cursor
// Cursor is the outcome of asking the source for a trial's row.
type Cursor int

const (
	CursorAdvance   Cursor = iota // row consumed, merge its fields
	CursorStay                    // row belongs to a later trial, keep prior values
	CursorExhausted               // no rows left
)

func (c Cursor) String() string {
	switch c {
	case CursorAdvance:
		return "advance"
	case CursorStay:
		return "stay"
	case CursorExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Step pairs a cursor with the consumed row (zero unless CursorAdvance).
type Step struct {
	Cursor Cursor
	Row    Row
}

// #endregion cursor

// #region ref
// RefKind says where override rows come from.
type RefKind string

const (
	RefNone   RefKind = ""
	RefInline RefKind = "inline"
	RefFile   RefKind = "file"
)

// Ref points at override CSV text, inline or on disk.
type Ref struct {
	Kind  RefKind `json:"kind,omitempty"`
	Value string  `json:"value,omitempty"` // text for inline, path for file
}

// Inline is a Ref holding CSV text directly.
func Inline(text string) Ref { return Ref{Kind: RefInline, Value: text} }

// File is a Ref naming a CSV file.
func File(path string) Ref { return Ref{Kind: RefFile, Value: path} }

// #endregion ref
