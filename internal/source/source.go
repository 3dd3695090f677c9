// Package source resolves per-trial probability, bonus and cost overrides
// from tabular rows.
package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
	"github.com/pkg/errors"
)

// #region source
// Source hands out override rows one trial at a time.
type Source struct {
	rows []Row
	pos  int
}

// New wraps already-parsed rows.
func New(rows []Row) *Source {
	return &Source{rows: rows}
}

// Len is the total number of rows.
func (s *Source) Len() int { return len(s.rows) }

// Next offers the current row for trial. A row whose index hint names a
// later trial is not consumed and is offered again next time.
func (s *Source) Next(trial int) Step {
	if s.pos >= len(s.rows) {
		return Step{Cursor: CursorExhausted}
	}
	row := s.rows[s.pos]
	if row.IndexHint > trial {
		return Step{Cursor: CursorStay}
	}
	s.pos++
	return Step{Cursor: CursorAdvance, Row: row}
}

// #endregion source

// #region load
// Load builds a Source from ref. A missing ref or blank text yields nil:
// no override source is configured.
func Load(ref Ref, columns ColumnMap, hasHeader bool) (*Source, error) {
	var text []byte
	switch ref.Kind {
	case RefNone:
		return nil, nil
	case RefInline:
		text = []byte(ref.Value)
	case RefFile:
		data, err := os.ReadFile(ref.Value)
		if err != nil {
			return nil, calcerr.IO("read override source", errors.Wrapf(err, "open %s", ref.Value))
		}
		text = data
	default:
		return nil, calcerr.Configuration("unknown override source kind %q", ref.Kind)
	}
	if len(bytes.TrimSpace(text)) == 0 {
		return nil, nil
	}
	rows, err := ReadCSV(bytes.NewReader(text), columns, hasHeader)
	if err != nil {
		return nil, err
	}
	return New(rows), nil
}

// ReadCSV parses every record of r into rows using columns.
func ReadCSV(r io.Reader, columns ColumnMap, hasHeader bool) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []Row
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, calcerr.IO("read override csv", errors.Wrap(err, "csv"))
		}
		line++
		if hasHeader && line == 1 {
			continue
		}
		row, err := RowFromRecord(rec, columns)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RowFromRecord picks the mapped columns out of one record. Columns past the
// end of the record are treated as absent.
func RowFromRecord(rec []string, columns ColumnMap) (Row, error) {
	var row Row
	if raw := field(rec, columns.Index); raw != nil {
		hint, err := parseIndex(*raw)
		if err != nil {
			return Row{}, err
		}
		row.IndexHint = hint
	}
	row.Probability = field(rec, columns.Probability)
	row.Bonus = field(rec, columns.Bonus)
	row.Cost = field(rec, columns.Cost)
	return row, nil
}

// #endregion load

// #region helpers
func field(rec []string, pos int) *string {
	if pos < 0 || pos >= len(rec) {
		return nil
	}
	v := strings.TrimSpace(rec[pos])
	return &v
}

func parseIndex(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, calcerr.Parse("index", raw, err)
	}
	if n < 1 {
		return 0, calcerr.Parse("index", raw, errors.New("index must be a positive integer"))
	}
	return n, nil
}

// #endregion helpers
