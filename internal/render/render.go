// Package render writes record sequences and summaries as CSV, aligned
// console tables or GitHub-flavored Markdown.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
	"github.com/danielpatrickdp/gcalc/internal/engine"
	"github.com/dustin/go-humanize"
)

// #region format
// Format is an output table style.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatConsole Format = "console"
	FormatGFM     Format = "gfm"
)

// ParseFormat accepts csv, console, gfm and github.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "", "console":
		return FormatConsole, nil
	case "gfm", "github":
		return FormatGFM, nil
	}
	return "", calcerr.Configuration("%s is not a valid table format", s)
}

// #endregion format

// #region records
var recordHeader = []string{"count", "probability", "cost", "bonus"}

// Records writes the visible records of res.
func Records(w io.Writer, res engine.Result, f Format) error {
	rows := make([][]string, 0, len(res.Records))
	for _, r := range res.Visible() {
		rows = append(rows, []string{
			strconv.Itoa(r.Index),
			r.Formatted,
			costCell(r.Cost, f),
			strconv.FormatFloat(r.Bonus, 'f', -1, 64),
		})
	}
	return table(w, recordHeader, rows, f)
}

// #endregion records

// #region qualification
var qualHeader = []string{"count", "probability", "cost"}

// Qualification writes a one-row summary table.
func Qualification(w io.Writer, q engine.Qualification, f Format) error {
	row := []string{strconv.Itoa(q.TrialCount), q.Formatted, costCell(q.FinalCost, f)}
	return table(w, qualHeader, [][]string{row}, f)
}

// #endregion qualification

// #region helpers
func table(w io.Writer, header []string, rows [][]string, f Format) error {
	switch f {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		return nil
	case FormatGFM:
		var b strings.Builder
		b.WriteString("| " + strings.Join(header, " | ") + " |\n")
		b.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
		for _, row := range rows {
			b.WriteString("| " + strings.Join(row, " | ") + " |\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(header, "\t"))
		for _, row := range rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	}
}

// costCell keeps CSV machine-readable and groups digits for people.
func costCell(cost float64, f Format) string {
	if f == FormatCSV {
		return strconv.FormatFloat(cost, 'f', -1, 64)
	}
	return humanize.Commaf(cost)
}

// #endregion helpers
