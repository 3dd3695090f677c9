package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/danielpatrickdp/gcalc/internal/config"
	"github.com/danielpatrickdp/gcalc/internal/schedule"
	"github.com/danielpatrickdp/gcalc/internal/source"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

const usage = `usage: schedule <import|list|show|delete> [flags]

  import --name N --file rows.csv [--header] [--columns 0,1,2,3]
  list   [--last N] [--json]
  show   --name N [--json]
  delete --name N`

// #region main

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	env, err := config.Load()
	if err != nil {
		config.Exitf("schedule: %v", err)
	}

	cmd := os.Args[1]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	dbPath := fs.String("db", env.ScheduleDB, "path to the schedule database")
	name := fs.String("name", "", "schedule name")
	file := fs.String("file", "", "CSV file with override rows (import)")
	header := fs.Bool("header", false, "skip the first CSV row (import)")
	columns := fs.String("columns", "0,1,2,3", "index,probability,bonus,cost positions (import)")
	last := fs.Int("last", 20, "show N most recent schedules (list)")
	jsonOut := fs.Bool("json", false, "output as JSON instead of table")
	fs.Parse(os.Args[2:])

	store, err := schedule.NewStore(*dbPath)
	if err != nil {
		config.Exitf("open db: %v", err)
	}
	defer store.Close()

	switch cmd {
	case "import":
		err = runImport(store, os.Stdout, *name, *file, *columns, *header)
	case "list":
		err = runList(store, os.Stdout, *last, *jsonOut)
	case "show":
		err = runShow(store, os.Stdout, *name, *jsonOut)
	case "delete":
		err = store.Delete(*name)
		if err == nil {
			fmt.Printf("deleted %s\n", *name)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s\n", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		store.Close()
		config.Exitf("error: %v", err)
	}
}

// #endregion main

// #region import

func runImport(store *schedule.Store, w io.Writer, name, path, columns string, header bool) error {
	if name == "" || path == "" {
		return errors.New("import needs --name and --file")
	}
	cols, err := parseColumns(columns)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open rows file")
	}
	defer f.Close()

	rows, err := source.ReadCSV(f, cols, header)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	sched, err := store.Import(name, rows)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "imported %s (%d rows) as %s\n", sched.Name, sched.RowCount, shortID(sched.ID))
	return nil
}

func parseColumns(s string) (source.ColumnMap, error) {
	var pos [4]int
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d", &pos[0], &pos[1], &pos[2], &pos[3]); err != nil {
		return source.ColumnMap{}, errors.Wrapf(err, "columns %q", s)
	}
	for i := range pos {
		if pos[i] < 0 {
			pos[i] = source.Unmapped
		}
	}
	return source.ColumnMap{Index: pos[0], Probability: pos[1], Bonus: pos[2], Cost: pos[3]}, nil
}

// #endregion import

// #region list-mode

type listRow struct {
	ID        string `json:"schedule_id"`
	Name      string `json:"name"`
	RowCount  int    `json:"row_count"`
	CreatedAt string `json:"created_at"`
}

func runList(store *schedule.Store, w io.Writer, last int, jsonOut bool) error {
	scheds, err := store.List(last)
	if err != nil {
		return err
	}
	if len(scheds) == 0 {
		fmt.Fprintln(os.Stderr, "no schedules found")
		return nil
	}

	if jsonOut {
		rows := make([]listRow, len(scheds))
		for i, s := range scheds {
			rows[i] = listRow{
				ID:        s.ID,
				Name:      s.Name,
				RowCount:  s.RowCount,
				CreatedAt: s.CreatedAt.Format(time.RFC3339),
			}
		}
		return printJSON(w, rows)
	}

	fmt.Fprintf(w, "%-10s  %-24s  %6s  %s\n", "ID", "Name", "Rows", "Imported")
	fmt.Fprintf(w, "%-10s+-%-24s+-%6s+-%s\n", "----------", "------------------------", "------", "--------------")
	for _, s := range scheds {
		fmt.Fprintf(w, "%-10s  %-24s  %6d  %s\n", shortID(s.ID), s.Name, s.RowCount, humanize.Time(s.CreatedAt))
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type rowOutput struct {
	IndexHint   int     `json:"index,omitempty"`
	Probability *string `json:"probability,omitempty"`
	Bonus       *string `json:"bonus,omitempty"`
	Cost        *string `json:"cost,omitempty"`
}

func runShow(store *schedule.Store, w io.Writer, name string, jsonOut bool) error {
	sched, err := store.Get(name)
	if err != nil {
		return err
	}
	rows, err := store.Rows(name)
	if err != nil {
		return err
	}

	if jsonOut {
		out := make([]rowOutput, len(rows))
		for i, r := range rows {
			out[i] = rowOutput{IndexHint: r.IndexHint, Probability: r.Probability, Bonus: r.Bonus, Cost: r.Cost}
		}
		return printJSON(w, out)
	}

	fmt.Fprintf(w, "Schedule: %s\n", sched.Name)
	fmt.Fprintf(w, "ID:       %s\n", sched.ID)
	fmt.Fprintf(w, "Imported: %s (%s)\n", sched.CreatedAt.Format(time.RFC3339), humanize.Time(sched.CreatedAt))
	fmt.Fprintf(w, "Rows:     %d\n\n", sched.RowCount)

	fmt.Fprintf(w, "%6s  %-12s  %-12s  %s\n", "Index", "Probability", "Bonus", "Cost")
	for _, r := range rows {
		idx := "-"
		if r.IndexHint > 0 {
			idx = fmt.Sprint(r.IndexHint)
		}
		fmt.Fprintf(w, "%6s  %-12s  %-12s  %s\n", idx, cell(r.Probability), cell(r.Bonus), cell(r.Cost))
	}
	return nil
}

// #endregion detail-mode

// #region output

func cell(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
