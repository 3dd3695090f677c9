package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danielpatrickdp/gcalc/internal/config"
	"github.com/danielpatrickdp/gcalc/internal/engine"
	"github.com/danielpatrickdp/gcalc/internal/logging"
	"github.com/danielpatrickdp/gcalc/internal/replay"
	"github.com/danielpatrickdp/gcalc/internal/schedule"
)

// #region main

func main() {
	env, err := config.Load()
	if err != nil {
		config.Exitf("fixture-export: %v", err)
	}

	dbPath := flag.String("db", env.ScheduleDB, "path to the schedule database holding the run log")
	last := flag.Int("last", 10, "number of most recent runs to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --out path/to/fixture.json [--db path/to/db] [--last N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *last, *outPath, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(dbPath string, last int, outPath string, w io.Writer) error {
	store, err := schedule.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	runs, err := logging.RecentRuns(store.DB(), last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return fmt.Errorf("no runs found in the last %d run log entries", last)
	}

	fixture, skipped := buildFixture(runs)
	fmt.Fprintf(w, "Found %d runs, exported %d, skipped %d\n", len(runs), len(fixture.Scenarios), skipped)
	if len(fixture.Scenarios) == 0 {
		return fmt.Errorf("no exportable runs")
	}
	return writeFixture(w, fixture, outPath)
}

// #endregion extract

// #region output

// buildFixture turns logged runs into scenarios that expect the same outcome.
// Runs that read a stored schedule are skipped since fixtures carry their
// rows inline. So are failures without an error code.
func buildFixture(runs []logging.RunEntry) (replay.Fixture, int) {
	var fixture replay.Fixture
	skipped := 0
	for _, r := range runs {
		if r.ScheduleName != "" || (r.Failed() && r.ErrorCode == "") {
			skipped++
			continue
		}
		var opts engine.Options
		if err := json.Unmarshal([]byte(r.OptionsJSON), &opts); err != nil {
			skipped++
			continue
		}

		sc := replay.FixtureScenario{
			Name:      fmt.Sprintf("%s-%s", r.Mode, shortID(r.RunID)),
			Operation: r.Mode,
			Options:   opts,
		}
		if r.Failed() {
			sc.Expected.Error = r.ErrorCode
		} else {
			p, c := r.FinalProbability, r.FinalCost
			sc.Expected.Count = r.TrialCount
			sc.Expected.FinalProbability = &p
			sc.Expected.FinalCost = &c
		}
		fixture.Scenarios = append(fixture.Scenarios, sc)
	}
	fixture.Description = fmt.Sprintf("Run log export: %d scenarios", len(fixture.Scenarios))
	return fixture, skipped
}

func writeFixture(w io.Writer, fixture replay.Fixture, outPath string) error {
	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Fprintf(w, "Wrote fixture to %s (%d bytes, %d scenarios)\n", outPath, len(data), len(fixture.Scenarios))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
