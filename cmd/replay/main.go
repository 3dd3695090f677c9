package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danielpatrickdp/gcalc/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to scenario fixture JSON")
	tolerance := flag.Float64("tolerance", 0, "default comparison tolerance (0 keeps the built-in default)")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/scenarios.json [--tolerance 1e-9]")
		os.Exit(2)
	}

	os.Exit(runFixture(*fixturePath, *tolerance, os.Stdout))
}

// #endregion main

// #region fixture

func runFixture(path string, tolerance float64, w io.Writer) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}
	scenarios, err := f.ToScenarios()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fixture scenarios: %v\n", err)
		return 2
	}

	config := replay.DefaultReplayConfig()
	if tolerance > 0 {
		config.DefaultTolerance = tolerance
	}
	if f.Description != "" {
		fmt.Fprintln(w, f.Description)
		fmt.Fprintln(w)
	}
	return printComparison(w, replay.Replay(scenarios, config))
}

// #endregion fixture

// #region output

// printComparison outputs a comparison table and returns the exit code.
func printComparison(w io.Writer, results []replay.ReplayResult) int {
	fmt.Fprintf(w, "%-28s| %-10s| %-8s| %s\n", "Scenario", "Action", "Records", "Reason")
	fmt.Fprintf(w, "%-28s+%-11s+%-9s+%s\n",
		"----------------------------", "-----------", "---------", "------")

	for _, r := range results {
		reason := r.Reason
		if reason == "" && r.ErrorCode != "" {
			reason = string(r.ErrorCode)
		}
		fmt.Fprintf(w, "%-28s| %-10s| %-8d| %s\n", r.Name, r.Action, r.Records, reason)
	}

	s := replay.Summarize(results)
	fmt.Fprintf(w, "\nSummary: %d total, %d match, %d diverge, %d eval_fail\n",
		s.Total, s.Matches, s.Diverged, s.EvalFailures)

	if s.Diverged > 0 || s.EvalFailures > 0 {
		return 1
	}
	return 0
}

// #endregion output
