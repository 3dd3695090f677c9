package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/gcalc/internal/logging"
	"github.com/danielpatrickdp/gcalc/internal/replay"
	"github.com/danielpatrickdp/gcalc/internal/schedule"
)

func TestExportedRunsReplayClean(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs.db")
	outPath := filepath.Join(dir, "fixture.json")

	store, err := schedule.NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	entries := []logging.RunEntry{
		{
			RunID:            "11111111-aaaa",
			Mode:             "range",
			OptionsJSON:      `{"probability":"0.5","cost":10,"fixed_count":2}`,
			TrialCount:       2,
			FinalProbability: 0.75,
			FinalCost:        20,
		},
		{
			RunID:       "22222222-bbbb",
			Mode:        "conditional",
			OptionsJSON: `{"probability":"0.1"}`,
			ErrorCode:   "CONFIGURATION",
		},
		{
			RunID:        "33333333-cccc",
			Mode:         "conditional",
			OptionsJSON:  `{"probability":"0.1","target_probability":"0.5"}`,
			ScheduleName: "soft-pity",
			TrialCount:   7,
		},
	}
	for _, e := range entries {
		if err := logging.LogRun(store.DB(), e); err != nil {
			t.Fatalf("LogRun: %v", err)
		}
	}
	store.Close()

	var buf bytes.Buffer
	if err := run(dbPath, 10, outPath, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := replay.LoadFixture(outPath)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if len(f.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios (schedule run skipped), got %d", len(f.Scenarios))
	}

	scenarios, err := f.ToScenarios()
	if err != nil {
		t.Fatalf("ToScenarios: %v", err)
	}
	results := replay.Replay(scenarios, replay.DefaultReplayConfig())
	for _, r := range results {
		if r.Action != "match" {
			t.Errorf("scenario %s: %s (%s)", r.Name, r.Action, r.Reason)
		}
	}
}

func TestExportEmptyRunLog(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	if err := run(filepath.Join(dir, "runs.db"), 5, filepath.Join(dir, "out.json"), &buf); err == nil {
		t.Fatal("expected error for an empty run log")
	}
}
