package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/gcalc/internal/config"
	"github.com/danielpatrickdp/gcalc/internal/logging"
	"github.com/danielpatrickdp/gcalc/internal/schedule"
	"github.com/danielpatrickdp/gcalc/internal/source"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Precision:  -1,
		Display:    "fraction",
		Format:     "csv",
		Fallback:   "none",
		Exhaustion: "repeat",
		MaxTrials:  1000,
		ScheduleDB: filepath.Join(t.TempDir(), "schedules.db"),
	}
}

func TestRunRange(t *testing.T) {
	var buf bytes.Buffer
	err := run("range", []string{"-p", "0.5", "-c", "10", "-n", "2", "-precision", "2"}, testEnv(t), &buf)
	require.NoError(t, err)
	require.Equal(t, "count,probability,cost,bonus\n1,0.50,10,0\n2,0.75,20,0\n", buf.String())
}

func TestRunQualification(t *testing.T) {
	var buf bytes.Buffer
	err := run("qual", []string{"-p", "0.1", "-t", "0.9", "-c", "160", "-precision", "4"}, testEnv(t), &buf)
	require.NoError(t, err)
	require.Equal(t, "count,probability,cost\n22,0.9015,3520\n", buf.String())
}

func TestRunUsesStoredSchedule(t *testing.T) {
	env := testEnv(t)
	store, err := schedule.NewStore(env.ScheduleDB)
	require.NoError(t, err)
	one := "1"
	_, err = store.Import("guaranteed", []source.Row{{IndexHint: 2, Probability: &one}})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	var buf bytes.Buffer
	err = run("cond", []string{"-p", "0.1", "-t", "0.99", "-schedule", "guaranteed"}, env, &buf)
	require.NoError(t, err)
	require.Equal(t, "count,probability,cost,bonus\n1,0.1,0,0\n2,1,0,0\n", buf.String())
}

func TestRunRejectsSeveralSources(t *testing.T) {
	var buf bytes.Buffer
	err := run("range", []string{"-p", "0.1", "-n", "3", "-csv", "1,0.2", "-schedule", "x"}, testEnv(t), &buf)
	require.Error(t, err)
	require.Empty(t, buf.String())
}

func TestParseColumns(t *testing.T) {
	cols, err := parseColumns("0, 2, -1, 1")
	require.NoError(t, err)
	require.Equal(t, source.ColumnMap{Index: 0, Probability: 2, Bonus: source.Unmapped, Cost: 1}, cols)

	_, err = parseColumns("0,1")
	require.Error(t, err)
}

func TestRunRecordsRunLog(t *testing.T) {
	env := testEnv(t)

	var buf bytes.Buffer
	require.NoError(t, run("qual", []string{"-p", "0.1", "-t", "0.9", "-c", "160", "-log"}, env, &buf))
	require.Error(t, run("cond", []string{"-p", "0.1", "-log"}, env, &buf))

	store, err := schedule.NewStore(env.ScheduleDB)
	require.NoError(t, err)
	defer store.Close()

	runs, err := logging.RecentRuns(store.DB(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	byMode := map[string]logging.RunEntry{}
	for _, r := range runs {
		byMode[r.Mode] = r
	}
	require.Equal(t, 22, byMode["qualification"].TrialCount)
	require.InDelta(t, 3520, byMode["qualification"].FinalCost, 1e-9)
	require.Contains(t, byMode["qualification"].OptionsJSON, `"target_probability":"0.9"`)
	require.Equal(t, "CONFIGURATION", byMode["conditional"].ErrorCode)
}
