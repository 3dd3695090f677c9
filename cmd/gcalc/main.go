package main

import (
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
	"github.com/danielpatrickdp/gcalc/internal/config"
	"github.com/danielpatrickdp/gcalc/internal/engine"
	"github.com/danielpatrickdp/gcalc/internal/logging"
	"github.com/danielpatrickdp/gcalc/internal/render"
	"github.com/danielpatrickdp/gcalc/internal/schedule"
	"github.com/danielpatrickdp/gcalc/internal/source"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const usage = `usage: gcalc <range|cond|qual> [flags]

  range  fixed number of trials, one row per trial
  cond   run until a target probability or budget is crossed
  qual   minimum trial count for a target or budget, one summary row`

// #region main
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	env, err := config.Load()
	if err != nil {
		config.Exitf("gcalc: %v", err)
	}

	mode := os.Args[1]
	switch mode {
	case "range", "cond", "qual":
	case "-h", "--help", "help":
		fmt.Println(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s\n", mode, usage)
		os.Exit(2)
	}

	if err := run(mode, os.Args[2:], env, os.Stdout); err != nil {
		config.Exitf("gcalc %s: %v", mode, err)
	}
}

// #endregion main

// #region flags
type cliFlags struct {
	probability, bonus string
	cost               float64
	count              int
	target, budget     string
	start, trailing    int
	precision          int
	display, format    string
	csvInline, csvFile string
	columns            string
	hasHeader          bool
	fallback           string
	exhaustion         string
	scheduleName       string
	scheduleDB         string
	maxTrials          int
}

func newFlagSet(mode string, env config.Config, f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(mode, flag.ContinueOnError)
	fs.StringVar(&f.probability, "p", "", "base probability per trial (0.006, 0.6%, 60)")
	fs.StringVar(&f.bonus, "b", "", "additive bonus probability per trial")
	fs.Float64Var(&f.cost, "c", 0, "cost of one trial")
	fs.IntVar(&f.precision, "precision", env.Precision, "decimal places, negative for shortest")
	fs.StringVar(&f.display, "display", env.Display, "fraction or percentage")
	fs.StringVar(&f.format, "format", env.Format, "csv, console or gfm")
	fs.StringVar(&f.csvInline, "csv", "", "inline override rows")
	fs.StringVar(&f.csvFile, "csv-file", "", "override rows file")
	fs.StringVar(&f.columns, "columns", "0,1,2,3", "column positions for index,probability,bonus,cost; negative disables")
	fs.BoolVar(&f.hasHeader, "header", false, "skip the first override row")
	fs.StringVar(&f.fallback, "fallback", env.Fallback, "none, ignore or rollback")
	fs.StringVar(&f.exhaustion, "exhaustion", env.Exhaustion, "repeat or panic")
	fs.StringVar(&f.scheduleName, "schedule", "", "stored schedule to use as override rows")
	fs.StringVar(&f.scheduleDB, "schedule-db", env.ScheduleDB, "path to the schedule database")
	fs.IntVar(&f.maxTrials, "max-trials", env.MaxTrials, "iteration cap, 0 disables")

	switch mode {
	case "range":
		fs.IntVar(&f.count, "n", 0, "number of trials")
		fs.IntVar(&f.start, "start", 0, "records to hide from the output")
	case "cond":
		fs.StringVar(&f.target, "t", "", "target cumulative probability")
		fs.StringVar(&f.budget, "budget", "", "total cost limit")
		fs.IntVar(&f.start, "start", 0, "records to hide from the output")
		fs.IntVar(&f.trailing, "trailing", 0, "extra trials after the stop condition")
	case "qual":
		fs.StringVar(&f.target, "t", "", "target cumulative probability")
		fs.StringVar(&f.budget, "budget", "", "total cost limit")
	}
	return fs
}

func (f cliFlags) options() (engine.Options, error) {
	o := engine.Options{
		Probability:            f.probability,
		Bonus:                  f.bonus,
		Cost:                   f.cost,
		ProbabilityDisplayMode: f.display,
		TargetProbability:      f.target,
		FixedCount:             f.count,
		StartOffset:            f.start,
		TrailingOffset:         f.trailing,
		CsvFallback:            f.fallback,
		SourceExhaustion:       f.exhaustion,
		HasHeader:              f.hasHeader,
		MaxTrials:              f.maxTrials,
	}
	precision := f.precision
	o.DisplayPrecision = &precision

	if strings.TrimSpace(f.budget) != "" {
		b, err := strconv.ParseFloat(strings.TrimSpace(f.budget), 64)
		if err != nil {
			return o, errors.Wrapf(err, "budget %q", f.budget)
		}
		o.Budget = &b
	}

	cols, err := parseColumns(f.columns)
	if err != nil {
		return o, err
	}
	o.ColumnMapping = &cols

	sources := 0
	for _, s := range []string{f.csvInline, f.csvFile, f.scheduleName} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return o, errors.New("use only one of --csv, --csv-file and --schedule")
	}
	switch {
	case f.csvInline != "":
		o.Source = source.Inline(f.csvInline)
	case f.csvFile != "":
		o.Source = source.File(f.csvFile)
	}
	return o, nil
}

func parseColumns(s string) (source.ColumnMap, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return source.ColumnMap{}, errors.Errorf("columns %q: want four comma-separated positions", s)
	}
	pos := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return source.ColumnMap{}, errors.Wrapf(err, "columns %q", s)
		}
		if n < 0 {
			n = source.Unmapped
		}
		pos[i] = n
	}
	return source.ColumnMap{Index: pos[0], Probability: pos[1], Bonus: pos[2], Cost: pos[3]}, nil
}

// #endregion flags

// #region run
var opNames = map[string]string{"range": "range", "cond": "conditional", "qual": "qualification"}

func run(mode string, args []string, env config.Config, w io.Writer) error {
	var f cliFlags
	fs := newFlagSet(mode, env, &f)
	logRun := fs.Bool("log", env.RunLog, "record the run in the schedule database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	format, err := render.ParseFormat(f.format)
	if err != nil {
		return err
	}
	opts, err := f.options()
	if err != nil {
		return err
	}
	cfg, err := engine.FromOptions(opts)
	if err != nil {
		return err
	}
	if f.scheduleName != "" {
		if cfg.Rows, err = loadSchedule(f.scheduleDB, f.scheduleName); err != nil {
			return err
		}
	}

	entry := logging.RunEntry{RunID: uuid.New().String(), Mode: opNames[mode], ScheduleName: f.scheduleName}
	started := time.Now()
	defer func() {
		if env.Verbose {
			log.Printf("run=%s mode=%s trials=%d elapsed=%s", entry.RunID, mode, entry.TrialCount, time.Since(started))
		}
	}()

	var out func() error
	switch mode {
	case "range", "cond":
		var res engine.Result
		if mode == "range" {
			res, err = engine.Range(cfg)
		} else {
			res, err = engine.Conditional(cfg)
		}
		if err == nil && len(res.Records) > 0 {
			last := res.Records[len(res.Records)-1]
			entry.TrialCount, entry.FinalProbability, entry.FinalCost = len(res.Records), last.Probability, last.Cost
		}
		out = func() error { return render.Records(w, res, format) }
	default:
		var q engine.Qualification
		q, err = engine.Qualify(cfg)
		entry.TrialCount, entry.FinalProbability, entry.FinalCost = q.TrialCount, q.FinalProbability, q.FinalCost
		out = func() error { return render.Qualification(w, q, format) }
	}

	if *logRun {
		if lerr := recordRun(f.scheduleDB, opts, entry, err); lerr != nil {
			log.Printf("run=%s: %v", entry.RunID, lerr)
		}
	}
	if err != nil {
		return err
	}
	return out()
}

func recordRun(dbPath string, opts engine.Options, entry logging.RunEntry, runErr error) error {
	data, err := json.Marshal(opts)
	if err != nil {
		return errors.Wrap(err, "marshal options")
	}
	entry.OptionsJSON = string(data)
	if runErr != nil {
		entry.ErrorMessage = runErr.Error()
		var ce *calcerr.Error
		if stderrors.As(runErr, &ce) {
			entry.ErrorCode = string(ce.Code)
		}
	}

	store, err := schedule.NewStore(dbPath)
	if err != nil {
		return errors.Wrap(err, "open run log")
	}
	defer store.Close()
	return logging.LogRun(store.DB(), entry)
}

func loadSchedule(dbPath, name string) ([]source.Row, error) {
	store, err := schedule.NewStore(dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open schedule store")
	}
	defer store.Close()

	rows, err := store.Rows(name)
	if err != nil {
		return nil, errors.Wrapf(err, "load schedule %q", name)
	}
	return rows, nil
}

// #endregion run
