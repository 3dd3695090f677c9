// Package logging records computation runs in the run_log table so they can
// be inspected later or exported as replay fixtures.
package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-run
// LogRun writes a run entry to the run_log table.
func LogRun(db *sql.DB, entry RunEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO run_log (run_id, mode, options_json, schedule_name, trial_count,
		   final_probability, final_cost, error_code, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Mode,
		entry.OptionsJSON,
		nullIfEmpty(entry.ScheduleName),
		entry.TrialCount,
		entry.FinalProbability,
		entry.FinalCost,
		nullIfEmpty(entry.ErrorCode),
		nullIfEmpty(entry.ErrorMessage),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log run: %w", err)
	}
	return nil
}

// #endregion log-run

// #region recent-runs
// RecentRuns returns the last n runs in chronological order.
func RecentRuns(db *sql.DB, n int) ([]RunEntry, error) {
	rows, err := db.Query(
		`SELECT run_id, mode, options_json, schedule_name, trial_count,
		        final_probability, final_cost, error_code, error_message, created_at
		 FROM (SELECT * FROM run_log ORDER BY created_at DESC LIMIT ?) sub
		 ORDER BY created_at ASC`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query run log: %w", err)
	}
	defer rows.Close()

	var out []RunEntry
	for rows.Next() {
		var e RunEntry
		var sched, code, msg sql.NullString
		var createdStr string
		if err := rows.Scan(&e.RunID, &e.Mode, &e.OptionsJSON, &sched, &e.TrialCount,
			&e.FinalProbability, &e.FinalCost, &code, &msg, &createdStr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		e.ScheduleName = sched.String
		e.ErrorCode = code.String
		e.ErrorMessage = msg.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion recent-runs

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
