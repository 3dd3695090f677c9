// Package schedule keeps named override schedules in SQLite so they can be
// reused as the override source of later computations.
package schedule

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/danielpatrickdp/gcalc/internal/source"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS schedules (
	schedule_id   TEXT PRIMARY KEY,
	name          TEXT NOT NULL UNIQUE,
	row_count     INTEGER NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS schedule_rows (
	schedule_id   TEXT NOT NULL,
	position      INTEGER NOT NULL,
	index_hint    INTEGER,
	probability   TEXT,
	bonus         TEXT,
	cost          TEXT,
	PRIMARY KEY (schedule_id, position),
	FOREIGN KEY (schedule_id) REFERENCES schedules(schedule_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_log (
	run_id            TEXT PRIMARY KEY,
	mode              TEXT NOT NULL,
	options_json      TEXT NOT NULL,
	schedule_name     TEXT,
	trial_count       INTEGER NOT NULL,
	final_probability REAL NOT NULL,
	final_cost        REAL NOT NULL,
	error_code        TEXT,
	error_message     TEXT,
	created_at        TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store manages override schedules in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion close

// #region import
// Import stores rows under a new schedule. Names are unique.
func (s *Store) Import(name string, rows []source.Row) (Schedule, error) {
	if name == "" {
		return Schedule{}, fmt.Errorf("schedule name is required")
	}
	sched := Schedule{
		ID:        uuid.New().String(),
		Name:      name,
		RowCount:  len(rows),
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Schedule{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO schedules (schedule_id, name, row_count, created_at) VALUES (?, ?, ?, ?)`,
		sched.ID, sched.Name, sched.RowCount, sched.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Schedule{}, fmt.Errorf("insert schedule %s: %w", name, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO schedule_rows (schedule_id, position, index_hint, probability, bonus, cost)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return Schedule{}, fmt.Errorf("prepare rows: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		var hint interface{}
		if r.IndexHint > 0 {
			hint = r.IndexHint
		}
		if _, err := stmt.Exec(sched.ID, i, hint, nullable(r.Probability), nullable(r.Bonus), nullable(r.Cost)); err != nil {
			return Schedule{}, fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Schedule{}, fmt.Errorf("commit: %w", err)
	}
	return sched, nil
}

// #endregion import

// #region get
// Get retrieves a schedule by name.
func (s *Store) Get(name string) (Schedule, error) {
	var sched Schedule
	var createdStr string
	err := s.db.QueryRow(
		`SELECT schedule_id, name, row_count, created_at FROM schedules WHERE name = ?`, name,
	).Scan(&sched.ID, &sched.Name, &sched.RowCount, &createdStr)
	if err != nil {
		return Schedule{}, fmt.Errorf("get schedule %s: %w", name, err)
	}
	sched.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return sched, nil
}

// Rows loads a schedule's rows in their original order.
func (s *Store) Rows(name string) ([]source.Row, error) {
	sched, err := s.Get(name)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT index_hint, probability, bonus, cost FROM schedule_rows
		 WHERE schedule_id = ? ORDER BY position ASC`, sched.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	out := make([]source.Row, 0, sched.RowCount)
	for rows.Next() {
		var hint sql.NullInt64
		var p, b, c sql.NullString
		if err := rows.Scan(&hint, &p, &b, &c); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r := source.Row{
			Probability: fromNull(p),
			Bonus:       fromNull(b),
			Cost:        fromNull(c),
		}
		if hint.Valid {
			r.IndexHint = int(hint.Int64)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// #endregion get

// #region list
// List returns the most recently imported schedules.
func (s *Store) List(limit int) ([]Schedule, error) {
	rows, err := s.db.Query(
		`SELECT schedule_id, name, row_count, created_at
		 FROM schedules ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var out []Schedule
	for rows.Next() {
		var sched Schedule
		var createdStr string
		if err := rows.Scan(&sched.ID, &sched.Name, &sched.RowCount, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		sched.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, sched)
	}
	return out, rows.Err()
}

// #endregion list

// #region delete
// Delete removes a schedule and its rows.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM schedules WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete schedule %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete schedule %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("schedule %s not found", name)
	}
	return nil
}

// #endregion delete

// #region helpers
func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func fromNull(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// #endregion helpers
