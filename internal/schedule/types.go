package schedule

import "time"

// #region schedule
// Schedule is a named, stored set of override rows.
type Schedule struct {
	ID        string
	Name      string
	RowCount  int
	CreatedAt time.Time
}

// #endregion schedule
