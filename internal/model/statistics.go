package model

import "time"

// Statistics is one snapshot of site-wide aggregates. The table is an
// append-only log: every refresh inserts a new row and the current value is
// the row with the greatest LastUpdated.
type Statistics struct {
	ID          int64     `json:"id"`
	Users       int64     `json:"users"`
	Posts       int64     `json:"posts"`
	Comments    int64     `json:"comments"`
	LastUpdated time.Time `json:"last_updated"`
}
