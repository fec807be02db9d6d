package model

import "time"

// Event represents a scheduled site event. EventDate is when the event takes
// place; listings are ordered by it, not by insertion time.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	EventDate   time.Time `json:"event_date"`
	CreatedAt   time.Time `json:"created_at"`
}
