package postgres

import (
	"context"
	"fmt"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// CreateEvent inserts a new event row and returns the stored record.
func (r *StoragePostgres) CreateEvent(ctx context.Context, in repository.NewEvent) (*model.Event, error) {
	const q = `
		INSERT INTO events (title, description, location, event_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, location, event_date, created_at
	`
	row := r.db.QueryRowContext(ctx, q, in.Title, in.Description, in.Location, in.EventDate)
	var e model.Event
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.EventDate, &e.CreatedAt); err != nil {
		return nil, wrapError("create event", err)
	}
	return &e, nil
}

// GetEvents returns up to limit events ordered by their scheduled date,
// soonest first, regardless of insertion order.
func (r *StoragePostgres) GetEvents(ctx context.Context, limit int) ([]model.Event, error) {
	if limit < 0 {
		return nil, fmt.Errorf("get events: negative limit %d", limit)
	}

	const q = `
		SELECT id, title, description, location, event_date, created_at
		FROM events
		ORDER BY event_date ASC, id ASC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, wrapError("get events", err)
	}
	defer rows.Close()

	items := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.EventDate, &e.CreatedAt); err != nil {
			return nil, wrapError("get events", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("get events", err)
	}
	return items, nil
}
