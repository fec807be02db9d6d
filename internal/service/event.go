package service

import (
	"context"
	"fmt"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// DefaultEventLimit is the listing size used when the caller does not supply one.
const DefaultEventLimit = 5

// EventService defines the use cases around scheduled events.
type EventService interface {
	// Create schedules a new event.
	Create(ctx context.Context, title, description, location string, eventDate time.Time) (*model.Event, error)

	// Upcoming returns up to limit events, soonest scheduled date first.
	Upcoming(ctx context.Context, limit int) ([]model.Event, error)
}

type eventService struct {
	store repository.Storage
}

// NewEventService constructs a new EventService over the storage gateway.
func NewEventService(store repository.Storage) EventService {
	return &eventService{store: store}
}

func (s *eventService) Create(ctx context.Context, title, description, location string, eventDate time.Time) (*model.Event, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if eventDate.IsZero() {
		return nil, fmt.Errorf("%w: event date is required", ErrInvalidInput)
	}

	return s.store.CreateEvent(ctx, repository.NewEvent{
		Title:       title,
		Description: description,
		Location:    location,
		EventDate:   eventDate,
	})
}

func (s *eventService) Upcoming(ctx context.Context, limit int) ([]model.Event, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be non-negative", ErrInvalidInput)
	}
	return s.store.GetEvents(ctx, limit)
}
