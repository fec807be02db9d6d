package service

import (
	"context"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// StatsService defines the use cases around the site-statistics log.
type StatsService interface {
	// Latest returns the most recent snapshot, or ErrNotFound when none has
	// been recorded yet.
	Latest(ctx context.Context) (*model.Statistics, error)

	// Refresh counts the current rows and appends a new snapshot. Earlier
	// snapshots remain retrievable as history.
	Refresh(ctx context.Context) (*model.Statistics, error)
}

type statsService struct {
	store repository.Storage
}

// NewStatsService constructs a new StatsService over the storage gateway.
func NewStatsService(store repository.Storage) StatsService {
	return &statsService{store: store}
}

func (s *statsService) Latest(ctx context.Context) (*model.Statistics, error) {
	stats, err := s.store.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, ErrNotFound
	}
	return stats, nil
}

func (s *statsService) Refresh(ctx context.Context) (*model.Statistics, error) {
	counts, err := s.store.Counts(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.RecordStatistics(ctx, repository.Snapshot{
		Users:    counts.Users,
		Posts:    counts.Posts,
		Comments: counts.Comments,
	})
}
