package postgres

import (
	"context"
	"database/sql"
	"errors"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// GetStatistics returns the most recent statistics row. The id tiebreak picks
// the later insert when two rows share a timestamp. An empty table yields
// (nil, nil).
func (r *StoragePostgres) GetStatistics(ctx context.Context) (*model.Statistics, error) {
	const q = `
		SELECT id, users_count, posts_count, comments_count, last_updated
		FROM statistics
		ORDER BY last_updated DESC, id DESC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, q)
	var s model.Statistics
	err := row.Scan(&s.ID, &s.Users, &s.Posts, &s.Comments, &s.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError("get statistics", err)
	}
	return &s, nil
}

// RecordStatistics appends a new statistics row. last_updated comes from the
// table default (now()), never from the caller, so history stays ordered by
// insertion time.
func (r *StoragePostgres) RecordStatistics(ctx context.Context, in repository.Snapshot) (*model.Statistics, error) {
	const q = `
		INSERT INTO statistics (users_count, posts_count, comments_count)
		VALUES ($1, $2, $3)
		RETURNING id, users_count, posts_count, comments_count, last_updated
	`
	row := r.db.QueryRowContext(ctx, q, in.Users, in.Posts, in.Comments)
	var s model.Statistics
	if err := row.Scan(&s.ID, &s.Users, &s.Posts, &s.Comments, &s.LastUpdated); err != nil {
		return nil, wrapError("record statistics", err)
	}
	return &s, nil
}

// Counts reports current row counts for the aggregate tables in one round trip.
func (r *StoragePostgres) Counts(ctx context.Context) (repository.Counts, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM posts),
			(SELECT COUNT(*) FROM comments)
	`
	var c repository.Counts
	if err := r.db.QueryRowContext(ctx, q).Scan(&c.Users, &c.Posts, &c.Comments); err != nil {
		return repository.Counts{}, wrapError("counts", err)
	}
	return c, nil
}
