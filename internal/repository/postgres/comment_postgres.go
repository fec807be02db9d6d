package postgres

import (
	"context"
	"fmt"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// CreateComment inserts the comment and bumps the owning post's comments
// counter in one transaction. The counter update is a server-evaluated
// relative expression, so concurrent creations against the same post all
// land under the default READ COMMITTED isolation. If either statement
// fails, the deferred rollback discards the insert.
func (r *StoragePostgres) CreateComment(ctx context.Context, in repository.NewComment) (*model.Comment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w: %v", repository.ErrTxFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	const qInsert = `
		INSERT INTO comments (post_id, author, body)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, author, body, created_at
	`
	row := tx.QueryRowContext(ctx, qInsert, in.PostID, in.Author, in.Body)
	var c model.Comment
	if err := row.Scan(&c.ID, &c.PostID, &c.Author, &c.Body, &c.CreatedAt); err != nil {
		return nil, wrapError("create comment", err)
	}

	const qBump = `UPDATE posts SET comments = comments + 1 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, qBump, in.PostID); err != nil {
		return nil, wrapError("increment comment counter", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create comment: %w: %v", repository.ErrTxFailed, err)
	}
	return &c, nil
}

// GetPostComments returns every comment on postID, newest first. An unknown
// post id simply matches zero rows.
func (r *StoragePostgres) GetPostComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	const q = `
		SELECT id, post_id, author, body, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, postID)
	if err != nil {
		return nil, wrapError("get post comments", err)
	}
	defer rows.Close()

	items := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Body, &c.CreatedAt); err != nil {
			return nil, wrapError("get post comments", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("get post comments", err)
	}
	return items, nil
}
