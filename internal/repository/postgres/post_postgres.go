package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const postColumns = `id, user_id, title, body, COALESCE(image_url, ''), comments, created_at`

// CreatePost inserts a new post row. The comments counter takes the schema
// default of 0; it is not listed in the insert.
func (r *StoragePostgres) CreatePost(ctx context.Context, in repository.NewPost) (*model.Post, error) {
	const q = `
		INSERT INTO posts (user_id, title, body)
		VALUES ($1, $2, $3)
		RETURNING ` + postColumns + `
	`
	row := r.db.QueryRowContext(ctx, q, in.UserID, in.Title, in.Body)
	var p model.Post
	if err := scanPost(row, &p); err != nil {
		return nil, wrapError("create post", err)
	}
	return &p, nil
}

// GetPosts returns one page of posts, newest first. The id tiebreak keeps
// repeated calls with the same arguments deterministic when several posts
// share a creation timestamp.
func (r *StoragePostgres) GetPosts(ctx context.Context, limit, offset int) ([]model.Post, error) {
	if limit < 0 {
		return nil, fmt.Errorf("get posts: negative limit %d", limit)
	}
	if offset < 0 {
		return nil, fmt.Errorf("get posts: negative offset %d", offset)
	}

	const q = `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, wrapError("get posts", err)
	}
	return collectPosts(rows, "get posts")
}

// GetPostByID fetches a single post by id. A missing row yields (nil, nil).
func (r *StoragePostgres) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	const q = `
		SELECT ` + postColumns + `
		FROM posts
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var p model.Post
	err := scanPost(row, &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError("get post by id", err)
	}
	return &p, nil
}

// GetUserPosts returns every post owned by userID, newest first.
func (r *StoragePostgres) GetUserPosts(ctx context.Context, userID int64) ([]model.Post, error) {
	const q = `
		SELECT ` + postColumns + `
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, wrapError("get user posts", err)
	}
	return collectPosts(rows, "get user posts")
}

// SetPostImage stores the uploaded image URL on the post row.
func (r *StoragePostgres) SetPostImage(ctx context.Context, id int64, imageURL string) error {
	const q = `UPDATE posts SET image_url = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id, imageURL); err != nil {
		return wrapError("set post image", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner, p *model.Post) error {
	return row.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.ImageURL, &p.Comments, &p.CreatedAt)
}

func collectPosts(rows *sql.Rows, op string) ([]model.Post, error) {
	defer rows.Close()

	items := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, wrapError(op, err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(op, err)
	}
	return items, nil
}
