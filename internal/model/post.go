package model

import "time"

// Post represents a published article.
//
// Comments is a denormalized counter: it mirrors the number of comment rows
// referencing this post and is maintained inside the comment-creation
// transaction, never recomputed on read.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url,omitempty"`
	Comments  int       `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}
