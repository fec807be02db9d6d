package repository

import (
	"context"
	"time"

	"blogapi/internal/model"
)

// Storage defines all data access for the application's entities using SQL
// queries only. No business logic here — strictly persistence operations.
//
// Conventions shared by every operation:
//   - single-record lookups return (nil, nil) when no row matches; absence is
//     never an error
//   - multi-record lookups return an empty slice when no rows match
//   - ids are assigned by the database and never supplied at creation time
//   - store failures surface as typed errors (ErrDuplicate, ErrForeignKey,
//     ErrConnection, ErrTxFailed) wrapping the driver error
type Storage interface {
	// GetUser returns the user with the given id, or nil if none exists.
	GetUser(ctx context.Context, id int64) (*model.User, error)

	// GetUserByUsername does an exact-match lookup on the unique username.
	// Case sensitivity follows the database collation (case-sensitive under
	// the default C/en_US collations this schema is deployed with).
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// CreateUser inserts a new user row and returns the stored record.
	// A username collision fails with ErrDuplicate.
	CreateUser(ctx context.Context, in NewUser) (*model.User, error)

	// CreatePost inserts a new post row. The comments counter starts at the
	// schema default of 0. An unknown user id fails with ErrForeignKey.
	CreatePost(ctx context.Context, in NewPost) (*model.Post, error)

	// GetPosts returns up to limit posts ordered by creation time descending
	// (ties broken by id descending, so pagination is deterministic),
	// skipping the first offset rows. Both arguments must be non-negative;
	// a limit of 0 yields an empty slice.
	GetPosts(ctx context.Context, limit, offset int) ([]model.Post, error)

	// GetPostByID returns the post with the given id, or nil if none exists.
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)

	// GetUserPosts returns all posts owned by userID, newest first. An
	// unknown user id yields an empty slice, not an error.
	GetUserPosts(ctx context.Context, userID int64) ([]model.Post, error)

	// SetPostImage stores the image URL on an existing post row.
	SetPostImage(ctx context.Context, id int64, imageURL string) error

	// CreateComment inserts the comment row and increments the owning post's
	// comments counter inside one transaction. The increment is a relative
	// update evaluated by the server, so concurrent comment creations against
	// the same post never lose updates. If the pair cannot commit, the insert
	// is rolled back and the call fails with ErrTxFailed; an unknown post id
	// fails with ErrForeignKey.
	CreateComment(ctx context.Context, in NewComment) (*model.Comment, error)

	// GetPostComments returns all comments on postID, newest first. An
	// unknown post id yields an empty slice, not an error.
	GetPostComments(ctx context.Context, postID int64) ([]model.Comment, error)

	// CreateEvent inserts a new event row and returns the stored record.
	CreateEvent(ctx context.Context, in NewEvent) (*model.Event, error)

	// GetEvents returns up to limit events ordered by event date ascending
	// (soonest first), independent of insertion order. limit must be
	// non-negative.
	GetEvents(ctx context.Context, limit int) ([]model.Event, error)

	// GetStatistics returns the statistics row with the greatest LastUpdated,
	// or nil if none have been recorded yet.
	GetStatistics(ctx context.Context) (*model.Statistics, error)

	// RecordStatistics appends a new statistics row. LastUpdated is stamped
	// by the database at insert time; callers cannot set it. Earlier rows are
	// never overwritten.
	RecordStatistics(ctx context.Context, in Snapshot) (*model.Statistics, error)

	// Counts reports the current number of user, post and comment rows. Used
	// to build statistics snapshots.
	Counts(ctx context.Context) (Counts, error)
}

// NewUser holds the caller-supplied fields for CreateUser.
type NewUser struct {
	Username     string
	PasswordHash string
	Bio          string
}

// NewPost holds the caller-supplied fields for CreatePost.
type NewPost struct {
	UserID int64
	Title  string
	Body   string
}

// NewComment holds the caller-supplied fields for CreateComment.
type NewComment struct {
	PostID int64
	Author string
	Body   string
}

// NewEvent holds the caller-supplied fields for CreateEvent.
type NewEvent struct {
	Title       string
	Description string
	Location    string
	EventDate   time.Time
}

// Snapshot holds the aggregate values for one statistics row.
type Snapshot struct {
	Users    int64
	Posts    int64
	Comments int64
}

// Counts is the result of Storage.Counts.
type Counts struct {
	Users    int64
	Posts    int64
	Comments int64
}
