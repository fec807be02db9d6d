package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"blogapi/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var postCols = []string{"id", "user_id", "title", "body", "image_url", "comments", "created_at"}

func TestStoragePostgres_CreatePost(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStoragePostgres(db)
	ctx := context.Background()

	t.Run("success with counter default", func(t *testing.T) {
		rows := sqlmock.NewRows(postCols).
			AddRow(1, 5, "title", "body", "", 0, time.Now())

		mock.ExpectQuery("INSERT INTO posts").
			WithArgs(int64(5), "title", "body").
			WillReturnRows(rows)

		p, err := repo.CreatePost(ctx, repository.NewPost{UserID: 5, Title: "title", Body: "body"})

		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.Equal(t, int64(1), p.ID)
		assert.Equal(t, 0, p.Comments)
	})

	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO posts").
			WithArgs(int64(404), "title", "body").
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "posts_user_id_fkey"})

		p, err := repo.CreatePost(ctx, repository.NewPost{UserID: 404, Title: "title", Body: "body"})

		assert.Nil(t, p)
		assert.ErrorIs(t, err, repository.ErrForeignKey)
	})
}

func TestStoragePostgres_GetPosts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStoragePostgres(db)
	ctx := context.Background()

	t.Run("page ordered newest first", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(postCols).
			AddRow(3, 1, "third", "c", "", 0, now).
			AddRow(2, 1, "second", "b", "", 2, now.Add(-time.Hour)).
			AddRow(1, 1, "first", "a", "", 1, now.Add(-2*time.Hour))

		mock.ExpectQuery("SELECT (.+) FROM posts ORDER BY created_at DESC, id DESC LIMIT (.+) OFFSET").
			WithArgs(10, 0).
			WillReturnRows(rows)

		posts, err := repo.GetPosts(ctx, 10, 0)

		assert.NoError(t, err)
		assert.Len(t, posts, 3)
		assert.Equal(t, int64(3), posts[0].ID)
		assert.Equal(t, int64(1), posts[2].ID)
	})

	t.Run("zero limit yields empty page", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM posts ORDER BY created_at DESC, id DESC LIMIT (.+) OFFSET").
			WithArgs(0, 0).
			WillReturnRows(sqlmock.NewRows(postCols))

		posts, err := repo.GetPosts(ctx, 0, 0)

		assert.NoError(t, err)
		assert.Empty(t, posts)
		assert.NotNil(t, posts)
	})

	t.Run("negative limit rejected", func(t *testing.T) {
		posts, err := repo.GetPosts(ctx, -1, 0)
		assert.Error(t, err)
		assert.Nil(t, posts)
	})

	t.Run("negative offset rejected", func(t *testing.T) {
		posts, err := repo.GetPosts(ctx, 10, -1)
		assert.Error(t, err)
		assert.Nil(t, posts)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoragePostgres_GetPostByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStoragePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(postCols).
			AddRow(1, 5, "title", "body", "posts/cover.png", 2, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM posts WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnRows(rows)

		p, err := repo.GetPostByID(ctx, 1)

		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.Equal(t, 2, p.Comments)
	})

	t.Run("missing is not an error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE id = ?").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		p, err := repo.GetPostByID(ctx, 99)

		assert.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestStoragePostgres_GetUserPosts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStoragePostgres(db)
	ctx := context.Background()

	t.Run("unknown user yields empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE user_id = ?").
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows(postCols))

		posts, err := repo.GetUserPosts(ctx, 42)

		assert.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})
}

func TestStoragePostgres_SetPostImage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStoragePostgres(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE posts SET image_url").
		WithArgs(int64(1), "posts/cover.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.SetPostImage(ctx, 1, "posts/cover.png")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
