package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
)

// DefaultPostLimit is the page size used when the caller does not supply one.
const DefaultPostLimit = 10

// PostService defines the use cases around posts and their comments.
type PostService interface {
	// Create publishes a new post owned by userID.
	Create(ctx context.Context, userID int64, title, body string) (*model.Post, error)

	// List returns one page of posts, newest first. limit and offset must be
	// non-negative; a limit of 0 yields an empty page.
	List(ctx context.Context, limit, offset int) ([]model.Post, error)

	// Get returns the post by id, or ErrNotFound.
	Get(ctx context.Context, id int64) (*model.Post, error)

	// UserPosts returns all posts by userID, newest first.
	UserPosts(ctx context.Context, userID int64) ([]model.Post, error)

	// AddComment attaches a comment to postID; the post's comment counter is
	// incremented in the same transaction. An unknown post fails with ErrNotFound.
	AddComment(ctx context.Context, postID int64, author, body string) (*model.Comment, error)

	// Comments returns all comments on postID, newest first.
	Comments(ctx context.Context, postID int64) ([]model.Comment, error)

	// AttachImage uploads a cover image to object storage and records its key
	// on the post. The uploaded object is removed again if the record cannot
	// be saved.
	AttachImage(ctx context.Context, postID int64, r io.Reader, originalFilename, contentType string, size int64) (*model.Post, error)

	// ImageURL returns a time-limited download URL for the post's cover
	// image. ErrNotFound covers both a missing post and a post without one.
	ImageURL(ctx context.Context, postID int64) (string, error)
}

// imageURLExpiry bounds how long a presigned image link stays valid.
const imageURLExpiry = 15 * time.Minute

type postService struct {
	store repository.Storage
	media storage.Storage
}

// NewPostService constructs a new PostService over the storage gateway and
// the object store used for post images.
func NewPostService(store repository.Storage, media storage.Storage) PostService {
	return &postService{store: store, media: media}
}

func (s *postService) Create(ctx context.Context, userID int64, title, body string) (*model.Post, error) {
	if title == "" || body == "" {
		return nil, fmt.Errorf("%w: title and body are required", ErrInvalidInput)
	}

	p, err := s.store.CreatePost(ctx, repository.NewPost{UserID: userID, Title: title, Body: body})
	if err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return p, nil
}

func (s *postService) List(ctx context.Context, limit, offset int) ([]model.Post, error) {
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must be non-negative", ErrInvalidInput)
	}
	return s.store.GetPosts(ctx, limit, offset)
}

func (s *postService) Get(ctx context.Context, id int64) (*model.Post, error) {
	p, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *postService) UserPosts(ctx context.Context, userID int64) ([]model.Post, error) {
	return s.store.GetUserPosts(ctx, userID)
}

func (s *postService) AddComment(ctx context.Context, postID int64, author, body string) (*model.Comment, error) {
	if author == "" || body == "" {
		return nil, fmt.Errorf("%w: author and body are required", ErrInvalidInput)
	}

	c, err := s.store.CreateComment(ctx, repository.NewComment{PostID: postID, Author: author, Body: body})
	if err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
		}
		return nil, err
	}
	return c, nil
}

func (s *postService) Comments(ctx context.Context, postID int64) ([]model.Comment, error) {
	// Zero comments and an unknown post both map to an empty slice.
	return s.store.GetPostComments(ctx, postID)
}

func (s *postService) AttachImage(ctx context.Context, postID int64, r io.Reader, originalFilename, contentType string, size int64) (*model.Post, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	p, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("posts", uuid.New().String()+ext))

	objInfo, err := s.media.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	if err := s.store.SetPostImage(ctx, postID, objInfo.Key); err != nil {
		// Rollback: delete the object from storage
		if delErr := s.media.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	p.ImageURL = objInfo.Key
	return p, nil
}

func (s *postService) ImageURL(ctx context.Context, postID int64) (string, error) {
	p, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		return "", err
	}
	if p == nil || p.ImageURL == "" {
		return "", ErrNotFound
	}

	u, err := s.media.PresignGet(ctx, p.ImageURL, imageURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign image: %w", err)
	}
	return u, nil
}
