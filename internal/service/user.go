package service

import (
	"context"
	"errors"
	"fmt"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// UserService defines the use cases around accounts. Password hashing and
// session handling stay with the authentication layer; this service only
// persists what it is given.
type UserService interface {
	// Register creates a new account. A taken username fails with ErrUsernameTaken.
	Register(ctx context.Context, username, passwordHash, bio string) (*model.User, error)

	// Get returns the user by id, or ErrNotFound.
	Get(ctx context.Context, id int64) (*model.User, error)

	// GetByUsername returns the user by exact username, or ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type userService struct {
	store repository.Storage
}

// NewUserService constructs a new UserService over the storage gateway.
func NewUserService(store repository.Storage) UserService {
	return &userService{store: store}
}

func (s *userService) Register(ctx context.Context, username, passwordHash, bio string) (*model.User, error) {
	if username == "" || passwordHash == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	u, err := s.store.CreateUser(ctx, repository.NewUser{
		Username:     username,
		PasswordHash: passwordHash,
		Bio:          bio,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	u, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}
