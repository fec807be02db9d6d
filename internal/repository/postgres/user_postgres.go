package postgres

import (
	"context"
	"database/sql"
	"errors"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// GetUser fetches a single user by id. A missing row yields (nil, nil).
func (r *StoragePostgres) GetUser(ctx context.Context, id int64) (*model.User, error) {
	const q = `
		SELECT id, username, password_hash, bio, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, q, id), "get user")
}

// GetUserByUsername fetches a single user by exact username match.
func (r *StoragePostgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `
		SELECT id, username, password_hash, bio, created_at
		FROM users
		WHERE username = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, q, username), "get user by username")
}

// CreateUser inserts a new user row and returns the stored record.
func (r *StoragePostgres) CreateUser(ctx context.Context, in repository.NewUser) (*model.User, error) {
	const q = `
		INSERT INTO users (username, password_hash, bio)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, bio, created_at
	`
	row := r.db.QueryRowContext(ctx, q, in.Username, in.PasswordHash, in.Bio)
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Bio, &u.CreatedAt); err != nil {
		return nil, wrapError("create user", err)
	}
	return &u, nil
}

func (r *StoragePostgres) scanUser(row *sql.Row, op string) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Bio, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError(op, err)
	}
	return &u, nil
}
