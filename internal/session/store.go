// Package session provides the session-persistence capability consumed by the
// authentication layer. The store shares the application's connection pool
// but owns its table; the schema is private to this package.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Store gives the authentication collaborator durable session records keyed
// by session id. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the payload stored under sid, or (nil, nil) when the
	// session does not exist or has expired.
	Get(ctx context.Context, sid string) ([]byte, error)

	// Set stores payload under sid with the given lifetime, replacing any
	// existing record.
	Set(ctx context.Context, sid string, payload []byte, ttl time.Duration) error

	// Destroy removes the session. Destroying a missing session is not an error.
	Destroy(ctx context.Context, sid string) error
}

// PostgresStore implements Store on the shared *sql.DB pool.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore provisions the sessions table if needed and returns the
// store. Called once at startup; the handle lives for the process lifetime.
func NewPostgresStore(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	const q = `CREATE TABLE IF NOT EXISTS sessions (
  sid        TEXT        PRIMARY KEY,
  payload    BYTEA       NOT NULL,
  expires_at TIMESTAMPTZ NOT NULL
)`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return nil, fmt.Errorf("provision sessions table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Get returns the payload for sid. Expired rows are treated as absent; they
// are removed lazily by Set.
func (s *PostgresStore) Get(ctx context.Context, sid string) ([]byte, error) {
	const q = `SELECT payload FROM sessions WHERE sid = $1 AND expires_at > now()`
	var payload []byte
	err := s.db.QueryRowContext(ctx, q, sid).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return payload, nil
}

// Set upserts the session record and reaps expired rows while it is here.
func (s *PostgresStore) Set(ctx context.Context, sid string, payload []byte, ttl time.Duration) error {
	const reap = `DELETE FROM sessions WHERE expires_at <= now()`
	if _, err := s.db.ExecContext(ctx, reap); err != nil {
		return fmt.Errorf("reap sessions: %w", err)
	}

	const q = `
		INSERT INTO sessions (sid, payload, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (sid) DO UPDATE SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at
	`
	if _, err := s.db.ExecContext(ctx, q, sid, payload, time.Now().Add(ttl)); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Destroy removes the session row if it exists.
func (s *PostgresStore) Destroy(ctx context.Context, sid string) error {
	const q = `DELETE FROM sessions WHERE sid = $1`
	if _, err := s.db.ExecContext(ctx, q, sid); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
