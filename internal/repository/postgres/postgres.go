package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"blogapi/internal/repository"
)

// StoragePostgres is a PostgreSQL implementation of repository.Storage.
// It uses database/sql with parameterized queries and contains no business logic.
type StoragePostgres struct {
	db *sql.DB
}

// NewStoragePostgres creates a new StoragePostgres gateway over the shared pool.
func NewStoragePostgres(db *sql.DB) *StoragePostgres {
	return &StoragePostgres{db: db}
}

var _ repository.Storage = (*StoragePostgres)(nil)

// PostgreSQL SQLSTATE codes this layer distinguishes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	classConnectionFailure  = "08" // connection exception class
)

// wrapError maps a driver error onto the repository's typed sentinels,
// keeping the original error on the wrap chain. Callers must not pass
// sql.ErrNoRows here; absence is a nil result, not a failure.
func wrapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return fmt.Errorf("%s: %w: %v", op, repository.ErrDuplicate, err)
		case pgErr.Code == codeForeignKeyViolation:
			return fmt.Errorf("%s: %w: %v", op, repository.ErrForeignKey, err)
		case strings.HasPrefix(pgErr.Code, classConnectionFailure):
			return fmt.Errorf("%s: %w: %v", op, repository.ErrConnection, err)
		}
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%s: %w: %v", op, repository.ErrConnection, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
