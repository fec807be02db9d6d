package repository

import "errors"

// Typed failure categories surfaced by Storage implementations. Callers match
// them with errors.Is; the underlying driver error stays on the wrap chain.
var (
	// ErrDuplicate reports a unique-constraint violation, e.g. registering a
	// username that already exists.
	ErrDuplicate = errors.New("unique constraint violation")

	// ErrForeignKey reports a foreign-key violation, e.g. a comment
	// referencing a post that does not exist.
	ErrForeignKey = errors.New("foreign key violation")

	// ErrConnection reports that the store was unreachable or the pool could
	// not supply a usable connection.
	ErrConnection = errors.New("connection failure")

	// ErrTxFailed reports that a multi-statement unit (the comment insert and
	// its counter increment) could not be committed atomically. The insert is
	// rolled back in full.
	ErrTxFailed = errors.New("transaction failure")
)
