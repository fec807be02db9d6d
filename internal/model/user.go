package model

import "time"

// User represents a registered account.
// This is a pure domain model with no database-specific dependencies or tags.
// The password hash is opaque to this layer; hashing and verification belong
// to the authentication collaborator.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
}
