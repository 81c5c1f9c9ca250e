package types

import "time"

// Account represents a registered identity in the system.
type Account struct {
	// ID is the unique identifier assigned by the store at creation.
	ID int64 `json:"id" db:"id"`

	// Email is the account's email address, unique across all accounts.
	Email string `json:"email" db:"email"`

	// Username is the unique login name chosen at signup.
	Username string `json:"username" db:"username"`

	// PasswordHash stores the bcrypt hash of the account's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the server-assigned creation timestamp.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is set on the first mutation of the record and is nil
	// for accounts that have never been modified.
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
