package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when an insert violates the email
// uniqueness constraint.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrDuplicateUsername is returned when an insert violates the username
// uniqueness constraint.
var ErrDuplicateUsername = errors.New("username already exists")
