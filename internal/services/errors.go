package services

import "errors"

// Error kinds returned by AccountService. The HTTP layer maps each to a
// status code; ErrInternal is the only one logged with detail server-side.
var (
	// ErrEmptyPassword rejects signup with an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrInvalidEmail rejects signup with a syntactically invalid email.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrEmailTaken means another account already owns the email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUsernameTaken means another account already owns the username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrNotAuthenticated covers any failure to resolve a bearer token
	// back to an account.
	ErrNotAuthenticated = errors.New("could not validate credentials")

	// ErrInternal is an opaque wrapper for unexpected store or hashing
	// failures.
	ErrInternal = errors.New("internal error")
)
