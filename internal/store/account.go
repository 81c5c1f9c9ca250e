package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/authd-io/apiserver/types"
	"github.com/lib/pq"
)

const (
	uniqueViolation    = "23505"
	emailConstraint    = "accounts_email_key"
	usernameConstraint = "accounts_username_key"
)

// AccountRepository handles persistence for accounts.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (types.Account, error) {
	const query = `
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM accounts
		WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (types.Account, error) {
	const query = `
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM accounts
		WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByEmailOrUsername returns the first account matching either field.
// Email matches sort first so that a colliding email wins even when the
// username also collides with a different account.
func (r *AccountRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (types.Account, error) {
	const query = `
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM accounts
		WHERE email = $1 OR username = $2
		ORDER BY (email = $1) DESC
		LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email, username))
}

// Create inserts a new account. The id and created_at are assigned by the
// database; unique-constraint violations surface as ErrDuplicateEmail or
// ErrDuplicateUsername so callers can map the check-then-insert race to the
// same outcome as the pre-check.
func (r *AccountRepository) Create(ctx context.Context, email, username, passwordHash string) (types.Account, error) {
	const query = `
		INSERT INTO accounts (email, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	account := types.Account{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
	}
	err := r.db.QueryRowContext(ctx, query, email, username, passwordHash).
		Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			switch pqErr.Constraint {
			case emailConstraint:
				return types.Account{}, ErrDuplicateEmail
			case usernameConstraint:
				return types.Account{}, ErrDuplicateUsername
			}
		}
		return types.Account{}, err
	}
	return account, nil
}

func (r *AccountRepository) scanOne(row *sql.Row) (types.Account, error) {
	var account types.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Username,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Account{}, ErrNotFound
		}
		return types.Account{}, err
	}
	return account, nil
}
