package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func accountRows(id int64, email, username string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "username", "password_hash", "created_at", "updated_at"}).
		AddRow(id, email, username, "$2a$10$hash", time.Now(), nil)
}

func TestGetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`(?s)SELECT (.+) FROM accounts\s+WHERE email = \$1`).
		WithArgs("a@b.com").
		WillReturnRows(accountRows(1, "a@b.com", "alice"))

	account, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.ID)
	assert.Equal(t, "a@b.com", account.Email)
	assert.Equal(t, "alice", account.Username)
	assert.Nil(t, account.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`(?s)SELECT (.+) FROM accounts\s+WHERE email = \$1`).
		WithArgs("missing@b.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "missing@b.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`(?s)SELECT (.+) FROM accounts\s+WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByEmailOrUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`(?s)SELECT (.+) FROM accounts\s+WHERE email = \$1 OR username = \$2`).
		WithArgs("a@b.com", "alice").
		WillReturnRows(accountRows(1, "a@b.com", "alice"))

	account, err := repo.GetByEmailOrUsername(context.Background(), "a@b.com", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	created := time.Now()
	mock.ExpectQuery(`(?s)INSERT INTO accounts (.+) RETURNING id, created_at`).
		WithArgs("a@b.com", "alice", "$2a$10$hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), created))

	account, err := repo.Create(context.Background(), "a@b.com", "alice", "$2a$10$hash")
	require.NoError(t, err)
	assert.Equal(t, int64(3), account.ID)
	assert.Equal(t, "a@b.com", account.Email)
	assert.Equal(t, "alice", account.Username)
	assert.Equal(t, created, account.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("a@b.com", "alice", "$2a$10$hash").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_email_key"})

	_, err := repo.Create(context.Background(), "a@b.com", "alice", "$2a$10$hash")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreateDuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("a@b.com", "alice", "$2a$10$hash").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_username_key"})

	_, err := repo.Create(context.Background(), "a@b.com", "alice", "$2a$10$hash")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestCreateOtherError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("a@b.com", "alice", "$2a$10$hash").
		WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), "a@b.com", "alice", "$2a$10$hash")
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}
