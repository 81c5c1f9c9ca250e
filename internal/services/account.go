package services

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"

	"github.com/authd-io/apiserver/internal/auth"
	"github.com/authd-io/apiserver/internal/events"
	"github.com/authd-io/apiserver/internal/store"
	"github.com/authd-io/apiserver/types"
)

// TokenType marks issued tokens as bearer credentials.
const TokenType = "bearer"

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (types.Account, error)
	GetByEmail(ctx context.Context, email string) (types.Account, error)
	GetByEmailOrUsername(ctx context.Context, email, username string) (types.Account, error)
	Create(ctx context.Context, email, username, passwordHash string) (types.Account, error)
}

// Token is the credential pair returned by a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AccountService implements signup, login, and token-to-account resolution.
// It is stateless between requests; all durable state lives in the repository.
type AccountService struct {
	repo   AccountRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	stream *events.Stream
	logger *slog.Logger
}

// NewAccountService constructs an AccountService. stream may be nil when no
// broker is configured.
func NewAccountService(repo AccountRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService, stream *events.Stream, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		stream: stream,
		logger: logger,
	}
}

// Signup registers a new account. The duplicate pre-check gives friendly
// errors on the common path; the store's uniqueness constraints remain the
// authoritative guard, and a late violation maps to the same error kind.
func (s *AccountService) Signup(ctx context.Context, email, username, password string) (types.Account, error) {
	if password == "" {
		return types.Account{}, ErrEmptyPassword
	}
	if !validEmail(email) {
		return types.Account{}, ErrInvalidEmail
	}

	existing, err := s.repo.GetByEmailOrUsername(ctx, email, username)
	if err == nil {
		if existing.Email == email {
			return types.Account{}, ErrEmailTaken
		}
		return types.Account{}, ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("signup duplicate check failed", "error", err)
		return types.Account{}, ErrInternal
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return types.Account{}, ErrInternal
	}

	account, err := s.repo.Create(ctx, email, username, passwordHash)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			return types.Account{}, ErrEmailTaken
		case errors.Is(err, store.ErrDuplicateUsername):
			return types.Account{}, ErrUsernameTaken
		}
		s.logger.Error("account creation failed", "error", err)
		return types.Account{}, ErrInternal
	}

	s.publishAccountCreated(ctx, account)

	return account, nil
}

// Login verifies credentials and mints a bearer token. Unknown email and
// wrong password return the identical error.
func (s *AccountService) Login(ctx context.Context, email, password string) (Token, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Token{}, ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", "error", err)
		return Token{}, ErrInternal
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return Token{}, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(account.ID)
	if err != nil {
		s.logger.Error("token issuance failed", "error", err)
		return Token{}, ErrInternal
	}

	return Token{AccessToken: accessToken, TokenType: TokenType}, nil
}

// ResolveCurrentUser verifies the presented token and loads the owning
// account. The token is validated before its embedded id is trusted.
func (s *AccountService) ResolveCurrentUser(ctx context.Context, tokenString string) (types.Account, error) {
	accountID, err := s.tokens.Verify(tokenString)
	if err != nil {
		return types.Account{}, ErrNotAuthenticated
	}

	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Account{}, ErrNotAuthenticated
		}
		s.logger.Error("account lookup failed", "error", err, "account_id", accountID)
		return types.Account{}, ErrInternal
	}

	return account, nil
}

// publishAccountCreated emits the signup event best effort; a broker
// failure never fails the signup itself.
func (s *AccountService) publishAccountCreated(ctx context.Context, account types.Account) {
	if s.stream == nil {
		return
	}
	if err := s.stream.PublishAccountCreated(ctx, account); err != nil {
		s.logger.Error("account.created publish failed", "error", err, "account_id", account.ID)
	}
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
