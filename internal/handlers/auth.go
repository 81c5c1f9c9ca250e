package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/authd-io/apiserver/internal/services"
	"github.com/authd-io/apiserver/types"
)

// AuthHandler exposes signup, login, and current-user endpoints.
type AuthHandler struct {
	accounts *services.AccountService
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, accounts *services.AccountService) {
	handler := NewAuthHandler(accounts)

	r.Post("/signup", handler.Signup)
	r.Post("/login", handler.Login)
	r.Get("/me", handler.Me)
}

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccountResponse is the public projection of an account. It never
// carries the password hash.
type AccountResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Signup creates a new account from a JSON body.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	account, err := h.accounts.Signup(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, services.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, "Username already taken")
		case errors.Is(err, services.ErrEmptyPassword):
			writeError(w, http.StatusBadRequest, "Password cannot be empty")
		case errors.Is(err, services.ErrInvalidEmail):
			writeError(w, http.StatusUnprocessableEntity, "Invalid email address")
		default:
			writeError(w, http.StatusInternalServerError, "Error creating user")
		}
		return
	}

	writeJSON(w, http.StatusOK, projection(account))
}

// Login verifies form-encoded credentials and returns a bearer token.
// The email may arrive in an "email" or, for OAuth2-password-style
// clients, a "username" form field.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	if email == "" {
		email = strings.TrimSpace(r.PostFormValue("username"))
	}
	password := r.PostFormValue("password")

	token, err := h.accounts.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	writeJSON(w, http.StatusOK, token)
}

// Me resolves the bearer token from the Authorization header to its
// owning account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	tokenString, err := bearerToken(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	account, err := h.accounts.ResolveCurrentUser(r.Context(), tokenString)
	if err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			writeError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error loading user")
		return
	}

	writeJSON(w, http.StatusOK, projection(account))
}

func projection(account types.Account) AccountResponse {
	return AccountResponse{
		ID:       account.ID,
		Email:    account.Email,
		Username: account.Username,
	}
}
