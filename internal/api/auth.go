package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gregapec/tovor/internal/auth"
	"github.com/gregapec/tovor/internal/identity"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	Identity  *identity.Provider
	JWTSecret string
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password required")
		return
	}

	account, err := h.Identity.CreateAccount(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrDuplicateAccount) {
			jsonError(w, http.StatusConflict, "account already exists")
			return
		}
		slog.Error("failed to create account", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	jsonResponse(w, http.StatusCreated, account)
}

// Login handles POST /api/auth/login. The identity provider only confirms
// that the account exists; the secret is not verified here.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		jsonError(w, http.StatusBadRequest, "email required")
		return
	}

	account, err := h.Identity.FindAccount(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, identity.ErrAccountNotFound) {
			jsonError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		slog.Error("failed to look up account", "error", err)
		jsonError(w, http.StatusInternalServerError, "login failed")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, account.ID, account.Email)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		jsonError(w, http.StatusInternalServerError, "login failed")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"token": token})
}
