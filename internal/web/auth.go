package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gregapec/tovor/internal/auth"
	"github.com/gregapec/tovor/internal/identity"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Log in"})
}

// LoginSubmit handles POST /login. The identity provider owns the
// credentials; the login path only checks that the account exists.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	if email == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Enter your email address.",
		})
		return
	}

	account, err := s.Identity.FindAccount(r.Context(), email)
	if err != nil {
		if !errors.Is(err, identity.ErrAccountNotFound) {
			slog.Error("failed to look up account", "error", err)
		}
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Login failed. Check your credentials.",
		})
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, account.ID, account.Email)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Login failed. Try again.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 hours
	})

	slog.Info("user logged in", "user", account.Email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterPage handles GET /register.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "register.html", &PageData{Title: "Register"})
}

// RegisterSubmit handles POST /register.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.Render(w, "register.html", &PageData{
			Title: "Register",
			Error: "Enter an email address and a password.",
		})
		return
	}

	if _, err := s.Identity.CreateAccount(r.Context(), email, password); err != nil {
		if errors.Is(err, identity.ErrDuplicateAccount) {
			s.Templates.Render(w, "register.html", &PageData{
				Title: "Register",
				Error: "Registration failed. Try a different email.",
			})
			return
		}
		slog.Error("failed to create account", "error", err)
		s.Templates.Render(w, "register.html", &PageData{
			Title: "Register",
			Error: "Registration failed. Try again.",
		})
		return
	}

	slog.Info("user registered", "user", email)
	s.Templates.Render(w, "login.html", &PageData{
		Title:   "Log in",
		Success: "Registration successful. Please log in.",
	})
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
