package web

import (
	"log/slog"
	"net/http"
)

// ResetPage handles GET /reset (confirmation page).
func (s *Server) ResetPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "reset.html", &PageData{
		Title: "Reset",
		Email: claims.Email,
	})
}

// ResetSubmit handles POST /reset. Reset never fails from the user's point
// of view: each backend is cleared best effort.
func (s *Server) ResetSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	l, err := s.ledgerFor(r)
	if err != nil {
		slog.Error("failed to load ledger", "user", claims.Email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	l.Reset(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
