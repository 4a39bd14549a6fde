package web

import (
	"errors"
	"net/http"

	"github.com/gregapec/tovor/internal/ledger"
)

// ledgerFor builds the per-request ledger scoped to the logged-in user.
func (s *Server) ledgerFor(r *http.Request) (*ledger.Ledger, error) {
	claims := GetWebClaims(r.Context())
	return ledger.New(r.Context(), s.Store, s.Mirror, claims.Email)
}

// errorMessage maps ledger errors to user-visible messages.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, ledger.ErrItemNotFound):
		return "Item not found."
	case errors.Is(err, ledger.ErrNegativeQuantity):
		return "Quantity cannot go negative."
	case errors.Is(err, ledger.ErrInsufficientStock):
		return "Insufficient stock for that shipment."
	default:
		return "Something went wrong. Try again."
	}
}
