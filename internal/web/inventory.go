package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gregapec/tovor/internal/ledger"
)

// Home handles GET /: current inventory and shipments for the user.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	l, err := s.ledgerFor(r)
	if err != nil {
		slog.Error("failed to load ledger", "user", claims.Email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "home.html", &struct {
		PageData
		Inventory map[string]ledger.ItemView
		Shipments map[string]ledger.ShipmentView
	}{
		PageData:  PageData{Title: "Overview", Email: claims.Email},
		Inventory: l.InventorySnapshot(),
		Shipments: l.ShipmentSnapshot(),
	})
}

// AddInventoryPage handles GET /inventory/add.
func (s *Server) AddInventoryPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "add_inventory.html", &PageData{
		Title: "Add inventory",
		Email: claims.Email,
	})
}

// AddInventorySubmit handles POST /inventory/add.
func (s *Server) AddInventorySubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	itemID := r.FormValue("item_id")
	name := r.FormValue("name")
	location := r.FormValue("location")
	quantity, qerr := strconv.Atoi(r.FormValue("quantity"))

	if itemID == "" || name == "" || qerr != nil {
		s.Templates.Render(w, "add_inventory.html", &PageData{
			Title: "Add inventory",
			Email: claims.Email,
			Error: "Fill in an item id, a name and a whole-number quantity.",
		})
		return
	}

	l, err := s.ledgerFor(r)
	if err != nil {
		slog.Error("failed to load ledger", "user", claims.Email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := l.AddItem(r.Context(), itemID, name, quantity, location); err != nil {
		slog.Warn("failed to add item", "user", claims.Email, "item", itemID, "error", err)
		s.Templates.Render(w, "add_inventory.html", &PageData{
			Title: "Add inventory",
			Email: claims.Email,
			Error: errorMessage(err),
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
