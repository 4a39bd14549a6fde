package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/gregapec/tovor/internal/ledger"
)

// newShipmentID mints a shipment id for one form submission.
func newShipmentID() string {
	return "SHIP-" + uuid.NewString()[:8]
}

// ScheduleShipmentPage handles GET /shipments/schedule.
func (s *Server) ScheduleShipmentPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	l, err := s.ledgerFor(r)
	if err != nil {
		slog.Error("failed to load ledger", "user", claims.Email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "schedule_shipment.html", &struct {
		PageData
		Inventory map[string]ledger.ItemView
	}{
		PageData:  PageData{Title: "Schedule shipment", Email: claims.Email},
		Inventory: l.InventorySnapshot(),
	})
}

// ScheduleShipmentSubmit handles POST /shipments/schedule.
func (s *Server) ScheduleShipmentSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	itemID := r.FormValue("item_id")
	destination := r.FormValue("destination")
	quantity, qerr := strconv.Atoi(r.FormValue("quantity"))
	scheduledDate, derr := time.Parse("2006-01-02", r.FormValue("scheduled_date"))

	renderError := func(l *ledger.Ledger, msg string) {
		var inventory map[string]ledger.ItemView
		if l != nil {
			inventory = l.InventorySnapshot()
		}
		s.Templates.Render(w, "schedule_shipment.html", &struct {
			PageData
			Inventory map[string]ledger.ItemView
		}{
			PageData:  PageData{Title: "Schedule shipment", Email: claims.Email, Error: msg},
			Inventory: inventory,
		})
	}

	l, err := s.ledgerFor(r)
	if err != nil {
		slog.Error("failed to load ledger", "user", claims.Email, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if itemID == "" || qerr != nil || derr != nil {
		renderError(l, "Pick an item, a whole-number quantity and a date.")
		return
	}

	shipmentID := newShipmentID()
	scheduled, err := l.ScheduleShipment(r.Context(), shipmentID, itemID, quantity, destination, scheduledDate)
	if err != nil {
		slog.Warn("failed to schedule shipment", "user", claims.Email, "item", itemID, "error", err)
		renderError(l, errorMessage(err))
		return
	}
	if !scheduled {
		// Freshly minted id collided with an existing row; treat the
		// replay skip as a user-visible rejection here.
		renderError(l, fmt.Sprintf("Shipment %s already exists.", shipmentID))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
