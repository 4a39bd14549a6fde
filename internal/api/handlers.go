package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gregapec/tovor/internal/ledger"
	"github.com/gregapec/tovor/internal/mirror"
	"github.com/gregapec/tovor/internal/store"
)

// LedgerHandler serves the inventory and shipment endpoints. A fresh
// ledger is constructed per request, scoped to the token's account.
type LedgerHandler struct {
	Store  *store.Store
	Mirror mirror.Mirror
}

func (h *LedgerHandler) ledgerFor(r *http.Request) (*ledger.Ledger, error) {
	claims := GetClaims(r.Context())
	return ledger.New(r.Context(), h.Store, h.Mirror, claims.Email)
}

// ledgerError maps ledger errors to API status codes.
func ledgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrItemNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, ledger.ErrNegativeQuantity):
		jsonError(w, http.StatusUnprocessableEntity, "quantity cannot go negative")
	case errors.Is(err, ledger.ErrInsufficientStock):
		jsonError(w, http.StatusUnprocessableEntity, "insufficient stock")
	default:
		slog.Error("ledger operation failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// ListInventory handles GET /api/inventory.
func (h *LedgerHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	l, err := h.ledgerFor(r)
	if err != nil {
		ledgerError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, l.InventorySnapshot())
}

type addItemRequest struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Location string `json:"location"`
}

// AddItem handles POST /api/inventory.
func (h *LedgerHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil || req.ItemID == "" || req.Name == "" {
		jsonError(w, http.StatusBadRequest, "item_id and name required")
		return
	}

	l, err := h.ledgerFor(r)
	if err != nil {
		ledgerError(w, err)
		return
	}
	if err := l.AddItem(r.Context(), req.ItemID, req.Name, req.Quantity, req.Location); err != nil {
		ledgerError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, l.InventorySnapshot()[req.ItemID])
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

// AdjustQuantity handles POST /api/inventory/{id}/adjust.
func (h *LedgerHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")

	var req adjustRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid body")
		return
	}

	l, err := h.ledgerFor(r)
	if err != nil {
		ledgerError(w, err)
		return
	}
	if err := l.UpdateQuantity(r.Context(), itemID, req.Delta); err != nil {
		ledgerError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, l.InventorySnapshot()[itemID])
}

// ListShipments handles GET /api/shipments.
func (h *LedgerHandler) ListShipments(w http.ResponseWriter, r *http.Request) {
	l, err := h.ledgerFor(r)
	if err != nil {
		ledgerError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, l.ShipmentSnapshot())
}

type scheduleRequest struct {
	ShipmentID    string `json:"shipment_id"`
	ItemID        string `json:"item_id"`
	Quantity      int    `json:"quantity"`
	Destination   string `json:"destination"`
	ScheduledDate string `json:"scheduled_date"` // YYYY-MM-DD
}

// ScheduleShipment handles POST /api/shipments. Replaying a shipment_id is
// a no-op and answers 200 with scheduled=false instead of an error.
func (h *LedgerHandler) ScheduleShipment(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil || req.ShipmentID == "" || req.ItemID == "" {
		jsonError(w, http.StatusBadRequest, "shipment_id and item_id required")
		return
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "scheduled_date must be YYYY-MM-DD")
		return
	}

	l, err := h.ledgerFor(r)
	if err != nil {
		ledgerError(w, err)
		return
	}

	scheduled, err := l.ScheduleShipment(r.Context(), req.ShipmentID, req.ItemID, req.Quantity, req.Destination, scheduledDate)
	if err != nil {
		ledgerError(w, err)
		return
	}
	if !scheduled {
		jsonResponse(w, http.StatusOK, map[string]any{"scheduled": false})
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]any{
		"scheduled": true,
		"shipment":  l.ShipmentSnapshot()[req.ShipmentID],
	})
}

// Reset handles POST /api/reset.
func (h *LedgerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	l, err := h.ledgerFor(r)
	if err != nil {
		ledgerError(w, err)
		return
	}
	l.Reset(r.Context())
	jsonResponse(w, http.StatusOK, map[string]string{"status": "reset"})
}
