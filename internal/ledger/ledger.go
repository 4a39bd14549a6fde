// Package ledger holds the in-memory authoritative view of one user's
// inventory and shipments. Every mutation validates against the in-memory
// state, writes through to the durable store, and then pushes the affected
// items to the mirror best effort.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gregapec/tovor/internal/mirror"
	"github.com/gregapec/tovor/internal/model"
	"github.com/gregapec/tovor/internal/store"
)

var (
	// ErrItemNotFound is returned when an operation references an item id
	// the user does not have.
	ErrItemNotFound = errors.New("item not found")
	// ErrNegativeQuantity is returned when a quantity change would drive
	// an item's stock below zero.
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	// ErrInsufficientStock is returned when a shipment asks for more than
	// the item currently holds.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Ledger is the per-session view for a single user. It is not safe for
// concurrent use; the HTTP layer constructs one per request.
type Ledger struct {
	store  *store.Store
	mirror mirror.Mirror
	userID string

	inventory map[string]model.InventoryItem
	shipments map[string]model.Shipment
}

// New loads the user's durable state into a fresh ledger. Inventory rows
// are loaded verbatim: the stored quantity is already net of every
// scheduled shipment (ScheduleShipment writes the deducted quantity
// through), so bootstrap is a pure read and reloading is idempotent.
func New(ctx context.Context, st *store.Store, mir mirror.Mirror, userID string) (*Ledger, error) {
	l := &Ledger{
		store:     st,
		mirror:    mir,
		userID:    userID,
		inventory: make(map[string]model.InventoryItem),
		shipments: make(map[string]model.Shipment),
	}

	items, err := st.LoadInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping inventory: %w", err)
	}
	for _, item := range items {
		l.inventory[item.ItemID] = item
	}

	pending, err := st.LoadPendingShipments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping shipments: %w", err)
	}
	for _, sh := range pending {
		l.shipments[sh.ShipmentID] = sh
	}

	return l, nil
}

// UserID returns the user this ledger is scoped to.
func (l *Ledger) UserID() string {
	return l.userID
}

// AddItem creates a new inventory item and writes it through. If the item
// id already exists the item is overwritten, matching upsert semantics all
// the way down.
func (l *Ledger) AddItem(ctx context.Context, itemID, name string, quantity int, location string) error {
	if quantity < 0 {
		return fmt.Errorf("adding item %s: %w", itemID, ErrNegativeQuantity)
	}

	item := model.InventoryItem{
		ItemID:      itemID,
		Name:        name,
		Quantity:    quantity,
		Location:    location,
		LastUpdated: time.Now().UTC(),
	}

	if err := l.store.UpsertItem(ctx, l.userID, item); err != nil {
		return fmt.Errorf("adding item %s: %w", itemID, err)
	}
	l.inventory[itemID] = item
	l.mirror.Push(ctx, l.userID, []model.InventoryItem{item})

	slog.Info("item added", "user", l.userID, "item", itemID, "quantity", quantity)
	return nil
}

// UpdateQuantity applies a signed delta to an item's stock. The new
// quantity is validated before anything is mutated, so a rejected call
// leaves both memory and durable state untouched.
func (l *Ledger) UpdateQuantity(ctx context.Context, itemID string, delta int) error {
	item, ok := l.inventory[itemID]
	if !ok {
		return fmt.Errorf("updating item %s: %w", itemID, ErrItemNotFound)
	}

	newQuantity := item.Quantity + delta
	if newQuantity < 0 {
		return fmt.Errorf("updating item %s: %w", itemID, ErrNegativeQuantity)
	}

	item.Quantity = newQuantity
	item.LastUpdated = time.Now().UTC()

	if err := l.store.UpsertItem(ctx, l.userID, item); err != nil {
		return fmt.Errorf("updating item %s: %w", itemID, err)
	}
	l.inventory[itemID] = item
	l.mirror.Push(ctx, l.userID, []model.InventoryItem{item})

	slog.Info("quantity updated", "user", l.userID, "item", itemID, "delta", delta, "quantity", newQuantity)
	return nil
}

// ScheduleShipment creates a PENDING shipment and immediately deducts its
// quantity from the referenced item. Returns false with a nil error when
// the shipment id was already used: replays are a no-op, not a failure.
func (l *Ledger) ScheduleShipment(ctx context.Context, shipmentID, itemID string, quantity int, destination string, scheduledDate time.Time) (bool, error) {
	item, ok := l.inventory[itemID]
	if !ok {
		return false, fmt.Errorf("scheduling shipment %s: %w", shipmentID, ErrItemNotFound)
	}
	if item.Quantity < quantity {
		return false, fmt.Errorf("scheduling shipment %s: %w", shipmentID, ErrInsufficientStock)
	}

	exists, err := l.store.ShipmentExists(ctx, l.userID, shipmentID)
	if err != nil {
		return false, fmt.Errorf("scheduling shipment %s: %w", shipmentID, err)
	}
	if exists {
		slog.Info("shipment already scheduled, skipping", "user", l.userID, "shipment", shipmentID)
		return false, nil
	}

	sh := model.Shipment{
		ShipmentID:    shipmentID,
		ItemID:        itemID,
		Quantity:      quantity,
		Destination:   destination,
		Status:        model.ShipmentStatusPending,
		ScheduledDate: scheduledDate,
	}

	if err := l.store.InsertShipment(ctx, l.userID, sh); err != nil {
		return false, fmt.Errorf("scheduling shipment %s: %w", shipmentID, err)
	}
	if err := l.UpdateQuantity(ctx, itemID, -quantity); err != nil {
		// The shipment row is durable but the deduction failed; the next
		// bootstrap still sees consistent per-row state, only the stock
		// has not moved yet.
		return false, fmt.Errorf("scheduling shipment %s: %w", shipmentID, err)
	}
	l.shipments[shipmentID] = sh

	slog.Info("shipment scheduled", "user", l.userID, "shipment", shipmentID, "item", itemID, "quantity", quantity)
	return true, nil
}

// Reset clears the user's state everywhere: durable rows, mirror namespace
// and the in-memory maps. Each backend is cleared independently; a failure
// in one is logged and the others still proceed.
func (l *Ledger) Reset(ctx context.Context) {
	if err := l.store.ClearUser(ctx, l.userID); err != nil {
		slog.Error("failed to clear durable rows", "user", l.userID, "error", err)
	}
	l.mirror.Clear(ctx, l.userID)

	l.inventory = make(map[string]model.InventoryItem)
	l.shipments = make(map[string]model.Shipment)

	slog.Info("user state reset", "user", l.userID)
}
