package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/gregapec/tovor/internal/model"
)

// Store provides durable, per-user persistence for inventory and shipment
// rows. Writes through one Store are serialized by its own mutex, so two
// concurrent requests cannot interleave partial writes on the shared
// connection. The mutex belongs to the Store, not the package: callers that
// want per-user sharding can open several stores.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New wraps an open database handle. The schema must already exist
// (db.EnsureSchema).
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// UpsertItem inserts or fully replaces the inventory row for
// (userID, item.ItemID).
func (s *Store) UpsertItem(ctx context.Context, userID string, item model.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO inventory (user_id, item_id, name, quantity, location, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, item.ItemID, item.Name, item.Quantity, item.Location, item.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upserting inventory item: %w", err)
	}
	return nil
}

// LoadInventory returns all inventory rows for one user.
func (s *Store) LoadInventory(ctx context.Context, userID string) ([]model.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, name, quantity, location, last_updated
		 FROM inventory WHERE user_id = ? ORDER BY item_id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		var item model.InventoryItem
		if err := rows.Scan(&item.ItemID, &item.Name, &item.Quantity, &item.Location, &item.LastUpdated); err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// LoadPendingShipments returns all shipments with status PENDING for one user.
func (s *Store) LoadPendingShipments(ctx context.Context, userID string) ([]model.Shipment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT shipment_id, item_id, quantity, destination, status, scheduled_date
		 FROM shipments WHERE user_id = ? AND status = ? ORDER BY shipment_id`,
		userID, model.ShipmentStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("loading pending shipments: %w", err)
	}
	defer rows.Close()

	var shipments []model.Shipment
	for rows.Next() {
		var sh model.Shipment
		if err := rows.Scan(&sh.ShipmentID, &sh.ItemID, &sh.Quantity, &sh.Destination, &sh.Status, &sh.ScheduledDate); err != nil {
			return nil, fmt.Errorf("scanning shipment: %w", err)
		}
		shipments = append(shipments, sh)
	}
	return shipments, rows.Err()
}

// ShipmentExists reports whether a shipment row already exists for
// (userID, shipmentID).
func (s *Store) ShipmentExists(ctx context.Context, userID, shipmentID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM shipments WHERE user_id = ? AND shipment_id = ?`,
		userID, shipmentID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking shipment existence: %w", err)
	}
	return true, nil
}

// InsertShipment inserts a new shipment row. The primary key on
// (user_id, shipment_id) makes a duplicate insert fail even if the caller
// skipped the ShipmentExists check.
func (s *Store) InsertShipment(ctx context.Context, userID string, sh model.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shipments (user_id, shipment_id, item_id, quantity, destination, status, scheduled_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, sh.ShipmentID, sh.ItemID, sh.Quantity, sh.Destination, sh.Status, sh.ScheduledDate,
	)
	if err != nil {
		return fmt.Errorf("inserting shipment: %w", err)
	}
	return nil
}

// ClearUser deletes all inventory and shipment rows for one user. Other
// users' rows are untouched.
func (s *Store) ClearUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM inventory WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clearing inventory: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM shipments WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clearing shipments: %w", err)
	}
	return nil
}
