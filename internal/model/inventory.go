package model

import "time"

// InventoryItem is one stock line owned by a single user. The in-memory
// ledger holds the authoritative copy; the store keeps the durable row
// keyed by (user_id, item_id).
type InventoryItem struct {
	ItemID      string    `json:"item_id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Location    string    `json:"location,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}
