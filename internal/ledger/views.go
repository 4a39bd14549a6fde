package ledger

import "time"

// ItemView is the serializable projection of one inventory item.
// Timestamps become RFC 3339 strings here, at the boundary.
type ItemView struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Location    string `json:"location"`
	LastUpdated string `json:"last_updated"`
}

// ShipmentView is the serializable projection of one shipment.
type ShipmentView struct {
	ItemID        string `json:"item_id"`
	Quantity      int    `json:"quantity"`
	Destination   string `json:"destination"`
	Status        string `json:"status"`
	ScheduledDate string `json:"scheduled_date"`
}

// InventorySnapshot returns the current in-memory inventory keyed by item
// id. Pure projection, no side effects.
func (l *Ledger) InventorySnapshot() map[string]ItemView {
	views := make(map[string]ItemView, len(l.inventory))
	for id, item := range l.inventory {
		views[id] = ItemView{
			Name:        item.Name,
			Quantity:    item.Quantity,
			Location:    item.Location,
			LastUpdated: item.LastUpdated.Format(time.RFC3339Nano),
		}
	}
	return views
}

// ShipmentSnapshot returns the current in-memory shipments keyed by
// shipment id. Pure projection, no side effects.
func (l *Ledger) ShipmentSnapshot() map[string]ShipmentView {
	views := make(map[string]ShipmentView, len(l.shipments))
	for id, sh := range l.shipments {
		views[id] = ShipmentView{
			ItemID:        sh.ItemID,
			Quantity:      sh.Quantity,
			Destination:   sh.Destination,
			Status:        sh.Status,
			ScheduledDate: sh.ScheduledDate.Format(time.RFC3339Nano),
		}
	}
	return views
}
