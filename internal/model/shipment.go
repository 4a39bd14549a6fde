package model

import "time"

// Shipment is a scheduled outgoing shipment of one inventory item. The
// item reference is only validated when the shipment is created; removing
// the item later leaves the shipment dangling.
type Shipment struct {
	ShipmentID    string    `json:"shipment_id"`
	ItemID        string    `json:"item_id"`
	Quantity      int       `json:"quantity"`
	Destination   string    `json:"destination,omitempty"`
	Status        string    `json:"status"`
	ScheduledDate time.Time `json:"scheduled_date"`
}

// Shipment statuses. Only PENDING is assigned by the scheduler; the
// remaining states exist for rows imported or edited out of band.
const (
	ShipmentStatusPending   = "PENDING"
	ShipmentStatusShipped   = "SHIPPED"
	ShipmentStatusDelivered = "DELIVERED"
	ShipmentStatusCancelled = "CANCELLED"
)
