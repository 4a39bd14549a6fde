package store

import (
	"context"
	"testing"
	"time"

	"github.com/gregapec/tovor/internal/db"
	"github.com/gregapec/tovor/internal/model"
)

func testItem(id string, quantity int) model.InventoryItem {
	return model.InventoryItem{
		ItemID:      id,
		Name:        "Widget",
		Quantity:    quantity,
		Location:    "A1",
		LastUpdated: time.Now().UTC(),
	}
}

func TestUpsertAndLoadInventory(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	if err := s.UpsertItem(ctx, "alice", testItem("I1", 10)); err != nil {
		t.Fatalf("UpsertItem: %v", err)
	}

	items, err := s.LoadInventory(ctx, "alice")
	if err != nil {
		t.Fatalf("LoadInventory: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ItemID != "I1" || items[0].Quantity != 10 || items[0].Location != "A1" {
		t.Errorf("unexpected item: %+v", items[0])
	}
}

func TestUpsertReplacesRow(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	s.UpsertItem(ctx, "alice", testItem("I1", 10))
	replacement := testItem("I1", 4)
	replacement.Name = "Gadget"
	if err := s.UpsertItem(ctx, "alice", replacement); err != nil {
		t.Fatalf("UpsertItem (replace): %v", err)
	}

	items, _ := s.LoadInventory(ctx, "alice")
	if len(items) != 1 {
		t.Fatalf("expected 1 item after replace, got %d", len(items))
	}
	if items[0].Name != "Gadget" || items[0].Quantity != 4 {
		t.Errorf("expected replaced row, got %+v", items[0])
	}
}

func TestInventoryScopedPerUser(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	s.UpsertItem(ctx, "alice", testItem("I1", 10))
	s.UpsertItem(ctx, "bob", testItem("I1", 3))

	alice, _ := s.LoadInventory(ctx, "alice")
	bob, _ := s.LoadInventory(ctx, "bob")
	if len(alice) != 1 || len(bob) != 1 {
		t.Fatalf("expected one item each, got %d and %d", len(alice), len(bob))
	}
	if alice[0].Quantity != 10 || bob[0].Quantity != 3 {
		t.Errorf("rows leaked across users: alice=%+v bob=%+v", alice[0], bob[0])
	}
}

func TestInsertShipmentAndExists(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	sh := model.Shipment{
		ShipmentID:    "S1",
		ItemID:        "I1",
		Quantity:      4,
		Destination:   "Ljubljana",
		Status:        model.ShipmentStatusPending,
		ScheduledDate: time.Now().UTC(),
	}

	exists, err := s.ShipmentExists(ctx, "alice", "S1")
	if err != nil {
		t.Fatalf("ShipmentExists: %v", err)
	}
	if exists {
		t.Error("expected shipment to not exist yet")
	}

	if err := s.InsertShipment(ctx, "alice", sh); err != nil {
		t.Fatalf("InsertShipment: %v", err)
	}

	exists, _ = s.ShipmentExists(ctx, "alice", "S1")
	if !exists {
		t.Error("expected shipment to exist after insert")
	}

	// Same id for another user is fine.
	if exists, _ := s.ShipmentExists(ctx, "bob", "S1"); exists {
		t.Error("shipment id leaked across users")
	}
}

func TestInsertDuplicateShipmentFails(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	sh := model.Shipment{
		ShipmentID:    "S1",
		ItemID:        "I1",
		Quantity:      1,
		Status:        model.ShipmentStatusPending,
		ScheduledDate: time.Now().UTC(),
	}

	if err := s.InsertShipment(ctx, "alice", sh); err != nil {
		t.Fatalf("InsertShipment: %v", err)
	}
	if err := s.InsertShipment(ctx, "alice", sh); err == nil {
		t.Error("expected primary key violation on duplicate insert")
	}
}

func TestLoadPendingShipmentsFiltersStatus(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	pending := model.Shipment{ShipmentID: "S1", ItemID: "I1", Quantity: 1,
		Status: model.ShipmentStatusPending, ScheduledDate: time.Now().UTC()}
	delivered := model.Shipment{ShipmentID: "S2", ItemID: "I1", Quantity: 2,
		Status: model.ShipmentStatusDelivered, ScheduledDate: time.Now().UTC()}

	s.InsertShipment(ctx, "alice", pending)
	s.InsertShipment(ctx, "alice", delivered)

	shipments, err := s.LoadPendingShipments(ctx, "alice")
	if err != nil {
		t.Fatalf("LoadPendingShipments: %v", err)
	}
	if len(shipments) != 1 {
		t.Fatalf("expected 1 pending shipment, got %d", len(shipments))
	}
	if shipments[0].ShipmentID != "S1" {
		t.Errorf("expected S1, got %s", shipments[0].ShipmentID)
	}
}

func TestClearUser(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	s.UpsertItem(ctx, "alice", testItem("I1", 10))
	s.InsertShipment(ctx, "alice", model.Shipment{ShipmentID: "S1", ItemID: "I1",
		Quantity: 1, Status: model.ShipmentStatusPending, ScheduledDate: time.Now().UTC()})
	s.UpsertItem(ctx, "bob", testItem("I1", 5))

	if err := s.ClearUser(ctx, "alice"); err != nil {
		t.Fatalf("ClearUser: %v", err)
	}

	items, _ := s.LoadInventory(ctx, "alice")
	shipments, _ := s.LoadPendingShipments(ctx, "alice")
	if len(items) != 0 || len(shipments) != 0 {
		t.Errorf("expected empty state after clear, got %d items, %d shipments", len(items), len(shipments))
	}

	bob, _ := s.LoadInventory(ctx, "bob")
	if len(bob) != 1 {
		t.Errorf("clear removed another user's rows: %d items left", len(bob))
	}
}
