package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gregapec/tovor/internal/db"
	"github.com/gregapec/tovor/internal/identity"
	"github.com/gregapec/tovor/internal/model"
	"github.com/gregapec/tovor/internal/store"
)

const testJWTSecret = "test-secret"

// memoryMirror is a no-op mirror for API tests.
type memoryMirror struct {
	pushed map[string]int
}

func (m *memoryMirror) Push(_ context.Context, userID string, items []model.InventoryItem) bool {
	if m.pushed == nil {
		m.pushed = make(map[string]int)
	}
	m.pushed[userID] += len(items)
	return true
}

func (m *memoryMirror) Clear(_ context.Context, userID string) bool {
	delete(m.pushed, userID)
	return true
}

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(store.New(database), &memoryMirror{}, identity.NewProvider(database), testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Register and log in.
	body, _ := json.Marshal(map[string]string{"email": "alice@example.com", "password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register failed: %d", resp.StatusCode)
	}

	resp, err = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	token := loginResp["token"]
	if token == "" {
		t.Fatal("empty token from login")
	}

	return server, token
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func TestRegisterDuplicate(t *testing.T) {
	server, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"email": "alice@example.com", "password": "other"})
	resp, _ := http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate registration, got %d", resp.StatusCode)
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	server, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"email": "nobody@example.com", "password": "x"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown account, got %d", resp.StatusCode)
	}
}

func TestInventoryRequiresAuth(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/inventory")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestInventoryLifecycle(t *testing.T) {
	server, token := setupTestServer(t)

	// Add an item.
	resp := doJSON(t, http.MethodPost, server.URL+"/api/inventory", token, map[string]any{
		"item_id": "I1", "name": "Widget", "quantity": 10, "location": "A1",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add item: expected 201, got %d", resp.StatusCode)
	}

	// Adjust it down.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/inventory/I1/adjust", token, map[string]int{"delta": -4})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("adjust: expected 200, got %d", resp.StatusCode)
	}
	var view map[string]any
	json.NewDecoder(resp.Body).Decode(&view)
	resp.Body.Close()
	if view["quantity"].(float64) != 6 {
		t.Errorf("expected quantity 6, got %v", view["quantity"])
	}

	// Over-deduction is rejected.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/inventory/I1/adjust", token, map[string]int{"delta": -100})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for negative quantity, got %d", resp.StatusCode)
	}

	// Unknown item.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/inventory/nope/adjust", token, map[string]int{"delta": 1})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown item, got %d", resp.StatusCode)
	}

	// List reflects the surviving state.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/inventory", token, nil)
	var inventory map[string]map[string]any
	json.NewDecoder(resp.Body).Decode(&inventory)
	resp.Body.Close()
	if inventory["I1"]["quantity"].(float64) != 6 {
		t.Errorf("expected quantity 6 in list, got %v", inventory["I1"]["quantity"])
	}
}

func TestShipmentLifecycle(t *testing.T) {
	server, token := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/inventory", token, map[string]any{
		"item_id": "I1", "name": "Widget", "quantity": 10, "location": "A1",
	})
	resp.Body.Close()

	schedule := map[string]any{
		"shipment_id": "S1", "item_id": "I1", "quantity": 4,
		"destination": "Ljubljana", "scheduled_date": "2025-06-01",
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/shipments", token, schedule)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("schedule: expected 201, got %d", resp.StatusCode)
	}
	var result map[string]any
	json.NewDecoder(resp.Body).Decode(&result)
	resp.Body.Close()
	if result["scheduled"] != true {
		t.Error("expected scheduled=true")
	}

	// Replay is a skip, not an error.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/shipments", token, schedule)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("replay: expected 200, got %d", resp.StatusCode)
	}
	json.NewDecoder(resp.Body).Decode(&result)
	resp.Body.Close()
	if result["scheduled"] != false {
		t.Error("expected scheduled=false on replay")
	}

	// Stock was deducted exactly once.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/inventory", token, nil)
	var inventory map[string]map[string]any
	json.NewDecoder(resp.Body).Decode(&inventory)
	resp.Body.Close()
	if inventory["I1"]["quantity"].(float64) != 6 {
		t.Errorf("expected quantity 6, got %v", inventory["I1"]["quantity"])
	}

	// Asking for more than remains is rejected.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/shipments", token, map[string]any{
		"shipment_id": "S2", "item_id": "I1", "quantity": 7,
		"destination": "Maribor", "scheduled_date": "2025-06-02",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for insufficient stock, got %d", resp.StatusCode)
	}
}

func TestReset(t *testing.T) {
	server, token := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/inventory", token, map[string]any{
		"item_id": "I1", "name": "Widget", "quantity": 10,
	})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, server.URL+"/api/reset", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/inventory", token, nil)
	var inventory map[string]any
	json.NewDecoder(resp.Body).Decode(&inventory)
	resp.Body.Close()
	if len(inventory) != 0 {
		t.Errorf("expected empty inventory after reset, got %v", inventory)
	}
}
