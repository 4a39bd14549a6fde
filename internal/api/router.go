package api

import (
	"net/http"

	"github.com/gregapec/tovor/internal/identity"
	"github.com/gregapec/tovor/internal/mirror"
	"github.com/gregapec/tovor/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(st *store.Store, mir mirror.Mirror, id *identity.Provider, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Identity: id, JWTSecret: jwtSecret}
	ledgerHandler := &LedgerHandler{Store: st, Mirror: mir}

	authMW := AuthMiddleware(jwtSecret)

	// Public: register and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes, all scoped to the token's account.
	mux.Handle("GET /api/inventory", authMW(http.HandlerFunc(ledgerHandler.ListInventory)))
	mux.Handle("POST /api/inventory", authMW(http.HandlerFunc(ledgerHandler.AddItem)))
	mux.Handle("POST /api/inventory/{id}/adjust", authMW(http.HandlerFunc(ledgerHandler.AdjustQuantity)))

	mux.Handle("GET /api/shipments", authMW(http.HandlerFunc(ledgerHandler.ListShipments)))
	mux.Handle("POST /api/shipments", authMW(http.HandlerFunc(ledgerHandler.ScheduleShipment)))

	mux.Handle("POST /api/reset", authMW(http.HandlerFunc(ledgerHandler.Reset)))

	return mux
}
