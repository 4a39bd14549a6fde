package web

import (
	"net/http"

	"github.com/gregapec/tovor/internal/identity"
	"github.com/gregapec/tovor/internal/mirror"
	"github.com/gregapec/tovor/internal/store"
	webembed "github.com/gregapec/tovor/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(st *store.Store, mir mirror.Mirror, id *identity.Provider, jwtSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Store:     st,
		Mirror:    mir,
		Identity:  id,
		Templates: templates,
		JWTSecret: jwtSecret,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /register", s.RegisterPage)
	mux.HandleFunc("POST /register", s.RegisterSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(s.Home)))

	mux.Handle("GET /inventory/add", cookieAuth(http.HandlerFunc(s.AddInventoryPage)))
	mux.Handle("POST /inventory/add", cookieAuth(http.HandlerFunc(s.AddInventorySubmit)))

	mux.Handle("GET /shipments/schedule", cookieAuth(http.HandlerFunc(s.ScheduleShipmentPage)))
	mux.Handle("POST /shipments/schedule", cookieAuth(http.HandlerFunc(s.ScheduleShipmentSubmit)))

	mux.Handle("GET /reset", cookieAuth(http.HandlerFunc(s.ResetPage)))
	mux.Handle("POST /reset", cookieAuth(http.HandlerFunc(s.ResetSubmit)))

	return mux, nil
}
