package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gregapec/tovor/internal/identity"
	"github.com/gregapec/tovor/internal/mirror"
	"github.com/gregapec/tovor/internal/store"
	webembed "github.com/gregapec/tovor/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"shortTime": func(iso string) string {
			t, err := time.Parse(time.RFC3339Nano, iso)
			if err != nil {
				return iso
			}
			return t.Format("2006-01-02 15:04")
		},
		"shortDate": func(iso string) string {
			t, err := time.Parse(time.RFC3339Nano, iso)
			if err != nil {
				return iso
			}
			return t.Format("2006-01-02")
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"register.html",
		"home.html",
		"add_inventory.html",
		"schedule_shipment.html",
		"reset.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Email   string
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Store     *store.Store
	Mirror    mirror.Mirror
	Identity  *identity.Provider
	Templates *Templates
	JWTSecret string
}
