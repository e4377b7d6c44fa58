// Package handlers serves the fixture storefront: a local copy of the Luma
// pages the purchase scenario walks through, rendered from html/template
// files.
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/models"
	"github.com/adyen/storefront/internal/services"
)

// LayoutTemplate wraps every page
const LayoutTemplate = "layout.html"

// Message is a flash message shown above the page content
type Message struct {
	Type string // success or error
	Text string
}

// Page holds what the shared layout renders
type Page struct {
	Title     string
	CartCount int
	Messages  []Message
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var funcMap = template.FuncMap{
	"money":   models.FormatMoney,
	"regions": func() []string { return models.Regions },
}

// parsePage parses the layout together with one page template
func parsePage(templateDir, name string) (*template.Template, error) {
	tmpl, err := template.New(LayoutTemplate).Funcs(funcMap).ParseFiles(
		filepath.Join(templateDir, LayoutTemplate),
		filepath.Join(templateDir, name),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl, nil
}

// base is shared by every page handler
type base struct {
	template *template.Template
	carts    services.CartService
	logger   *zap.Logger
}

func newBase(templateDir, name string, carts services.CartService, logger *zap.Logger) (base, error) {
	tmpl, err := parsePage(templateDir, name)
	if err != nil {
		return base{}, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return base{template: tmpl, carts: carts, logger: logger}, nil
}

// page builds the layout data for the request's session
func (b *base) page(r *http.Request, title string) Page {
	p := Page{Title: title}
	cart, err := b.carts.GetCart(SessionID(r))
	if err != nil {
		b.logger.Warn("Failed to load cart for header", zap.Error(err))
		return p
	}
	p.CartCount = cart.ItemCount()
	return p
}

// render executes the template into a buffer so a failing template never
// leaves a half written page behind
func (b *base) render(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := b.template.Execute(&buf, data); err != nil {
		b.logger.Error("Error rendering template", zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// wantsJSON reports whether the request came from the page scripts
func wantsJSON(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

// sendJSON writes v as a JSON response
func sendJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
