package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/services"
)

// HomeHandler handles the storefront home page with the main navigation
type HomeHandler struct {
	base
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(templateDir string, carts services.CartService, logger *zap.Logger) (*HomeHandler, error) {
	b, err := newBase(templateDir, "home.html", carts, logger)
	if err != nil {
		return nil, err
	}
	return &HomeHandler{base: b}, nil
}

// ServeHTTP handles the GET / request
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.render(w, http.StatusOK, struct{ Page }{h.page(r, "Home Page")})
}
