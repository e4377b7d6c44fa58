package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/models"
	"github.com/adyen/storefront/internal/services"
)

// CategoryHandler handles a product listing page
type CategoryHandler struct {
	base
	catalog  services.CatalogService
	category string
	title    string
}

// CategoryData represents the data passed to the listing template
type CategoryData struct {
	Page
	Products []models.Product
}

// NewCategoryHandler creates a listing page for one category
func NewCategoryHandler(templateDir, category, title string, catalog services.CatalogService, carts services.CartService, logger *zap.Logger) (*CategoryHandler, error) {
	b, err := newBase(templateDir, "category.html", carts, logger)
	if err != nil {
		return nil, err
	}
	return &CategoryHandler{
		base:     b,
		catalog:  catalog,
		category: category,
		title:    title,
	}, nil
}

// ServeHTTP renders the products of the category in listing order
func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	products, err := h.catalog.ListCategory(h.category)
	if err != nil {
		h.logger.Error("Error listing category", zap.String("category", h.category), zap.Error(err))
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, CategoryData{
		Page:     h.page(r, h.title),
		Products: products,
	})
}
