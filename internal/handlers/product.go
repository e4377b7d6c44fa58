package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/models"
	"github.com/adyen/storefront/internal/services"
)

// ProductPathValue is the route wildcard holding "<url-key>.html"
const ProductPathValue = "product"

// ProductHandler handles the product page requests
type ProductHandler struct {
	base
	catalog services.CatalogService
}

// ProductData represents the data passed to the product template
type ProductData struct {
	Page
	Product *models.Product
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(templateDir string, catalog services.CatalogService, carts services.CartService, logger *zap.Logger) (*ProductHandler, error) {
	b, err := newBase(templateDir, "product.html", carts, logger)
	if err != nil {
		return nil, err
	}
	return &ProductHandler{base: b, catalog: catalog}, nil
}

// ServeHTTP handles the GET /{url-key}.html request
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key, ok := strings.CutSuffix(r.PathValue(ProductPathValue), ".html")
	if !ok || key == "" {
		http.NotFound(w, r)
		return
	}

	product, err := h.catalog.GetProduct(key)
	if errors.Is(err, models.ErrProductNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("Error loading product", zap.String("url_key", key), zap.Error(err))
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, ProductData{
		Page:    h.page(r, product.Name),
		Product: product,
	})
}
