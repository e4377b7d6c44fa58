package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/models"
	"github.com/adyen/storefront/internal/repository"
	"github.com/adyen/storefront/internal/services"
)

// ConfirmationHandler handles the order success page
type ConfirmationHandler struct {
	base
	checkout services.CheckoutService
}

// ConfirmationData represents the data for the confirmation template
type ConfirmationData struct {
	Page
	Order *models.Order
}

// NewConfirmationHandler creates a new confirmation handler
func NewConfirmationHandler(templateDir string, checkout services.CheckoutService, carts services.CartService, logger *zap.Logger) (*ConfirmationHandler, error) {
	b, err := newBase(templateDir, "confirmation.html", carts, logger)
	if err != nil {
		return nil, err
	}
	return &ConfirmationHandler{base: b, checkout: checkout}, nil
}

// ServeHTTP handles the confirmation page request
func (h *ConfirmationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	number := r.URL.Query().Get("order")
	if number == "" {
		h.logger.Info("Missing order parameter")
		http.Error(w, "Missing order number", http.StatusBadRequest)
		return
	}

	order, err := h.checkout.GetOrder(number)
	if errors.Is(err, repository.ErrOrderNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("Error loading order", zap.String("order", number), zap.Error(err))
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, ConfirmationData{
		Page:  h.page(r, "Success Page"),
		Order: order,
	})
}
