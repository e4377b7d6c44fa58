package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/services"
)

// Failure page reasons
const (
	ReasonEmptyCart = "empty_cart"
	ReasonShipping  = "shipping"
	ReasonPayment   = "payment"
	ReasonError     = "error"
)

// FailureHandler handles the order failure page
type FailureHandler struct {
	base
}

// NewFailureHandler creates a new failure handler
func NewFailureHandler(templateDir string, carts services.CartService, logger *zap.Logger) (*FailureHandler, error) {
	b, err := newBase(templateDir, "failure.html", carts, logger)
	if err != nil {
		return nil, err
	}
	return &FailureHandler{base: b}, nil
}

// FailureData represents the data for the failure template
type FailureData struct {
	Page
	Reason string
}

// ServeHTTP handles the failure page request
func (h *FailureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reason := r.URL.Query().Get("reason")
	page := h.page(r, "Order Failed")
	page.Messages = append(page.Messages, Message{Type: "error", Text: getFailureMessage(reason)})

	h.render(w, http.StatusOK, FailureData{Page: page, Reason: reason})
}

// getFailureMessage returns a user-friendly message based on the failure reason
func getFailureMessage(reason string) string {
	switch reason {
	case ReasonEmptyCart:
		return "Your shopping cart is empty. Add a product before checking out."
	case ReasonShipping:
		return "Please enter a complete shipping address before placing the order."
	case ReasonPayment:
		return "Please select a payment method."
	default:
		return "We couldn't place your order. Please try again or contact support."
	}
}
