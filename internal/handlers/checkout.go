package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/models"
	"github.com/adyen/storefront/internal/services"
)

// Checkout step paths
const (
	ShippingPath = "/checkout/"
	PaymentPath  = "/checkout/payment"
)

// CheckoutHandler handles the shipping step of the guest checkout
type CheckoutHandler struct {
	base
	checkout services.CheckoutService
}

// CheckoutData represents the data passed to the shipping template
type CheckoutData struct {
	Page
	Cart    *models.Cart
	Address models.ShippingAddress
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(templateDir string, checkout services.CheckoutService, carts services.CartService, logger *zap.Logger) (*CheckoutHandler, error) {
	b, err := newBase(templateDir, "checkout.html", carts, logger)
	if err != nil {
		return nil, err
	}
	return &CheckoutHandler{base: b, checkout: checkout}, nil
}

// ServeHTTP renders the shipping address form
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cart, err := h.carts.GetCart(SessionID(r))
	if err != nil {
		h.logger.Error("Error loading cart", zap.Error(err))
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}
	if cart.IsEmpty() {
		http.Redirect(w, r, CartPath, http.StatusSeeOther)
		return
	}

	h.render(w, http.StatusOK, CheckoutData{Page: h.page(r, "Checkout"), Cart: cart})
}

// SaveShipping handles POST /checkout/shipping
func (h *CheckoutHandler) SaveShipping(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	address := addressFromForm(r)
	session := SessionID(r)
	err := h.checkout.SaveShipping(session, address)
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		http.Redirect(w, r, CartPath, http.StatusSeeOther)
		return
	case errors.Is(err, models.ErrMissingAddressField),
		errors.Is(err, models.ErrInvalidEmail),
		errors.Is(err, models.ErrUnknownRegion):
		h.logger.Info("Rejected shipping address", zap.String("session", session), zap.Error(err))
		cart, cartErr := h.carts.GetCart(session)
		if cartErr != nil {
			http.Error(w, "Failed to load cart", http.StatusInternalServerError)
			return
		}
		page := h.page(r, "Checkout")
		page.Messages = append(page.Messages, Message{Type: "error", Text: err.Error()})
		h.render(w, http.StatusUnprocessableEntity, CheckoutData{Page: page, Cart: cart, Address: address})
		return
	case err != nil:
		h.logger.Error("Error saving shipping address", zap.Error(err))
		http.Error(w, "Failed to save shipping address", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Saved shipping address", zap.String("session", session), zap.String("region", address.Region))
	http.Redirect(w, r, PaymentPath, http.StatusSeeOther)
}

func addressFromForm(r *http.Request) models.ShippingAddress {
	v := func(name string) string { return strings.TrimSpace(r.PostFormValue(name)) }
	return models.ShippingAddress{
		FirstName: v("firstname"),
		LastName:  v("lastname"),
		Email:     v("email"),
		Street:    v("street[0]"),
		City:      v("city"),
		Region:    v("region_id"),
		Postcode:  v("postcode"),
		Telephone: v("telephone"),
	}
}
