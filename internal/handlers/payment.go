package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/models"
	"github.com/adyen/storefront/internal/services"
)

// Paths the place order action redirects to
const (
	SuccessPath = "/checkout/onepage/success/"
	FailurePath = "/checkout/failure"
)

// PaymentHandler handles the review and payment step
type PaymentHandler struct {
	base
	checkout services.CheckoutService
}

// PaymentData represents the data passed to the payment template
type PaymentData struct {
	Page
	Cart          *models.Cart
	ShippingFee   int64
	GrandTotal    int64
	PaymentMethod string
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(templateDir string, checkout services.CheckoutService, carts services.CartService, logger *zap.Logger) (*PaymentHandler, error) {
	b, err := newBase(templateDir, "payment.html", carts, logger)
	if err != nil {
		return nil, err
	}
	return &PaymentHandler{base: b, checkout: checkout}, nil
}

// ServeHTTP renders the order review with the place order button
func (h *PaymentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
	if cart.Shipping == nil {
		http.Redirect(w, r, ShippingPath, http.StatusSeeOther)
		return
	}

	fee := models.FlatRatePerItem * int64(cart.ItemCount())
	h.render(w, http.StatusOK, PaymentData{
		Page:          h.page(r, "Checkout"),
		Cart:          cart,
		ShippingFee:   fee,
		GrandTotal:    cart.Subtotal() + fee,
		PaymentMethod: services.PaymentMethodCheckMo,
	})
}

// PlaceOrder handles POST /checkout/placeOrder
func (h *PaymentHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := SessionID(r)
	method := r.PostFormValue("payment[method]")
	order, err := h.checkout.PlaceOrder(session, method)
	if err != nil {
		reason := failureReason(err)
		h.logger.Warn("Order was not placed",
			zap.String("session", session),
			zap.String("reason", reason),
			zap.Error(err),
		)
		http.Redirect(w, r, FailurePath+"?reason="+url.QueryEscape(reason), http.StatusSeeOther)
		return
	}

	h.logger.Info("Order placed",
		zap.String("session", session),
		zap.String("order", order.Number),
		zap.String("grand_total", order.GetFormattedTotal()),
	)
	http.Redirect(w, r, SuccessPath+"?order="+url.QueryEscape(order.Number), http.StatusSeeOther)
}

// failureReason maps a checkout error onto a failure page reason
func failureReason(err error) string {
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		return ReasonEmptyCart
	case errors.Is(err, models.ErrMissingShipping),
		errors.Is(err, models.ErrMissingAddressField),
		errors.Is(err, models.ErrInvalidEmail),
		errors.Is(err, models.ErrUnknownRegion):
		return ReasonShipping
	case errors.Is(err, models.ErrMissingPaymentMethod):
		return ReasonPayment
	default:
		return ReasonError
	}
}
