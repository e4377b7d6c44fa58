package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/models"
	"github.com/adyen/storefront/internal/services"
)

// CartPath is the shopping cart page
const CartPath = "/checkout/cart/"

// CartHandler handles the cart page and the add and update actions
type CartHandler struct {
	base
}

// CartData represents the data passed to the cart template
type CartData struct {
	Page
	Cart *models.Cart
}

// CartResponse is returned to the page scripts after a cart change
type CartResponse struct {
	CartCount int    `json:"cart_count"`
	Subtotal  string `json:"subtotal"`
	Message   string `json:"message"`
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(templateDir string, carts services.CartService, logger *zap.Logger) (*CartHandler, error) {
	b, err := newBase(templateDir, "cart.html", carts, logger)
	if err != nil {
		return nil, err
	}
	return &CartHandler{base: b}, nil
}

// ServeHTTP renders the shopping cart page
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	page := h.page(r, "Shopping Cart")
	page.CartCount = cart.ItemCount()
	h.render(w, http.StatusOK, CartData{Page: page, Cart: cart})
}

// Add handles POST /checkout/cart/add from the product page form
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session := SessionID(r)
	if session == "" {
		h.fail(w, r, "Missing session", http.StatusBadRequest)
		return
	}

	sku := r.PostFormValue("product")
	qty, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("qty")))
	if err != nil {
		h.fail(w, r, models.ErrInvalidQuantity.Error(), http.StatusUnprocessableEntity)
		return
	}

	cart, err := h.carts.AddToCart(session, sku, qty)
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		h.fail(w, r, "The product does not exist.", http.StatusNotFound)
		return
	case errors.Is(err, models.ErrInvalidQuantity):
		h.fail(w, r, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		h.logger.Error("Error adding to cart", zap.String("sku", sku), zap.Error(err))
		h.fail(w, r, "Failed to add product to cart", http.StatusInternalServerError)
		return
	}

	name := sku
	for _, l := range cart.Lines {
		if l.SKU == sku {
			name = l.Name
		}
	}
	h.logger.Info("Added product to cart",
		zap.String("session", session),
		zap.String("sku", sku),
		zap.Int("qty", qty),
		zap.Int("cart_count", cart.ItemCount()),
	)

	if wantsJSON(r) {
		sendJSON(w, http.StatusOK, CartResponse{
			CartCount: cart.ItemCount(),
			Subtotal:  models.FormatMoney(cart.Subtotal()),
			Message:   fmt.Sprintf("You added %s to your shopping cart.", name),
		})
		return
	}
	http.Redirect(w, r, CartPath, http.StatusSeeOther)
}

// Update handles POST /checkout/cart/updatePost with cart[<sku>][qty] fields
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session := SessionID(r)
	if session == "" {
		h.fail(w, r, "Missing session", http.StatusBadRequest)
		return
	}

	quantities, err := parseCartQuantities(r)
	if err != nil {
		h.fail(w, r, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	cart, err := h.carts.UpdateQuantities(session, quantities)
	switch {
	case errors.Is(err, models.ErrInvalidQuantity), errors.Is(err, models.ErrLineNotFound):
		h.fail(w, r, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		h.logger.Error("Error updating cart", zap.Error(err))
		h.fail(w, r, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Updated cart",
		zap.String("session", session),
		zap.Any("quantities", quantities),
		zap.Int("cart_count", cart.ItemCount()),
	)

	if wantsJSON(r) {
		sendJSON(w, http.StatusOK, CartResponse{
			CartCount: cart.ItemCount(),
			Subtotal:  models.FormatMoney(cart.Subtotal()),
			Message:   "Your shopping cart has been updated.",
		})
		return
	}
	http.Redirect(w, r, CartPath, http.StatusSeeOther)
}

// parseCartQuantities reads cart[<sku>][qty] form fields
func parseCartQuantities(r *http.Request) (map[string]int, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	quantities := make(map[string]int)
	for key, values := range r.PostForm {
		sku, ok := strings.CutPrefix(key, "cart[")
		if !ok {
			continue
		}
		sku, ok = strings.CutSuffix(sku, "][qty]")
		if !ok || sku == "" || len(values) == 0 {
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", models.ErrInvalidQuantity, values[0])
		}
		quantities[sku] = qty
	}
	return quantities, nil
}

// fail answers page scripts with JSON and plain form posts with text
func (h *CartHandler) fail(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	if wantsJSON(r) {
		sendErrorResponse(w, message, statusCode)
		return
	}
	http.Error(w, message, statusCode)
}
