package repository

import (
	"errors"
	"fmt"
	"sync"

	"github.com/adyen/storefront/internal/models"
)

// ErrCartNotFound is returned when a session has no cart yet
var ErrCartNotFound = errors.New("cart not found")

// CartRepository keeps carts in memory keyed by cart ID
type CartRepository struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
}

// NewCartRepository creates an empty cart repository
func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string]*models.Cart),
	}
}

// GetCart retrieves a copy of the cart with the given ID
func (r *CartRepository) GetCart(id string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCartNotFound, id)
	}
	return cloneCart(cart), nil
}

// SaveCart stores a copy of the cart, replacing any previous version
func (r *CartRepository) SaveCart(cart *models.Cart) error {
	if cart == nil || cart.ID == "" {
		return fmt.Errorf("failed to save cart: missing ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.ID] = cloneCart(cart)
	return nil
}

// UpdateCart runs fn on a copy of the cart with the given ID, or on a new
// empty cart when there is none, and stores the result when fn succeeds.
// The repository stays locked while fn runs, so updates to a cart never
// interleave.
func (r *CartRepository) UpdateCart(id string, fn func(*models.Cart) error) (*models.Cart, error) {
	if id == "" {
		return nil, fmt.Errorf("failed to update cart: missing ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cart := models.NewCart(id)
	if existing, ok := r.carts[id]; ok {
		cart = cloneCart(existing)
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	r.carts[id] = cloneCart(cart)
	return cart, nil
}

func cloneCart(c *models.Cart) *models.Cart {
	out := *c
	out.Lines = append([]models.CartLine(nil), c.Lines...)
	if c.Shipping != nil {
		addr := *c.Shipping
		out.Shipping = &addr
	}
	return &out
}
