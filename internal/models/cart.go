package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxLineQuantity is the largest quantity a single cart line accepts
const MaxLineQuantity = 10000

// Cart errors
var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 10000")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrEmptyCart       = errors.New("cart is empty")
)

// CartLine is one product in a cart
type CartLine struct {
	SKU    string
	Name   string
	URLKey string
	Price  int64
	Qty    int
}

// RowTotal returns price times quantity
func (l CartLine) RowTotal() int64 {
	return l.Price * int64(l.Qty)
}

// Cart is the shopping cart of one storefront session
type Cart struct {
	ID        string
	Lines     []CartLine
	Shipping  *ShippingAddress
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCart creates an empty cart. An empty id gets a generated one.
func NewCart(id string) *Cart {
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now()
	return &Cart{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func validateQuantity(qty int) error {
	if qty < 1 || qty > MaxLineQuantity {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	return nil
}

// Add puts qty of p in the cart, merging with an existing line for the
// same SKU
func (c *Cart) Add(p Product, qty int) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}
	for i := range c.Lines {
		if c.Lines[i].SKU == p.SKU {
			if err := validateQuantity(c.Lines[i].Qty + qty); err != nil {
				return err
			}
			c.Lines[i].Qty += qty
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	c.Lines = append(c.Lines, CartLine{
		SKU:    p.SKU,
		Name:   p.Name,
		URLKey: p.URLKey,
		Price:  p.Price,
		Qty:    qty,
	})
	c.UpdatedAt = time.Now()
	return nil
}

// SetQuantity replaces the quantity of the line for sku
func (c *Cart) SetQuantity(sku string, qty int) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}
	for i := range c.Lines {
		if c.Lines[i].SKU == sku {
			c.Lines[i].Qty = qty
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrLineNotFound, sku)
}

// Remove drops the line for sku
func (c *Cart) Remove(sku string) error {
	for i := range c.Lines {
		if c.Lines[i].SKU == sku {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrLineNotFound, sku)
}

// ItemCount returns the summed quantity shown in the minicart counter
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Qty
	}
	return n
}

// Subtotal returns the summed row totals in cents
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.RowTotal()
	}
	return total
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear empties the cart after an order is placed
func (c *Cart) Clear() {
	c.Lines = nil
	c.Shipping = nil
	c.UpdatedAt = time.Now()
}
