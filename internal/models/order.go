package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// FlatRatePerItem is the shipping fee charged per unit
const FlatRatePerItem int64 = 500

// Order represents a guest order built from a cart
type Order struct {
	ID            string
	Number        string
	Lines         []CartLine
	Address       ShippingAddress
	Subtotal      int64
	ShippingFee   int64
	PaymentMethod string
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Domain errors
var (
	ErrMissingShipping         = errors.New("shipping address has not been set")
	ErrMissingPaymentMethod    = errors.New("payment method cannot be empty")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// NewOrder creates a pending order from the cart contents with validation
func NewOrder(cart *Cart) (*Order, error) {
	if err := validateOrderInput(cart); err != nil {
		return nil, err
	}

	id := uuid.New()
	now := time.Now()
	lines := append([]CartLine(nil), cart.Lines...)

	return &Order{
		ID:          id.String(),
		Number:      orderNumber(id),
		Lines:       lines,
		Address:     *cart.Shipping,
		Subtotal:    cart.Subtotal(),
		ShippingFee: FlatRatePerItem * int64(cart.ItemCount()),
		Status:      OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// validateOrderInput validates order creation parameters
func validateOrderInput(cart *Cart) error {
	if cart == nil || cart.IsEmpty() {
		return ErrEmptyCart
	}
	if cart.Shipping == nil {
		return ErrMissingShipping
	}
	return cart.Shipping.Validate()
}

// orderNumber derives the nine digit customer facing number from the id
func orderNumber(id uuid.UUID) string {
	return fmt.Sprintf("%09d", binary.BigEndian.Uint32(id[:4])%1000000000)
}

// Place marks the order as placed with the chosen payment method
func (o *Order) Place(paymentMethod string) error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot place order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	if paymentMethod == "" {
		return ErrMissingPaymentMethod
	}

	o.Status = OrderStatusPlaced
	o.PaymentMethod = paymentMethod
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel marks the order as cancelled
func (o *Order) Cancel() error {
	if o.Status == OrderStatusPlaced {
		return fmt.Errorf("%w: cannot cancel a placed order", ErrInvalidStatusTransition)
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// IsPending returns true if the order is in pending status
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsPlaced returns true if the order has been placed
func (o *Order) IsPlaced() bool {
	return o.Status == OrderStatusPlaced
}

// GrandTotal returns subtotal plus shipping in cents
func (o *Order) GrandTotal() int64 {
	return o.Subtotal + o.ShippingFee
}

// GetFormattedTotal returns the grand total formatted for display
func (o *Order) GetFormattedTotal() string {
	return FormatMoney(o.GrandTotal())
}
