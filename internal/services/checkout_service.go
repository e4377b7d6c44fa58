package services

import (
	"fmt"

	"github.com/adyen/storefront/internal/models"
)

// PaymentMethodCheckMo is the offline "Check / Money order" method, the
// only one the fixture storefront offers
const PaymentMethodCheckMo = "checkmo"

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	CreateOrder(order *models.Order) error
	GetOrderByNumber(number string) (*models.Order, error)
	UpdateOrderStatus(number string, status models.OrderStatus) error
}

// CheckoutService handles the shipping and payment steps
type CheckoutService interface {
	SaveShipping(sessionID string, address models.ShippingAddress) error
	PlaceOrder(sessionID, paymentMethod string) (*models.Order, error)
	GetOrder(number string) (*models.Order, error)
}

// CheckoutServiceImpl implements CheckoutService
type CheckoutServiceImpl struct {
	carts  CartRepository
	orders OrderRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(carts CartRepository, orders OrderRepository) CheckoutService {
	return &CheckoutServiceImpl{
		carts:  carts,
		orders: orders,
	}
}

// SaveShipping validates the address and attaches it to the session's cart
func (s *CheckoutServiceImpl) SaveShipping(sessionID string, address models.ShippingAddress) error {
	_, err := s.carts.UpdateCart(sessionID, func(cart *models.Cart) error {
		if cart.IsEmpty() {
			return models.ErrEmptyCart
		}
		if err := address.Validate(); err != nil {
			return err
		}
		cart.Shipping = &address
		return nil
	})
	return err
}

// PlaceOrder turns the session's cart into a placed order and empties the
// cart. The cart stays untouched when the order cannot be stored.
func (s *CheckoutServiceImpl) PlaceOrder(sessionID, paymentMethod string) (*models.Order, error) {
	var order *models.Order
	_, err := s.carts.UpdateCart(sessionID, func(cart *models.Cart) error {
		if cart.IsEmpty() {
			return models.ErrEmptyCart
		}

		// Create order using domain factory method
		o, err := models.NewOrder(cart)
		if err != nil {
			return fmt.Errorf("invalid order: %w", err)
		}
		if err := o.Place(paymentMethod); err != nil {
			return err
		}
		if err := s.orders.CreateOrder(o); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		cart.Clear()
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder retrieves an order by its number
func (s *CheckoutServiceImpl) GetOrder(number string) (*models.Order, error) {
	order, err := s.orders.GetOrderByNumber(number)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}
