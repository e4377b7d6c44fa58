package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/adyen/storefront/internal/models"
)

// ErrOrderNotFound is returned for unknown order numbers
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository keeps placed orders in memory for the lifetime of the
// fixture server
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*models.Order
}

// NewOrderRepository creates a new order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*models.Order),
	}
}

// CreateOrder stores a new order
func (r *OrderRepository) CreateOrder(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.Number]; exists {
		return fmt.Errorf("failed to create order: number %s already exists", order.Number)
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	stored := *order
	stored.Lines = append([]models.CartLine(nil), order.Lines...)
	r.orders[order.Number] = &stored
	return nil
}

// GetOrderByNumber retrieves an order by its customer facing number
func (r *OrderRepository) GetOrderByNumber(number string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, number)
	}
	out := *order
	out.Lines = append([]models.CartLine(nil), order.Lines...)
	return &out, nil
}

// UpdateOrderStatus updates the status of an order
func (r *OrderRepository) UpdateOrderStatus(number string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[number]
	if !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, number)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return nil
}

// CountOrders returns how many orders have been stored
func (r *OrderRepository) CountOrders() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
