package services

import (
	"errors"

	"github.com/adyen/storefront/internal/models"
	"github.com/adyen/storefront/internal/repository"
)

// MockCatalogRepository is a mock implementation of CatalogRepository for testing
type MockCatalogRepository struct {
	ListByCategoryFunc     func(string) ([]models.Product, error)
	GetProductByURLKeyFunc func(string) (*models.Product, error)
	GetProductBySKUFunc    func(string) (*models.Product, error)
}

func (m *MockCatalogRepository) ListByCategory(category string) ([]models.Product, error) {
	if m.ListByCategoryFunc != nil {
		return m.ListByCategoryFunc(category)
	}
	return nil, nil
}

func (m *MockCatalogRepository) GetProductByURLKey(urlKey string) (*models.Product, error) {
	if m.GetProductByURLKeyFunc != nil {
		return m.GetProductByURLKeyFunc(urlKey)
	}
	return &models.Product{URLKey: urlKey}, nil
}

func (m *MockCatalogRepository) GetProductBySKU(sku string) (*models.Product, error) {
	if m.GetProductBySKUFunc != nil {
		return m.GetProductBySKUFunc(sku)
	}
	return &models.Product{SKU: sku, Name: "Test Product", Price: 4500}, nil
}

// MockCartRepository is a mock implementation of CartRepository for testing
type MockCartRepository struct {
	GetCartFunc    func(string) (*models.Cart, error)
	SaveCartFunc   func(*models.Cart) error
	UpdateCartFunc func(string, func(*models.Cart) error) (*models.Cart, error)
}

func (m *MockCartRepository) GetCart(id string) (*models.Cart, error) {
	if m.GetCartFunc != nil {
		return m.GetCartFunc(id)
	}
	return nil, repository.ErrCartNotFound
}

func (m *MockCartRepository) SaveCart(cart *models.Cart) error {
	if m.SaveCartFunc != nil {
		return m.SaveCartFunc(cart)
	}
	return nil
}

// UpdateCart defaults to GetCart, fn and SaveCart in sequence
func (m *MockCartRepository) UpdateCart(id string, fn func(*models.Cart) error) (*models.Cart, error) {
	if m.UpdateCartFunc != nil {
		return m.UpdateCartFunc(id, fn)
	}
	cart, err := m.GetCart(id)
	if errors.Is(err, repository.ErrCartNotFound) {
		cart = models.NewCart(id)
	} else if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := m.SaveCart(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// MockOrderRepository is a mock implementation of OrderRepository for testing
type MockOrderRepository struct {
	CreateOrderFunc       func(*models.Order) error
	GetOrderByNumberFunc  func(string) (*models.Order, error)
	UpdateOrderStatusFunc func(string, models.OrderStatus) error
}

func (m *MockOrderRepository) CreateOrder(order *models.Order) error {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(order)
	}
	return nil
}

func (m *MockOrderRepository) GetOrderByNumber(number string) (*models.Order, error) {
	if m.GetOrderByNumberFunc != nil {
		return m.GetOrderByNumberFunc(number)
	}
	return &models.Order{Number: number}, nil
}

func (m *MockOrderRepository) UpdateOrderStatus(number string, status models.OrderStatus) error {
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(number, status)
	}
	return nil
}

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
		Street:    "123 Test St",
		City:      "Testville",
		Region:    "California",
		Postcode:  "12345",
		Telephone: "5555555555",
	}
}

func cartWithLine(id string, qty int) *models.Cart {
	cart := models.NewCart(id)
	cart.Add(models.Product{SKU: "24-WB07", Name: "Push It Messenger Bag", Price: 4500}, qty)
	return cart
}
