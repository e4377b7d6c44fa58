package services

import (
	"errors"
	"fmt"

	"github.com/adyen/storefront/internal/models"
	"github.com/adyen/storefront/internal/repository"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	GetCart(id string) (*models.Cart, error)
	SaveCart(cart *models.Cart) error
	// UpdateCart applies fn to the cart with the given ID, creating it when
	// missing, and saves the result only when fn succeeds. Updates to one
	// cart are serialised.
	UpdateCart(id string, fn func(*models.Cart) error) (*models.Cart, error)
}

// CartService handles the shopping cart of a storefront session
type CartService interface {
	GetCart(sessionID string) (*models.Cart, error)
	AddToCart(sessionID, sku string, qty int) (*models.Cart, error)
	UpdateQuantities(sessionID string, quantities map[string]int) (*models.Cart, error)
}

// CartServiceImpl implements CartService
type CartServiceImpl struct {
	carts   CartRepository
	catalog CatalogRepository
}

// NewCartService creates a new cart service
func NewCartService(carts CartRepository, catalog CatalogRepository) CartService {
	return &CartServiceImpl{
		carts:   carts,
		catalog: catalog,
	}
}

// GetCart returns the session's cart, or a new empty one
func (s *CartServiceImpl) GetCart(sessionID string) (*models.Cart, error) {
	cart, err := s.carts.GetCart(sessionID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return models.NewCart(sessionID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

// AddToCart adds qty of the product with sku to the session's cart
func (s *CartServiceImpl) AddToCart(sessionID, sku string, qty int) (*models.Cart, error) {
	product, err := s.catalog.GetProductBySKU(sku)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	return s.carts.UpdateCart(sessionID, func(cart *models.Cart) error {
		return cart.Add(*product, qty)
	})
}

// UpdateQuantities sets the quantity of every listed line. Nothing is saved
// when any quantity is rejected.
func (s *CartServiceImpl) UpdateQuantities(sessionID string, quantities map[string]int) (*models.Cart, error) {
	return s.carts.UpdateCart(sessionID, func(cart *models.Cart) error {
		for sku, qty := range quantities {
			if err := cart.SetQuantity(sku, qty); err != nil {
				return err
			}
		}
		return nil
	})
}
