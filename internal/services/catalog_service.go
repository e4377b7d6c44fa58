package services

import (
	"fmt"

	"github.com/adyen/storefront/internal/models"
)

// CatalogRepository defines the interface for product lookups
type CatalogRepository interface {
	ListByCategory(category string) ([]models.Product, error)
	GetProductByURLKey(urlKey string) (*models.Product, error)
	GetProductBySKU(sku string) (*models.Product, error)
}

// CatalogService serves the listing and product pages
type CatalogService interface {
	ListCategory(category string) ([]models.Product, error)
	GetProduct(urlKey string) (*models.Product, error)
}

// CatalogServiceImpl implements CatalogService
type CatalogServiceImpl struct {
	catalog CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog CatalogRepository) CatalogService {
	return &CatalogServiceImpl{
		catalog: catalog,
	}
}

// ListCategory returns the products of a category in listing order
func (s *CatalogServiceImpl) ListCategory(category string) ([]models.Product, error) {
	products, err := s.catalog.ListByCategory(category)
	if err != nil {
		return nil, fmt.Errorf("failed to list category %s: %w", category, err)
	}
	return products, nil
}

// GetProduct retrieves a product by the URL key of its page
func (s *CatalogServiceImpl) GetProduct(urlKey string) (*models.Product, error) {
	product, err := s.catalog.GetProductByURLKey(urlKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}
