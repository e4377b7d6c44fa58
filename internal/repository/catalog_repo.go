package repository

import (
	"fmt"
	"sync"

	"github.com/adyen/storefront/internal/models"
)

// CategoryBags is the category the default catalog ships with
const CategoryBags = "gear/bags"

// CatalogRepository holds the fixture products in listing order
type CatalogRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewCatalogRepository creates a catalog holding products in the given order
func NewCatalogRepository(products []models.Product) *CatalogRepository {
	return &CatalogRepository{
		products: append([]models.Product(nil), products...),
	}
}

// NewDefaultCatalogRepository creates the catalog the fixture storefront
// serves, mirroring the Luma Gear > Bags listing
func NewDefaultCatalogRepository() *CatalogRepository {
	return NewCatalogRepository(DefaultProducts())
}

// DefaultProducts returns the Gear > Bags products in listing order
func DefaultProducts() []models.Product {
	bag := func(sku, name, key string, price int64) models.Product {
		return models.Product{
			SKU:         sku,
			Name:        name,
			URLKey:      key,
			Category:    CategoryBags,
			Description: name + " from the Luma gear collection.",
			ImageURL:    "/static/images/" + key + ".svg",
			Price:       price,
		}
	}
	return []models.Product{
		bag("24-MB01", "Joust Duffle Bag", "joust-duffle-bag", 3400),
		bag("24-MB04", "Strive Shoulder Pack", "strive-shoulder-pack", 3200),
		bag("24-MB03", "Crown Summit Backpack", "crown-summit-backpack", 3800),
		bag("24-MB05", "Wayfarer Messenger Bag", "wayfarer-messenger-bag", 4500),
		bag("24-MB06", "Rival Field Messenger", "rival-field-messenger", 4500),
		bag("24-MB02", "Fusion Backpack", "fusion-backpack", 5900),
		bag("24-UB02", "Impulse Duffle", "impulse-duffle", 7400),
		bag("24-WB01", "Voyage Yoga Bag", "voyage-yoga-bag", 3200),
		bag("24-WB02", "Compete Track Tote", "compete-track-tote", 3200),
		bag("24-WB05", "Savvy Shoulder Tote", "savvy-shoulder-tote", 3200),
		bag("24-WB06", "Endeavor Daytrip Backpack", "endeavor-daytrip-backpack", 3300),
		bag("24-WB03", "Driven Backpack", "driven-backpack", 3600),
		bag("24-WB04", "Overnight Duffle", "overnight-duffle", 4500),
		bag("24-WB07", "Push It Messenger Bag", "push-it-messenger-bag", 4500),
	}
}

// ListByCategory returns the products of category in listing order
func (r *CatalogRepository) ListByCategory(category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetProductByURLKey retrieves a product by its URL key
func (r *CatalogRepository) GetProductByURLKey(urlKey string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.URLKey == urlKey {
			p := p
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrProductNotFound, urlKey)
}

// GetProductBySKU retrieves a product by its SKU
func (r *CatalogRepository) GetProductBySKU(sku string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.SKU == sku {
			p := p
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrProductNotFound, sku)
}
