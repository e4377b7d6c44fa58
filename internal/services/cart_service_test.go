package services

import (
	"errors"
	"testing"

	"github.com/adyen/storefront/internal/models"
)

func TestCatalogService(t *testing.T) {
	mockCatalog := &MockCatalogRepository{
		ListByCategoryFunc: func(category string) ([]models.Product, error) {
			if category != "gear/bags" {
				t.Errorf("Expected category gear/bags, got %s", category)
			}
			return []models.Product{{SKU: "a"}, {SKU: "b"}}, nil
		},
		GetProductByURLKeyFunc: func(urlKey string) (*models.Product, error) {
			return nil, models.ErrProductNotFound
		},
	}
	service := NewCatalogService(mockCatalog)

	products, err := service.ListCategory("gear/bags")
	if err != nil {
		t.Fatalf("ListCategory() unexpected error = %v", err)
	}
	if len(products) != 2 {
		t.Errorf("Expected 2 products, got %d", len(products))
	}

	if _, err := service.GetProduct("missing"); !errors.Is(err, models.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestCartService_GetCart(t *testing.T) {
	tests := []struct {
		name      string
		mockCart  *models.Cart
		mockError error
		wantErr   bool
		wantCount int
	}{
		{
			name:      "new session gets an empty cart",
			wantCount: 0,
		},
		{
			name:      "existing cart",
			mockCart:  cartWithLine("session-1", 2),
			wantCount: 2,
		},
		{
			name:      "repository error",
			mockError: errors.New("storage unavailable"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCarts := &MockCartRepository{}
			if tt.mockCart != nil || tt.mockError != nil {
				mockCarts.GetCartFunc = func(id string) (*models.Cart, error) {
					return tt.mockCart, tt.mockError
				}
			}

			service := NewCartService(mockCarts, &MockCatalogRepository{})
			cart, err := service.GetCart("session-1")

			if (err != nil) != tt.wantErr {
				t.Fatalf("GetCart() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cart.ID != "session-1" {
				t.Errorf("Expected cart ID session-1, got %s", cart.ID)
			}
			if cart.ItemCount() != tt.wantCount {
				t.Errorf("Expected item count %d, got %d", tt.wantCount, cart.ItemCount())
			}
		})
	}
}

func TestCartService_AddToCart(t *testing.T) {
	tests := []struct {
		name       string
		qty        int
		productErr error
		saveErr    error
		wantErr    error
		wantSaved  bool
	}{
		{
			name:      "successful add",
			qty:       2,
			wantSaved: true,
		},
		{
			name:    "invalid quantity",
			qty:     0,
			wantErr: models.ErrInvalidQuantity,
		},
		{
			name:       "unknown product",
			qty:        1,
			productErr: models.ErrProductNotFound,
			wantErr:    models.ErrProductNotFound,
		},
		{
			name:      "repository error",
			qty:       1,
			saveErr:   errors.New("database error"),
			wantSaved: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := false
			mockCarts := &MockCartRepository{
				SaveCartFunc: func(cart *models.Cart) error {
					saved = true
					if cart.ItemCount() != tt.qty {
						t.Errorf("Expected saved count %d, got %d", tt.qty, cart.ItemCount())
					}
					return tt.saveErr
				},
			}
			mockCatalog := &MockCatalogRepository{}
			if tt.productErr != nil {
				mockCatalog.GetProductBySKUFunc = func(string) (*models.Product, error) {
					return nil, tt.productErr
				}
			}

			service := NewCartService(mockCarts, mockCatalog)
			cart, err := service.AddToCart("session-1", "24-WB07", tt.qty)

			if saved != tt.wantSaved {
				t.Errorf("Expected saved = %v, got %v", tt.wantSaved, saved)
			}
			if tt.saveErr != nil {
				if err == nil {
					t.Error("Expected repository error to be returned")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddToCart() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && cart.ItemCount() != tt.qty {
				t.Errorf("Expected item count %d, got %d", tt.qty, cart.ItemCount())
			}
		})
	}
}

func TestCartService_UpdateQuantities(t *testing.T) {
	tests := []struct {
		name       string
		quantities map[string]int
		wantErr    error
		wantCount  int
	}{
		{
			name:       "update existing line",
			quantities: map[string]int{"24-WB07": 3},
			wantCount:  3,
		},
		{
			name:       "unknown line",
			quantities: map[string]int{"missing": 3},
			wantErr:    models.ErrLineNotFound,
		},
		{
			name:       "invalid quantity",
			quantities: map[string]int{"24-WB07": -2},
			wantErr:    models.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saves := 0
			mockCarts := &MockCartRepository{
				GetCartFunc: func(id string) (*models.Cart, error) {
					return cartWithLine(id, 2), nil
				},
				SaveCartFunc: func(*models.Cart) error {
					saves++
					return nil
				},
			}

			service := NewCartService(mockCarts, &MockCatalogRepository{})
			cart, err := service.UpdateQuantities("session-1", tt.quantities)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdateQuantities() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if saves != 0 {
					t.Error("Expected nothing to be saved when an update is rejected")
				}
				return
			}
			if cart.ItemCount() != tt.wantCount {
				t.Errorf("Expected item count %d, got %d", tt.wantCount, cart.ItemCount())
			}
			if saves != 1 {
				t.Errorf("Expected one save, got %d", saves)
			}
		})
	}
}
