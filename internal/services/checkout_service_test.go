package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/adyen/storefront/internal/models"
	"github.com/adyen/storefront/internal/repository"
)

func TestCheckoutService_SaveShipping(t *testing.T) {
	missingCity := testAddress()
	missingCity.City = ""

	tests := []struct {
		name      string
		mockCart  *models.Cart
		address   models.ShippingAddress
		wantErr   error
		wantSaved bool
	}{
		{
			name:      "valid address",
			mockCart:  cartWithLine("session-1", 2),
			address:   testAddress(),
			wantSaved: true,
		},
		{
			name:     "missing field",
			mockCart: cartWithLine("session-1", 2),
			address:  missingCity,
			wantErr:  models.ErrMissingAddressField,
		},
		{
			name:    "no cart",
			address: testAddress(),
			wantErr: models.ErrEmptyCart,
		},
		{
			name:     "empty cart",
			mockCart: models.NewCart("session-1"),
			address:  testAddress(),
			wantErr:  models.ErrEmptyCart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *models.Cart
			mockCarts := &MockCartRepository{
				SaveCartFunc: func(cart *models.Cart) error {
					saved = cart
					return nil
				},
			}
			if tt.mockCart != nil {
				mockCarts.GetCartFunc = func(string) (*models.Cart, error) { return tt.mockCart, nil }
			}

			service := NewCheckoutService(mockCarts, &MockOrderRepository{})
			err := service.SaveShipping("session-1", tt.address)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SaveShipping() error = %v, wantErr %v", err, tt.wantErr)
			}
			if (saved != nil) != tt.wantSaved {
				t.Fatalf("Expected saved = %v", tt.wantSaved)
			}
			if saved != nil && saved.Shipping.Region != "California" {
				t.Errorf("Expected region California, got %s", saved.Shipping.Region)
			}
		})
	}
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	shippedCart := func() *models.Cart {
		cart := cartWithLine("session-1", 3)
		addr := testAddress()
		cart.Shipping = &addr
		return cart
	}

	tests := []struct {
		name          string
		mockCart      *models.Cart
		paymentMethod string
		createErr     error
		wantErr       error
		wantAnyErr    bool
	}{
		{
			name:          "successful order",
			mockCart:      shippedCart(),
			paymentMethod: PaymentMethodCheckMo,
		},
		{
			name:          "shipping step skipped",
			mockCart:      cartWithLine("session-1", 1),
			paymentMethod: PaymentMethodCheckMo,
			wantErr:       models.ErrMissingShipping,
		},
		{
			name:          "no payment method",
			mockCart:      shippedCart(),
			paymentMethod: "",
			wantErr:       models.ErrMissingPaymentMethod,
		},
		{
			name:          "no cart",
			paymentMethod: PaymentMethodCheckMo,
			wantErr:       models.ErrEmptyCart,
		},
		{
			name:          "repository error",
			mockCart:      shippedCart(),
			paymentMethod: PaymentMethodCheckMo,
			createErr:     errors.New("database error"),
			wantAnyErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *models.Order
			var saved *models.Cart
			mockCarts := &MockCartRepository{
				SaveCartFunc: func(cart *models.Cart) error {
					saved = cart
					return nil
				},
			}
			if tt.mockCart != nil {
				mockCarts.GetCartFunc = func(string) (*models.Cart, error) { return tt.mockCart, nil }
			}
			mockOrders := &MockOrderRepository{
				CreateOrderFunc: func(order *models.Order) error {
					if tt.createErr != nil {
						return tt.createErr
					}
					created = order
					return nil
				},
			}

			service := NewCheckoutService(mockCarts, mockOrders)
			order, err := service.PlaceOrder("session-1", tt.paymentMethod)

			if tt.wantAnyErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if saved != nil {
					t.Error("Cart should not be cleared when the order is not stored")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("PlaceOrder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if created != nil {
					t.Error("No order should be stored on error")
				}
				return
			}

			if !order.IsPlaced() {
				t.Errorf("Expected status %s, got %s", models.OrderStatusPlaced, order.Status)
			}
			if order.PaymentMethod != PaymentMethodCheckMo {
				t.Errorf("Expected payment method %s, got %s", PaymentMethodCheckMo, order.PaymentMethod)
			}
			if created != order {
				t.Error("Expected the placed order to be stored")
			}
			if saved == nil || !saved.IsEmpty() {
				t.Error("Expected the cart to be cleared and saved")
			}
			if order.Subtotal != 13500 {
				t.Errorf("Expected subtotal 13500, got %d", order.Subtotal)
			}
		})
	}
}

func TestCheckoutService_GetOrder(t *testing.T) {
	tests := []struct {
		name      string
		number    string
		mockOrder *models.Order
		mockError error
		wantErr   bool
	}{
		{
			name:      "successful retrieval",
			number:    "000000123",
			mockOrder: &models.Order{Number: "000000123", Status: models.OrderStatusPlaced},
		},
		{
			name:      "order not found",
			number:    "000000999",
			mockError: errors.New("order not found"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOrders := &MockOrderRepository{
				GetOrderByNumberFunc: func(number string) (*models.Order, error) {
					if tt.mockError != nil {
						return nil, tt.mockError
					}
					return tt.mockOrder, nil
				},
			}

			service := NewCheckoutService(&MockCartRepository{}, mockOrders)
			order, err := service.GetOrder(tt.number)

			if (err != nil) != tt.wantErr {
				t.Errorf("GetOrder() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && order.Number != tt.number {
				t.Errorf("Expected order %s, got %s", tt.number, order.Number)
			}
		})
	}
}

func TestCheckoutService_SaveShippingKeepsConcurrentAdds(t *testing.T) {
	// GIVEN a cart shared by a shipping save and several add-to-cart requests
	carts := repository.NewCartRepository()
	catalog := repository.NewDefaultCatalogRepository()
	cartService := NewCartService(carts, catalog)
	checkout := NewCheckoutService(carts, repository.NewOrderRepository())
	if _, err := cartService.AddToCart("session-1", "24-WB07", 1); err != nil {
		t.Fatalf("AddToCart() unexpected error = %v", err)
	}

	// WHEN both run at the same time
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := cartService.AddToCart("session-1", "24-WB07", 1); err != nil {
				t.Errorf("AddToCart() unexpected error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := checkout.SaveShipping("session-1", testAddress()); err != nil {
				t.Errorf("SaveShipping() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	// THEN no added item and no address is lost
	cart, err := cartService.GetCart("session-1")
	if err != nil {
		t.Fatalf("GetCart() unexpected error = %v", err)
	}
	if cart.ItemCount() != 21 {
		t.Errorf("Expected 21 items, got %d", cart.ItemCount())
	}
	if cart.Shipping == nil {
		t.Error("Expected the shipping address to be kept")
	}
}

func TestCheckoutService_PlaceOrderClearsCartOnce(t *testing.T) {
	// GIVEN a shipped cart
	carts := repository.NewCartRepository()
	orders := repository.NewOrderRepository()
	cartService := NewCartService(carts, repository.NewDefaultCatalogRepository())
	checkout := NewCheckoutService(carts, orders)
	if _, err := cartService.AddToCart("session-1", "24-WB07", 2); err != nil {
		t.Fatalf("AddToCart() unexpected error = %v", err)
	}
	if err := checkout.SaveShipping("session-1", testAddress()); err != nil {
		t.Fatalf("SaveShipping() unexpected error = %v", err)
	}

	// WHEN the order is placed twice at the same time
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := checkout.PlaceOrder("session-1", PaymentMethodCheckMo)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	// THEN exactly one order is stored and the other attempt sees an empty cart
	var emptyCart int
	for err := range errs {
		if errors.Is(err, models.ErrEmptyCart) {
			emptyCart++
		} else if err != nil {
			t.Errorf("PlaceOrder() unexpected error = %v", err)
		}
	}
	if emptyCart != 1 {
		t.Errorf("Expected one attempt to find an empty cart, got %d", emptyCart)
	}
	if orders.CountOrders() != 1 {
		t.Errorf("Expected 1 order, got %d", orders.CountOrders())
	}
}
