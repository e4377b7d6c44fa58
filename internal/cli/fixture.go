package cli

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/config"
	"github.com/adyen/storefront/internal/handlers"
	"github.com/adyen/storefront/internal/repository"
	"github.com/adyen/storefront/internal/services"
)

// BuildFixtureDependencies wires the fixture storefront onto fresh in-memory
// repositories seeded with the default bag catalog
func BuildFixtureDependencies(cfg config.ServerConfig, logger *zap.Logger) (ServerDependencies, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	deps := ServerDependencies{
		OrderRepo:    repository.NewOrderRepository(),
		ServerConfig: cfg,
		Logger:       logger,
	}
	dir := cfg.TemplateDir

	catalogRepo := repository.NewDefaultCatalogRepository()
	cartRepo := repository.NewCartRepository()

	catalog := services.NewCatalogService(catalogRepo)
	carts := services.NewCartService(cartRepo, catalogRepo)
	checkout := services.NewCheckoutService(cartRepo, deps.OrderRepo)

	home, err := handlers.NewHomeHandler(dir, carts, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create home handler: %w", err)
	}
	deps.HomeHandler = home

	bags, err := handlers.NewCategoryHandler(dir, repository.CategoryBags, "Bags", catalog, carts, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create category handler: %w", err)
	}
	deps.CategoryHandler = bags

	product, err := handlers.NewProductHandler(dir, catalog, carts, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create product handler: %w", err)
	}
	deps.ProductHandler = product

	cart, err := handlers.NewCartHandler(dir, carts, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create cart handler: %w", err)
	}
	deps.CartHandler = cart
	deps.AddToCartHandler = http.HandlerFunc(cart.Add)
	deps.UpdateCartHandler = http.HandlerFunc(cart.Update)

	shipping, err := handlers.NewCheckoutHandler(dir, checkout, carts, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create checkout handler: %w", err)
	}
	deps.CheckoutHandler = shipping
	deps.ShippingHandler = http.HandlerFunc(shipping.SaveShipping)

	payment, err := handlers.NewPaymentHandler(dir, checkout, carts, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create payment handler: %w", err)
	}
	deps.PaymentHandler = payment
	deps.PlaceOrderHandler = http.HandlerFunc(payment.PlaceOrder)

	confirmation, err := handlers.NewConfirmationHandler(dir, checkout, carts, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create confirmation handler: %w", err)
	}
	deps.ConfirmationHandler = confirmation

	failure, err := handlers.NewFailureHandler(dir, carts, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create failure handler: %w", err)
	}
	deps.FailureHandler = failure

	return deps, nil
}
