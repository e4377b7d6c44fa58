package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/config"
	"github.com/adyen/storefront/internal/handlers"
	"github.com/adyen/storefront/internal/repository"
)

// ServerDependencies holds all dependencies needed for the fixture storefront
type ServerDependencies struct {
	OrderRepo    *repository.OrderRepository
	ServerConfig config.ServerConfig
	Logger       *zap.Logger

	HomeHandler         http.Handler
	CategoryHandler     http.Handler
	ProductHandler      http.Handler
	CartHandler         http.Handler
	AddToCartHandler    http.Handler
	UpdateCartHandler   http.Handler
	CheckoutHandler     http.Handler
	ShippingHandler     http.Handler
	PaymentHandler      http.Handler
	PlaceOrderHandler   http.Handler
	ConfirmationHandler http.Handler
	FailureHandler      http.Handler
}

// RunServe starts the fixture storefront and blocks until SIGINT or SIGTERM
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil, deps.logger())
}

// Routes builds the storefront mux behind the session middleware
func Routes(deps ServerDependencies) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", deps.HomeHandler)
	mux.Handle("GET /gear/bags.html", deps.CategoryHandler)
	mux.Handle("GET /{"+handlers.ProductPathValue+"}", deps.ProductHandler)
	mux.Handle("GET /checkout/cart/{$}", deps.CartHandler)
	mux.Handle("POST /checkout/cart/add", deps.AddToCartHandler)
	mux.Handle("POST /checkout/cart/updatePost", deps.UpdateCartHandler)
	mux.Handle("GET /checkout/{$}", deps.CheckoutHandler)
	mux.Handle("POST /checkout/shipping", deps.ShippingHandler)
	mux.Handle("GET /checkout/payment", deps.PaymentHandler)
	mux.Handle("POST /checkout/placeOrder", deps.PlaceOrderHandler)
	mux.Handle("GET /checkout/onepage/success/{$}", deps.ConfirmationHandler)
	mux.Handle("GET /checkout/failure", deps.FailureHandler)
	return handlers.WithSession(mux)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	logger := deps.logger()

	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           Routes(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", zap.Error(err))
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// A nil shutdown channel is created and registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, logger *zap.Logger) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second, logger)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	logger.Info("Shutting down server", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("Graceful shutdown timed out, closing", zap.Error(err))
		// http.Server.Close does not surface listener close errors
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	logger.Info("Server stopped")
	return nil
}

func (d ServerDependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
