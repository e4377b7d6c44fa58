package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"github.com/adyen/storefront/internal/repository"
	"github.com/adyen/storefront/internal/services"
)

const templateDir = "../../templates"

// testStore wires every handler to in-memory repositories
type testStore struct {
	t        *testing.T
	session  string
	carts    services.CartService
	checkout services.CheckoutService
	orders   *repository.OrderRepository

	home         *HomeHandler
	category     *CategoryHandler
	product      *ProductHandler
	cart         *CartHandler
	shipping     *CheckoutHandler
	payment      *PaymentHandler
	confirmation *ConfirmationHandler
	failure      *FailureHandler
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()

	logger := zaptest.NewLogger(t)
	catalogRepo := repository.NewDefaultCatalogRepository()
	cartRepo := repository.NewCartRepository()
	orderRepo := repository.NewOrderRepository()

	s := &testStore{
		t:        t,
		session:  uuid.New().String(),
		carts:    services.NewCartService(cartRepo, catalogRepo),
		checkout: services.NewCheckoutService(cartRepo, orderRepo),
		orders:   orderRepo,
	}
	catalog := services.NewCatalogService(catalogRepo)

	var err error
	must := func() {
		t.Helper()
		if err != nil {
			t.Fatalf("Failed to create handler: %v", err)
		}
	}
	s.home, err = NewHomeHandler(templateDir, s.carts, logger)
	must()
	s.category, err = NewCategoryHandler(templateDir, repository.CategoryBags, "Bags", catalog, s.carts, logger)
	must()
	s.product, err = NewProductHandler(templateDir, catalog, s.carts, logger)
	must()
	s.cart, err = NewCartHandler(templateDir, s.carts, logger)
	must()
	s.shipping, err = NewCheckoutHandler(templateDir, s.checkout, s.carts, logger)
	must()
	s.payment, err = NewPaymentHandler(templateDir, s.checkout, s.carts, logger)
	must()
	s.confirmation, err = NewConfirmationHandler(templateDir, s.checkout, s.carts, logger)
	must()
	s.failure, err = NewFailureHandler(templateDir, s.carts, logger)
	must()
	return s
}

// serve runs h behind WithSession with the store's session cookie
func (s *testStore) serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	s.t.Helper()
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: s.session})
	w := httptest.NewRecorder()
	WithSession(h).ServeHTTP(w, req)
	return w
}

func (s *testStore) get(h http.Handler, target string) *httptest.ResponseRecorder {
	return s.serve(h.ServeHTTP, httptest.NewRequest(http.MethodGet, target, nil))
}

func (s *testStore) post(h http.HandlerFunc, target string, form url.Values, ajax bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if ajax {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	return s.serve(h, req)
}

// addToCart puts qty of sku in the session's cart through the product form
func (s *testStore) addToCart(sku, qty string) CartResponse {
	s.t.Helper()
	w := s.post(s.cart.Add, "/checkout/cart/add", url.Values{"product": {sku}, "qty": {qty}}, true)
	if w.Code != http.StatusOK {
		s.t.Fatalf("add to cart: expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp CartResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		s.t.Fatalf("add to cart: invalid JSON: %v", err)
	}
	return resp
}

func guestForm() url.Values {
	return url.Values{
		"firstname": {"Test"},
		"lastname":  {"User"},
		"email":     {"test@example.com"},
		"street[0]": {"123 Test St"},
		"city":      {"Testville"},
		"region_id": {"California"},
		"postcode":  {"12345"},
		"telephone": {"5555555555"},
	}
}

func parseDoc(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	return doc
}

// requireOne fails unless selector matches exactly one element
func requireOne(t *testing.T, doc *goquery.Document, selector string) *goquery.Selection {
	t.Helper()
	sel := doc.Find(selector)
	if sel.Length() != 1 {
		t.Fatalf("expected exactly one %q, found %d", selector, sel.Length())
	}
	return sel
}

func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
