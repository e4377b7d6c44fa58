package scenario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/adyen/storefront/internal/browser"
	"github.com/adyen/storefront/internal/browser/browsertest"
	"github.com/adyen/storefront/internal/workbook"
)

const (
	fakeURL      = "https://storefront.test/"
	fakeTimeout  = 40 * time.Millisecond
	fakeInterval = time.Millisecond
)

var fakeProducts = []workbook.ProductRecord{
	{Name: "Push It Messenger Bag", Price: "$45.00"},
	{Name: "Overnight Duffle", Price: "$45.00"},
	{Name: "Wayfarer Messenger Bag", Price: "$45.00"},
	{Name: "Fusion Backpack", Price: "$59.00"},
}

// fakeStore wires browsertest elements so each click reveals the next page
// of the journey, the way the real storefront does.
type fakeStore struct {
	t       *testing.T
	page    *browsertest.Page
	pointer *browsertest.Pointer
	sel     Selectors
	dir     string
	logs    *observer.ObservedLogs
	logger  *zap.Logger

	menu, submenu                       *browsertest.Element
	items                               []*browsertest.Element
	links                               []*browsertest.Element
	media, qty, addToCart, counter      *browsertest.Element
	cartIcon, viewCart                  *browsertest.Element
	cartName, cartQty, update, proceed  *browsertest.Element
	fields                              map[string]*browsertest.Element
	continueButton, placeOrder, success *browsertest.Element
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()

	sel, err := DefaultSelectors("", "")
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	s := &fakeStore{
		t:       t,
		page:    browsertest.NewPage(),
		pointer: &browsertest.Pointer{},
		sel:     sel,
		dir:     t.TempDir(),
		logs:    logs,
		logger:  zap.New(core),
		fields:  make(map[string]*browsertest.Element),
	}
	s.page.Markup = `<html><head><title>Home Page</title></head><body><h1>Home Page</h1></body></html>`

	s.menu = browsertest.NewElement("gear", "Gear")
	s.submenu = browsertest.NewElement("bags", "Bags")
	s.submenu.Hidden = true
	s.pointer.OnHover = func(el browser.Element) {
		if el == browser.Element(s.menu) {
			s.submenu.Hidden = false
		}
	}
	s.submenu.OnClick = s.openListing

	s.page.OnNavigate = func(string) {
		s.page.Add(sel.MenuTrigger, s.menu)
		s.page.Add(sel.SubmenuLink, s.submenu)
	}

	for _, p := range fakeProducts {
		link := browsertest.NewElement("link "+p.Name, p.Name)
		item := browsertest.NewElement("item "+p.Name, "")
		item.Add(sel.ItemLink, link)
		item.Add(sel.ItemPrice, browsertest.NewElement("price "+p.Name, p.Price))
		s.items = append(s.items, item)
		s.links = append(s.links, link)
	}
	s.links[0].OnClick = s.openDetail

	s.media = browsertest.NewElement("media", "")
	s.qty = browsertest.NewElement("qty", "")
	s.qty.InputValue = "1"
	s.counter = browsertest.NewElement("counter", "")
	s.addToCart = browsertest.NewElement("add to cart", "Add to Cart")
	s.addToCart.OnClick = func() { s.counter.TextValue = s.qty.InputValue }
	s.cartIcon = browsertest.NewElement("cart icon", "My Cart")
	s.viewCart = browsertest.NewElement("view cart", "View and Edit Cart")
	s.viewCart.Hidden = true
	s.cartIcon.OnClick = func() { s.viewCart.Hidden = false }
	s.viewCart.OnClick = s.openCart

	s.cartName = browsertest.NewElement("cart name", "")
	s.cartQty = browsertest.NewElement("cart qty", "")
	s.update = browsertest.NewElement("update", "Update Shopping Cart")
	s.proceed = browsertest.NewElement("proceed", "Proceed to Checkout")
	s.proceed.OnClick = s.openCheckout

	for _, name := range []string{"firstname", "lastname", "email", "street[0]", "city", "region_id", "postcode", "telephone"} {
		s.fields[name] = browsertest.NewElement(name, "")
	}
	s.continueButton = browsertest.NewElement("continue", "Next")
	s.continueButton.OnClick = s.openPayment
	s.placeOrder = browsertest.NewElement("place order", "Place Order")
	s.success = browsertest.NewElement("success", "Thank you for your purchase!")
	s.placeOrder.OnClick = func() { s.page.Add(sel.Success, s.success) }

	return s
}

func (s *fakeStore) runner() *Runner {
	return NewRunner(Dependencies{
		Session:   s.page,
		Wait:      browser.NewWait(s.page, fakeTimeout, fakeInterval),
		Pointer:   s.pointer,
		Selectors: s.sel,
		Logger:    s.logger,
	}, Config{BaseURL: fakeURL, ArtifactsDir: s.dir})
}

func (s *fakeStore) openListing() {
	s.page.Add(s.sel.ListingItem, s.items...)
}

func (s *fakeStore) openDetail() {
	s.page.Add(s.sel.DetailMedia, s.media)
	s.page.Add(s.sel.Quantity, s.qty)
	s.page.Add(s.sel.AddToCart, s.addToCart)
	s.page.Add(s.sel.CartCounter, s.counter)
	s.page.Add(s.sel.CartIcon, s.cartIcon)
	s.page.Add(s.sel.ViewCart, s.viewCart)
}

func (s *fakeStore) openCart() {
	s.cartName.TextValue = fakeProducts[0].Name
	s.cartQty.InputValue = s.counter.TextValue
	s.page.Add(s.sel.CartItemName, s.cartName)
	s.page.Add(s.sel.CartItemQuantity, s.cartQty)
	s.page.Add(s.sel.UpdateCart, s.update)
	s.page.Add(s.sel.ProceedToCheckout, s.proceed)
}

func (s *fakeStore) openCheckout() {
	s.page.Add(s.sel.FirstName, s.fields["firstname"])
	s.page.Add(s.sel.LastName, s.fields["lastname"])
	s.page.Add(s.sel.Email, s.fields["email"])
	s.page.Add(s.sel.Street, s.fields["street[0]"])
	s.page.Add(s.sel.City, s.fields["city"])
	s.page.Add(s.sel.Region, s.fields["region_id"])
	s.page.Add(s.sel.Postcode, s.fields["postcode"])
	s.page.Add(s.sel.Telephone, s.fields["telephone"])
	s.page.Add(s.sel.Continue, s.continueButton)
}

func (s *fakeStore) openPayment() {
	s.page.Add(s.sel.PlaceOrder, s.placeOrder)
}

func (s *fakeStore) messages() []string {
	var out []string
	for _, e := range s.logs.All() {
		out = append(out, e.Message)
	}
	return out
}
