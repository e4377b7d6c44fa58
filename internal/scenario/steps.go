package scenario

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adyen/storefront/internal/browser"
	"github.com/adyen/storefront/internal/workbook"
)

// NavigateMenu opens the storefront, hovers the top-level menu and moves
// the pointer onto the submenu entry before clicking it, so the hover menu
// stays open. A wait timeout dumps the page markup before it is returned.
func (r *Runner) NavigateMenu(ctx context.Context) error {
	if err := r.session.Navigate(ctx, r.cfg.BaseURL); err != nil {
		return err
	}
	r.logger.Info("Navigated to the URL", zap.String("url", r.cfg.BaseURL))

	menu, err := r.wait.Visible(ctx, r.sel.MenuTrigger)
	if err != nil {
		return r.onNavigateError(ctx, "menu trigger", err)
	}
	if err := r.pointer.Hover(ctx, menu); err != nil {
		return fmt.Errorf("failed to hover menu: %w", err)
	}
	r.logger.Info("Hovered over menu", zap.Stringer("locator", r.sel.MenuTrigger))

	submenu, err := r.wait.Visible(ctx, r.sel.SubmenuLink)
	if err != nil {
		return r.onNavigateError(ctx, "submenu link", err)
	}
	if err := r.pointer.MoveAndClick(ctx, submenu); err != nil {
		return fmt.Errorf("failed to click submenu: %w", err)
	}
	r.logger.Info("Clicked on submenu", zap.Stringer("locator", r.sel.SubmenuLink))
	return nil
}

func (r *Runner) onNavigateError(ctx context.Context, target string, err error) error {
	if browser.IsTimeout(err) {
		r.logger.Error("Failed to find "+target,
			zap.Duration("timeout", r.wait.Timeout()),
			zap.Error(err),
			zap.Stack("stacktrace"),
		)
		r.captureDiagnostics(ctx, "menu_navigation", false)
	}
	return err
}

// CaptureListing records the name and price of every listed product in DOM
// order, saves them to the product spreadsheet and opens the first product.
func (r *Runner) CaptureListing(ctx context.Context) ([]workbook.ProductRecord, error) {
	items, err := r.wait.AllPresent(ctx, r.sel.ListingItem)
	if err != nil {
		return nil, err
	}

	sheet := workbook.NewProductSheet()
	records := make([]workbook.ProductRecord, 0, len(items))
	for i, item := range items {
		rec, err := r.readListingItem(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("failed to read listing item %d: %w", i+1, err)
		}
		sheet.Append(rec)
		records = append(records, rec)
		r.logger.Info("Added product to spreadsheet",
			zap.String("name", rec.Name),
			zap.String("price", rec.Price),
		)
	}

	path := r.SpreadsheetPath()
	if err := sheet.Save(path); err != nil {
		return nil, err
	}
	r.products = records
	r.logger.Info("Saved product details", zap.String("path", path), zap.Int("rows", sheet.Len()))

	link, err := items[0].Find(ctx, r.sel.ItemLink)
	if err != nil {
		return records, fmt.Errorf("failed to find first product link: %w", err)
	}
	href, err := link.Attribute(ctx, "href")
	if err != nil {
		return records, fmt.Errorf("failed to read first product link: %w", err)
	}
	if err := link.Click(ctx); err != nil {
		return records, fmt.Errorf("failed to open first product: %w", err)
	}
	r.logger.Info("Clicked on a product to view details",
		zap.String("name", records[0].Name),
		zap.String("url", href),
	)
	return records, nil
}

func (r *Runner) readListingItem(ctx context.Context, item browser.Element) (workbook.ProductRecord, error) {
	link, err := item.Find(ctx, r.sel.ItemLink)
	if err != nil {
		return workbook.ProductRecord{}, err
	}
	name, err := link.Text(ctx)
	if err != nil {
		return workbook.ProductRecord{}, err
	}
	price, err := item.Find(ctx, r.sel.ItemPrice)
	if err != nil {
		return workbook.ProductRecord{}, err
	}
	priceText, err := price.Text(ctx)
	if err != nil {
		return workbook.ProductRecord{}, err
	}
	return workbook.ProductRecord{Name: name, Price: priceText}, nil
}

// ConfigureAndAddToCart checks the product page is shown, sets the quantity
// and adds the product to the cart, then waits for the cart counter.
func (r *Runner) ConfigureAndAddToCart(ctx context.Context) error {
	media, err := r.wait.Visible(ctx, r.sel.DetailMedia)
	if err != nil {
		return err
	}
	displayed, err := media.Visible(ctx)
	if err != nil {
		return err
	}
	if !displayed {
		return assertion("product details page is displayed", "true", "false")
	}
	r.logger.Info("Product Details Page is displayed")

	qty, err := r.session.Find(ctx, r.sel.Quantity)
	if err != nil {
		return err
	}
	if err := qty.Clear(ctx); err != nil {
		return err
	}
	if err := qty.Type(ctx, DetailQuantity); err != nil {
		return err
	}
	r.logger.Info("Changed product quantity", zap.String("qty", DetailQuantity))

	addToCart, err := r.session.Find(ctx, r.sel.AddToCart)
	if err != nil {
		return err
	}
	if err := addToCart.Click(ctx); err != nil {
		return err
	}
	r.logger.Info("Clicked 'Add to Cart' button")

	updated, err := r.wait.TextToBe(ctx, r.sel.CartCounter, DetailQuantity)
	if err != nil {
		return err
	}
	if !updated {
		return assertion("cart count is updated", DetailQuantity, "")
	}
	r.logger.Info("Cart count is updated", zap.String("count", DetailQuantity))
	return nil
}

// ReviewCart opens the cart page, verifies the line added on the product
// page, edits its quantity and proceeds to checkout. The edited quantity is
// not read back.
func (r *Runner) ReviewCart(ctx context.Context) error {
	icon, err := r.session.Find(ctx, r.sel.CartIcon)
	if err != nil {
		return err
	}
	if err := icon.Click(ctx); err != nil {
		return err
	}
	r.logger.Info("Clicked on cart icon")

	viewCart, err := r.wait.Visible(ctx, r.sel.ViewCart)
	if err != nil {
		return err
	}
	if err := viewCart.Click(ctx); err != nil {
		return err
	}
	r.logger.Info("Clicked 'View and Edit Cart' link")

	nameEl, err := r.wait.Visible(ctx, r.sel.CartItemName)
	if err != nil {
		return err
	}
	name, err := nameEl.Text(ctx)
	if err != nil {
		return err
	}
	qtyInput, err := r.session.Find(ctx, r.sel.CartItemQuantity)
	if err != nil {
		return err
	}
	qty, err := qtyInput.Value(ctx)
	if err != nil {
		return err
	}

	if name == "" {
		return assertion("product name in cart", "non-empty", name)
	}
	if qty != DetailQuantity {
		return assertion("product quantity in cart", DetailQuantity, qty)
	}
	r.logger.Info("Verified product name and quantity in cart",
		zap.String("name", name),
		zap.String("qty", qty),
	)

	if err := qtyInput.Clear(ctx); err != nil {
		return err
	}
	if err := qtyInput.Type(ctx, UpdatedQuantity); err != nil {
		return err
	}
	update, err := r.session.Find(ctx, r.sel.UpdateCart)
	if err != nil {
		return err
	}
	if err := update.Click(ctx); err != nil {
		return err
	}
	r.logger.Info("Changed product quantity and clicked 'Update Cart' button",
		zap.String("qty", UpdatedQuantity),
	)
	r.logger.Debug("Updated cart quantity is not re-verified")

	proceed, err := r.wait.Visible(ctx, r.sel.ProceedToCheckout)
	if err != nil {
		return err
	}
	if err := proceed.Click(ctx); err != nil {
		return err
	}
	r.logger.Info("Clicked 'Proceed to Checkout' button")
	return nil
}

// Checkout fills the guest shipping form, places the order and waits for
// the success page. A wait timeout saves a screenshot and the page markup
// before it is returned.
func (r *Runner) Checkout(ctx context.Context) error {
	err := r.checkout(ctx)
	if err != nil && browser.IsTimeout(err) {
		r.captureDiagnostics(ctx, "checkout", true)
		r.logger.Error("Timeout occurred during checkout", zap.Error(err), zap.Stack("stacktrace"))
	}
	return err
}

func (r *Runner) checkout(ctx context.Context) error {
	g := r.cfg.Guest

	firstName, err := r.wait.Visible(ctx, r.sel.FirstName)
	if err != nil {
		return err
	}
	if err := firstName.Type(ctx, g.FirstName); err != nil {
		return err
	}
	r.logger.Info("Entered first name")

	fields := []struct {
		label string
		loc   browser.Locator
		value string
	}{
		{"last name", r.sel.LastName, g.LastName},
		{"email", r.sel.Email, g.Email},
		{"street address", r.sel.Street, g.Street},
		{"city", r.sel.City, g.City},
		{"state", r.sel.Region, g.Region},
		{"zip code", r.sel.Postcode, g.Postcode},
		{"phone number", r.sel.Telephone, g.Telephone},
	}
	for _, f := range fields {
		el, err := r.session.Find(ctx, f.loc)
		if err != nil {
			return err
		}
		if err := el.Type(ctx, f.value); err != nil {
			return err
		}
		r.logger.Info("Entered " + f.label)
	}

	next, err := r.session.Find(ctx, r.sel.Continue)
	if err != nil {
		return err
	}
	if err := next.Click(ctx); err != nil {
		return err
	}
	r.logger.Info("Clicked 'Next' button")

	placeOrder, err := r.wait.Clickable(ctx, r.sel.PlaceOrder)
	if err != nil {
		return err
	}
	if err := placeOrder.Click(ctx); err != nil {
		return err
	}
	r.logger.Info("Clicked 'Place Order' button")

	success, err := r.wait.Visible(ctx, r.sel.Success)
	if err != nil {
		return err
	}
	shown, err := success.Visible(ctx)
	if err != nil {
		return err
	}
	if !shown {
		return assertion("order was placed successfully", "true", "false")
	}
	r.logger.Info("Order placed successfully")
	return nil
}
