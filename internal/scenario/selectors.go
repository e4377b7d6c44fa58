package scenario

import (
	"fmt"

	"github.com/adyen/storefront/internal/browser"
)

// Selectors are the page hooks the scenario touches. They follow the Luma
// theme markup.
type Selectors struct {
	MenuTrigger browser.Locator
	SubmenuLink browser.Locator

	ListingItem browser.Locator
	ItemLink    browser.Locator
	ItemPrice   browser.Locator

	DetailMedia browser.Locator
	Quantity    browser.Locator
	AddToCart   browser.Locator
	CartCounter browser.Locator

	CartIcon          browser.Locator
	ViewCart          browser.Locator
	CartItemName      browser.Locator
	CartItemQuantity  browser.Locator
	UpdateCart        browser.Locator
	ProceedToCheckout browser.Locator

	FirstName  browser.Locator
	LastName   browser.Locator
	Email      browser.Locator
	Street     browser.Locator
	City       browser.Locator
	Region     browser.Locator
	Postcode   browser.Locator
	Telephone  browser.Locator
	Continue   browser.Locator
	PlaceOrder browser.Locator
	Success    browser.Locator
}

// Positional ids the Luma menu renders for Gear and Gear > Bags. Only used
// as a fallback behind the text match.
const (
	gearMenuID = "ui-id-6"
	bagsMenuID = "ui-id-25"

	defaultMenuLabel    = "Gear"
	defaultSubmenuLabel = "Bags"
)

// DefaultSelectors returns the Luma selectors with the menu keyed off the
// given labels. The submenu link is scoped to the menu's own list item. The
// positional menu ids are kept as fallbacks only for the default Gear > Bags
// labels.
func DefaultSelectors(menuLabel, submenuLabel string) (Selectors, error) {
	if menuLabel == "" {
		menuLabel = defaultMenuLabel
	}
	if submenuLabel == "" {
		submenuLabel = defaultSubmenuLabel
	}
	defaults := menuLabel == defaultMenuLabel && submenuLabel == defaultSubmenuLabel

	menu, err := withFallback(browser.LinkText("//nav", menuLabel), gearMenuID, menuLabel == defaultMenuLabel)
	if err != nil {
		return Selectors{}, fmt.Errorf("menu trigger: %w", err)
	}
	submenu, err := withFallback(browser.SubmenuLinkText("//nav", menuLabel, submenuLabel), bagsMenuID, defaults)
	if err != nil {
		return Selectors{}, fmt.Errorf("submenu link: %w", err)
	}

	return Selectors{
		MenuTrigger: menu,
		SubmenuLink: submenu,

		ListingItem: browser.ByXPath("//li[@class='item product product-item']"),
		ItemLink:    browser.ByCSS(".product-item-link"),
		ItemPrice:   browser.ByCSS(".price"),

		DetailMedia: browser.ByCSS(".product.media"),
		Quantity:    browser.ByID("qty"),
		AddToCart:   browser.ByID("product-addtocart-button"),
		CartCounter: browser.ByCSS(".counter.qty"),

		CartIcon:          browser.ByCSS(".showcart"),
		ViewCart:          browser.ByXPath("//a[@class='action viewcart']"),
		CartItemName:      browser.ByCSS(".product-item-name a"),
		CartItemQuantity:  browser.ByCSS(".cart-item-qty input"),
		UpdateCart:        browser.ByName("update_cart_action"),
		ProceedToCheckout: browser.ByXPath("//button[@data-role='proceed-to-checkout']"),

		FirstName:  browser.ByName("firstname"),
		LastName:   browser.ByName("lastname"),
		Email:      browser.ByName("email"),
		Street:     browser.ByName("street[0]"),
		City:       browser.ByName("city"),
		Region:     browser.ByName("region_id"),
		Postcode:   browser.ByName("postcode"),
		Telephone:  browser.ByName("telephone"),
		Continue:   browser.ByXPath("//button[@class='button action continue primary']"),
		PlaceOrder: browser.ByXPath("//button[@class='action primary checkout']"),
		Success:    browser.ByCSS(".checkout-success"),
	}, nil
}

func withFallback(byText browser.Locator, fallbackID string, useFallback bool) (browser.Locator, error) {
	if !useFallback {
		return byText, nil
	}
	return browser.AnyOf(byText, browser.ByID(fallbackID))
}
