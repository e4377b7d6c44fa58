package models

import (
	"errors"
	"fmt"
)

// Product represents a catalog entry of the fixture storefront
type Product struct {
	SKU         string
	Name        string
	URLKey      string
	Category    string
	Description string
	ImageURL    string
	Price       int64 // in cents
}

// ErrProductNotFound is returned for unknown SKUs and URL keys
var ErrProductNotFound = errors.New("product not found")

// FormattedPrice returns the price the way the storefront prints it
func (p Product) FormattedPrice() string {
	return FormatMoney(p.Price)
}

// Path returns the product page path
func (p Product) Path() string {
	return "/" + p.URLKey + ".html"
}

// FormatMoney formats an amount in cents as dollars, e.g. $45.00
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
