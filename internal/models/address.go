package models

import (
	"errors"
	"fmt"
	"strings"
)

// ShippingAddress is the guest address entered on the shipping step
type ShippingAddress struct {
	FirstName string
	LastName  string
	Email     string
	Street    string
	City      string
	Region    string
	Postcode  string
	Telephone string
}

// Address errors
var (
	ErrMissingAddressField = errors.New("required address field is empty")
	ErrInvalidEmail        = errors.New("email address is invalid")
	ErrUnknownRegion       = errors.New("state/province is not recognised")
)

// Regions are the states accepted in the region field
var Regions = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
	"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana", "Maine",
	"Maryland", "Massachusetts", "Michigan", "Minnesota", "Mississippi",
	"Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey",
	"New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
	"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina",
	"South Dakota", "Tennessee", "Texas", "Utah", "Vermont", "Virginia",
	"Washington", "West Virginia", "Wisconsin", "Wyoming",
}

// Validate checks every field is filled in, in form order
func (a ShippingAddress) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"firstname", a.FirstName},
		{"lastname", a.LastName},
		{"email", a.Email},
		{"street", a.Street},
		{"city", a.City},
		{"region", a.Region},
		{"postcode", a.Postcode},
		{"telephone", a.Telephone},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingAddressField, f.name)
		}
	}

	at := strings.Index(a.Email, "@")
	if at < 1 || at == len(a.Email)-1 {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, a.Email)
	}
	if !isRegion(a.Region) {
		return fmt.Errorf("%w: %q", ErrUnknownRegion, a.Region)
	}
	return nil
}

// FullName joins first and last name
func (a ShippingAddress) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

func isRegion(name string) bool {
	for _, r := range Regions {
		if strings.EqualFold(r, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
