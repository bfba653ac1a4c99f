package kernel

import (
	"errors"
	"strings"

	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is an immutable postal address snapshot. Orders copy addresses at
// creation time, so later address-book edits never reach a placed order.
type Address struct {
	country    Country
	city       string
	line       string
	postalCode string
	recipient  string

	guard guard.ConstructorGuard
}

// NewAddress validates and builds an address. Country, city, line and
// recipient are required; the postal code is optional.
func NewAddress(country Country, city, line, postalCode, recipient string) (Address, error) {
	a := Address{
		country:    country,
		city:       strings.TrimSpace(city),
		line:       strings.TrimSpace(line),
		postalCode: strings.TrimSpace(postalCode),
		recipient:  strings.TrimSpace(recipient),
		guard:      guard.NewConstructorGuard(),
	}

	var required []error
	if a.city == "" {
		required = append(required, errs.NewValueIsRequiredError("address.city"))
	}
	if a.line == "" {
		required = append(required, errs.NewValueIsRequiredError("address.line"))
	}
	if a.recipient == "" {
		required = append(required, errs.NewValueIsRequiredError("address.recipient"))
	}
	if err := errors.Join(append([]error{country.Validate()}, required...)...); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Country() Country {
	return a.country
}

func (a Address) City() string {
	return a.city
}

func (a Address) Line() string {
	return a.line
}

func (a Address) PostalCode() string {
	return a.postalCode
}

func (a Address) Recipient() string {
	return a.recipient
}

// IsEqual compares addresses field by field.
func (a Address) IsEqual(other Address) bool {
	return a.country == other.country &&
		a.city == other.city &&
		a.line == other.line &&
		a.postalCode == other.postalCode &&
		a.recipient == other.recipient
}
