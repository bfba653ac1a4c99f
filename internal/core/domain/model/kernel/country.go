package kernel

import (
	"fmt"
	"strings"

	"forwarding/internal/pkg/errs"
)

// Country is an ISO 3166-1 alpha-2 code restricted to the operating countries.
type Country string

const (
	CountryUS Country = "US"
	CountryGE Country = "GE"
)

// OperatingCountries lists every country a branch, flight or address may use.
func OperatingCountries() []Country {
	return []Country{CountryUS, CountryGE}
}

// ParseCountry normalizes a code and checks it against the operating countries.
func ParseCountry(code string) (Country, error) {
	c := Country(strings.ToUpper(strings.TrimSpace(code)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Country) Validate() error {
	for _, known := range OperatingCountries() {
		if c == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("country", fmt.Errorf("%q is not an operating country", string(c)))
}

func (c Country) String() string {
	return string(c)
}
