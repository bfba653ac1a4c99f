package order

import (
	"fmt"
	"strings"

	"forwarding/internal/pkg/errs"
)

// Fulfillment is how the customer receives the parcel at the destination.
type Fulfillment string

const (
	Delivery     Fulfillment = "delivery"
	WalkInPickup Fulfillment = "walk_in_pickup"
	SelfService  Fulfillment = "self_service"
)

func Fulfillments() []Fulfillment {
	return []Fulfillment{Delivery, WalkInPickup, SelfService}
}

func ParseFulfillment(s string) (Fulfillment, error) {
	f := Fulfillment(strings.ToLower(strings.TrimSpace(s)))
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

func (f Fulfillment) Validate() error {
	for _, known := range Fulfillments() {
		if f == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("fulfillment", fmt.Errorf("%q is not a valid fulfillment", string(f)))
}

func (f Fulfillment) String() string {
	return string(f)
}
