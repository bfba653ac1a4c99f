package order

import (
	"errors"
	"fmt"
	"strings"

	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Dimensions are the outer box measurements in centimeters.
type Dimensions struct {
	LengthCm int
	WidthCm  int
	HeightCm int
}

func (d Dimensions) validate() error {
	if d.LengthCm < 0 || d.WidthCm < 0 || d.HeightCm < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"item.dimensions",
			fmt.Errorf("%dx%dx%d has a negative side", d.LengthCm, d.WidthCm, d.HeightCm),
		)
	}
	return nil
}

// Item is one declared line of an order.
type Item struct {
	description string
	quantity    int
	weightGrams int
	dimensions  Dimensions

	guard guard.ConstructorGuard
}

func NewItem(description string, quantity, weightGrams int, dimensions Dimensions) (Item, error) {
	description = strings.TrimSpace(description)

	var problems []error
	if description == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item.description"))
	}
	if quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"item.quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if weightGrams < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"item.weight_grams", fmt.Errorf("%d is negative", weightGrams)))
	}
	problems = append(problems, dimensions.validate())

	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return Item{
		description: description,
		quantity:    quantity,
		weightGrams: weightGrams,
		dimensions:  dimensions,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) Description() string    { return i.description }
func (i Item) Quantity() int          { return i.quantity }
func (i Item) WeightGrams() int       { return i.weightGrams }
func (i Item) Dimensions() Dimensions { return i.dimensions }

// TotalWeightGrams is the weight of the whole line.
func (i Item) TotalWeightGrams() int {
	return i.quantity * i.weightGrams
}
