package bag

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

var ErrBagIsNotConstructed = errors.New("Bag must be created via NewBag constructor")

// Content is one order packed in a bag, with the weight it was packed at.
type Content struct {
	OrderID     kernel.UUID
	WeightGrams int
}

// Bag is a sealed sack of parcels packed at a branch and loaded on a flight.
type Bag struct {
	id             kernel.UUID
	label          string
	branchID       kernel.UUID
	maxWeightGrams int
	flightID       *kernel.UUID
	contents       []Content
	createdAt      time.Time

	isConstructed bool
}

func NewBag(id kernel.UUID, label string, branchID kernel.UUID, maxWeightGrams int, now time.Time) (*Bag, error) {
	return RestoreBag(id, label, branchID, maxWeightGrams, nil, nil, now)
}

func RestoreBag(
	id kernel.UUID,
	label string,
	branchID kernel.UUID,
	maxWeightGrams int,
	flightID *kernel.UUID,
	contents []Content,
	createdAt time.Time,
) (*Bag, error) {
	b := &Bag{createdAt: createdAt.UTC(), isConstructed: true}

	if err := errors.Join(
		b.setID(id),
		b.setLabel(label),
		b.setBranchID(branchID),
		b.setContents(contents),
		b.setFlightID(flightID),
	); err != nil {
		return nil, err
	}
	if err := b.setMaxWeight(maxWeightGrams); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bag) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBagIsNotConstructed
	}
	return nil
}

func (b *Bag) IsEqual(other *Bag) bool {
	return other != nil && b.id.IsEqual(other.id)
}

func (b *Bag) ID() kernel.UUID       { return b.id }
func (b *Bag) Label() string         { return b.label }
func (b *Bag) BranchID() kernel.UUID { return b.branchID }
func (b *Bag) MaxWeightGrams() int   { return b.maxWeightGrams }
func (b *Bag) CreatedAt() time.Time  { return b.createdAt }

func (b *Bag) FlightID() *kernel.UUID {
	if b.flightID == nil {
		return nil
	}
	id := *b.flightID
	return &id
}

func (b *Bag) Contents() []Content {
	out := make([]Content, len(b.contents))
	copy(out, b.contents)
	return out
}

// OrderIDs lists the packed orders in packing order.
func (b *Bag) OrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, 0, len(b.contents))
	for _, c := range b.contents {
		out = append(out, c.OrderID)
	}
	return out
}

func (b *Bag) LoadGrams() int {
	total := 0
	for _, c := range b.contents {
		total += c.WeightGrams
	}
	return total
}

func (b *Bag) RemainingGrams() int {
	return b.maxWeightGrams - b.LoadGrams()
}

func (b *Bag) Contains(orderID kernel.UUID) bool {
	return b.indexOf(orderID) >= 0
}

// CanAdd reports whether a parcel of the given weight still fits.
func (b *Bag) CanAdd(weightGrams int) (bool, error) {
	if weightGrams < 0 {
		return false, errs.NewValueIsInvalidErrorWithCause(
			"weight is invalid",
			fmt.Errorf("%d is negative", weightGrams),
		)
	}
	return b.RemainingGrams() >= weightGrams, nil
}

// AddOrder packs an order. A bag already on a flight is sealed.
func (b *Bag) AddOrder(orderID kernel.UUID, weightGrams int) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if b.flightID != nil {
		return errs.NewConflictError("bag", b.id, "is already loaded on a flight")
	}
	if b.Contains(orderID) {
		return errs.NewConflictError("bag", b.id, fmt.Sprintf("already contains order %s", orderID))
	}

	fits, err := b.CanAdd(weightGrams)
	if err != nil {
		return err
	}
	if !fits {
		return errs.NewConflictError("bag", b.id,
			fmt.Sprintf("order of %d g exceeds remaining capacity of %d g", weightGrams, b.RemainingGrams()))
	}

	b.contents = append(b.contents, Content{OrderID: orderID, WeightGrams: weightGrams})
	return nil
}

// AssignToFlight loads the bag. A loaded bag may be moved to another flight.
func (b *Bag) AssignToFlight(flightID kernel.UUID) error {
	if err := flightID.Validate(); err != nil {
		return err
	}
	if len(b.contents) == 0 {
		return errs.NewConflictError("bag", b.id, "is empty")
	}
	b.flightID = &flightID
	return nil
}

// Relabel changes label and capacity; capacity may not drop below the load.
func (b *Bag) Relabel(label string, maxWeightGrams int) error {
	updated := *b
	if err := errors.Join(updated.setLabel(label), updated.setMaxWeight(maxWeightGrams)); err != nil {
		return err
	}
	*b = updated
	return nil
}

func (b *Bag) indexOf(orderID kernel.UUID) int {
	for i, c := range b.contents {
		if c.OrderID.IsEqual(orderID) {
			return i
		}
	}
	return -1
}

func (b *Bag) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bag) setLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errs.NewValueIsRequiredError("label")
	}
	b.label = label
	return nil
}

func (b *Bag) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branch_id", err)
	}
	b.branchID = id
	return nil
}

func (b *Bag) setMaxWeight(maxWeightGrams int) error {
	load := b.LoadGrams()
	minWeight := max(load, 1)
	if maxWeightGrams < minWeight {
		return errs.NewValueIsInvalidErrorWithCause(
			"max weight is invalid",
			fmt.Errorf("%d is less than %d", maxWeightGrams, minWeight),
		)
	}
	b.maxWeightGrams = maxWeightGrams
	return nil
}

func (b *Bag) setFlightID(id *kernel.UUID) error {
	if id == nil {
		b.flightID = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	v := *id
	b.flightID = &v
	return nil
}

func (b *Bag) setContents(contents []Content) error {
	b.contents = make([]Content, 0, len(contents))
	for _, c := range contents {
		if err := c.OrderID.Validate(); err != nil {
			return err
		}
		if c.WeightGrams < 0 {
			return errs.NewValueIsInvalidErrorWithCause("contents", fmt.Errorf("%d is negative", c.WeightGrams))
		}
		b.contents = append(b.contents, c)
	}
	return nil
}
