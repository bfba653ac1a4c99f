package order

import (
	"errors"
	"fmt"
	"time"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root of a customer's request to forward goods.
//
// Order follows these invariants:
//   - status only moves forward along the stage graph, except cancellation
//     from the two earliest stages
//   - terminal orders are never mutated
//   - the order belongs to at most one combined shipment at a time
//   - items, destination and fulfillment can only be revised while placed
//   - addresses are snapshots taken at creation
type Order struct {
	id                  kernel.UUID
	ownerID             kernel.UUID
	status              Status
	origin              kernel.Address
	destination         kernel.Address
	destinationBranchID kernel.UUID
	fulfillment         Fulfillment
	items               []Item

	// combinedShipmentID is nil while the order ships standalone.
	combinedShipmentID *kernel.UUID

	createdAt       time.Time
	statusChangedAt time.Time

	// handedOverAt is when the order reached delivered_or_ready_for_pickup.
	// Later moves to completed leave it untouched.
	handedOverAt *time.Time

	// version is the optimistic concurrency counter as last read from the store.
	version int64

	isConstructed bool
}

// NewOrder creates a placed order.
//
// Returns a validation error when items are empty, an item or address was not
// built through its constructor, or the fulfillment is unknown.
func NewOrder(
	id kernel.UUID,
	ownerID kernel.UUID,
	origin kernel.Address,
	destination kernel.Address,
	destinationBranchID kernel.UUID,
	fulfillment Fulfillment,
	items []Item,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:          Placed,
		createdAt:       now.UTC(),
		statusChangedAt: now.UTC(),
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwnerID(ownerID),
		o.setOrigin(origin),
		o.setDestination(destination),
		o.setDestinationBranchID(destinationBranchID),
		o.setFulfillment(fulfillment),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage. It re-checks every field so a
// corrupted row never becomes a live aggregate.
func RestoreOrder(
	id kernel.UUID,
	ownerID kernel.UUID,
	status Status,
	origin kernel.Address,
	destination kernel.Address,
	destinationBranchID kernel.UUID,
	fulfillment Fulfillment,
	items []Item,
	combinedShipmentID *kernel.UUID,
	createdAt time.Time,
	statusChangedAt time.Time,
	handedOverAt *time.Time,
	version int64,
) (*Order, error) {
	o := &Order{
		createdAt:       createdAt.UTC(),
		statusChangedAt: statusChangedAt.UTC(),
		version:         version,
		isConstructed:   true,
	}
	if handedOverAt != nil {
		at := handedOverAt.UTC()
		o.handedOverAt = &at
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwnerID(ownerID),
		o.setStatus(status),
		o.setOrigin(origin),
		o.setDestination(destination),
		o.setDestinationBranchID(destinationBranchID),
		o.setFulfillment(fulfillment),
		o.setItems(items),
		o.setCombinedShipmentID(combinedShipmentID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                  { return o.id }
func (o *Order) OwnerID() kernel.UUID             { return o.ownerID }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) Origin() kernel.Address           { return o.origin }
func (o *Order) Destination() kernel.Address      { return o.destination }
func (o *Order) DestinationBranchID() kernel.UUID { return o.destinationBranchID }
func (o *Order) Fulfillment() Fulfillment         { return o.fulfillment }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) StatusChangedAt() time.Time       { return o.statusChangedAt }
func (o *Order) Version() int64                   { return o.version }

// HandedOverAt returns when the order reached the customer side, or nil
// while it has not.
func (o *Order) HandedOverAt() *time.Time {
	if o.handedOverAt == nil {
		return nil
	}
	at := *o.handedOverAt
	return &at
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// CombinedShipmentID returns the shipment the order belongs to, or nil.
func (o *Order) CombinedShipmentID() *kernel.UUID {
	if o.combinedShipmentID == nil {
		return nil
	}
	id := *o.combinedShipmentID
	return &id
}

func (o *Order) IsCombined() bool {
	return o.combinedShipmentID != nil
}

// TotalWeightGrams sums the weight of every line.
func (o *Order) TotalWeightGrams() int {
	total := 0
	for _, item := range o.items {
		total += item.TotalWeightGrams()
	}
	return total
}

// Revise replaces the editable parts of a placed order. Nil arguments keep
// the current value.
//
// Returns ConflictError once the order left the placed stage.
func (o *Order) Revise(items []Item, destination *kernel.Address, fulfillment *Fulfillment) error {
	if o.status != Placed {
		return errs.NewConflictError("order", o.id, fmt.Sprintf("cannot be edited in status %s", o.status))
	}

	revised := *o
	var problems []error
	if items != nil {
		problems = append(problems, revised.setItems(items))
	}
	if destination != nil {
		problems = append(problems, revised.setDestination(*destination))
	}
	if fulfillment != nil {
		problems = append(problems, revised.setFulfillment(*fulfillment))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	*o = revised
	return nil
}

// TransitionTo moves the order one edge along the stage graph and returns
// the status it left.
func (o *Order) TransitionTo(target Status, now time.Time) (Status, error) {
	from := o.status
	next, err := from.TransitionTo(target)
	if err != nil {
		return from, err
	}

	o.status = next
	o.statusChangedAt = now.UTC()
	if next == DeliveredOrReadyForPickup {
		at := o.statusChangedAt
		o.handedOverAt = &at
	}
	return from, nil
}

// TransitionAction returns the capability an actor needs to move the order
// to target. Owners may cancel their own orders while still placed; every
// other move is administrative.
func (o *Order) TransitionAction(actor access.Actor, target Status) access.Action {
	if target != Cancelled {
		return access.AdvanceOrder
	}
	if o.status == Placed && actor.Owns(o.ownerID) {
		return access.CancelOwnOrder
	}
	return access.CancelAnyOrder
}

// VisibleTo reports whether actor may read the order. Users only see their own.
func (o *Order) VisibleTo(actor access.Actor) bool {
	return actor.IsStaff() || actor.Owns(o.ownerID)
}

// AttachToShipment links the order to a combined shipment.
func (o *Order) AttachToShipment(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	if o.combinedShipmentID != nil {
		return errs.NewConflictError("order", o.id, "already belongs to a combined shipment")
	}
	if !o.status.IsCombinable() {
		return errs.NewConflictError("order", o.id, fmt.Sprintf("cannot be combined in status %s", o.status))
	}
	o.combinedShipmentID = &shipmentID
	return nil
}

// DetachFromShipment clears the link to shipmentID.
func (o *Order) DetachFromShipment(shipmentID kernel.UUID) error {
	if o.combinedShipmentID == nil || !o.combinedShipmentID.IsEqual(shipmentID) {
		return errs.NewConflictError("order", o.id, fmt.Sprintf("is not a member of shipment %s", shipmentID))
	}
	o.combinedShipmentID = nil
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner_id", err)
	}
	o.ownerID = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setOrigin(a kernel.Address) error {
	if err := a.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("origin", err)
	}
	o.origin = a
	return nil
}

func (o *Order) setDestination(a kernel.Address) error {
	if err := a.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("destination", err)
	}
	o.destination = a
	return nil
}

func (o *Order) setDestinationBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("destination_branch_id", err)
	}
	o.destinationBranchID = id
	return nil
}

func (o *Order) setFulfillment(f Fulfillment) error {
	if err := f.Validate(); err != nil {
		return err
	}
	o.fulfillment = f
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	var problems []error
	for i, item := range items {
		if err := item.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setCombinedShipmentID(id *kernel.UUID) error {
	if id == nil {
		o.combinedShipmentID = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	v := *id
	o.combinedShipmentID = &v
	return nil
}
