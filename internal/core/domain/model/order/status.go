package order

import (
	"fmt"
	"strings"

	"forwarding/internal/pkg/errs"
)

// Status is the handling stage of an order.
//
// Stage graph:
//
//	Placed ──> ReceivedAtBranch ──> Bagged ──> InTransit ──> DeliveredOrReadyForPickup ──> Completed
//	  │               │
//	  └───────────────┴──> Cancelled
//
// Completed and Cancelled are terminal. Every edge moves forward, so no
// stage is ever revisited.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Placed
	ReceivedAtBranch
	Bagged
	InTransit
	DeliveredOrReadyForPickup
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                   "unknown",
		Placed:                    "placed",
		ReceivedAtBranch:          "received_at_branch",
		Bagged:                    "bagged",
		InTransit:                 "in_transit",
		DeliveredOrReadyForPickup: "delivered_or_ready_for_pickup",
		Completed:                 "completed",
		Cancelled:                 "cancelled",
	}
}

// getTransitions returns the direct successors of every non-terminal stage.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal stages have no successors
	return map[Status][]Status{
		Placed:                    {ReceivedAtBranch, Cancelled},
		ReceivedAtBranch:          {Bagged, Cancelled},
		Bagged:                    {InTransit},
		InTransit:                 {DeliveredOrReadyForPickup},
		DeliveredOrReadyForPickup: {Completed},
	}
}

// Statuses returns every valid status in stage order, Cancelled last.
func Statuses() []Status {
	return []Status{Placed, ReceivedAtBranch, Bagged, InTransit, DeliveredOrReadyForPickup, Completed, Cancelled}
}

// ParseStatus maps a wire name such as "in_transit" onto a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for st, str := range getStatusStrings() {
		if st != Unknown && str == name {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. ones read from storage.
func (s Status) Validate() error {
	if s < Placed || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Successors returns the stages directly reachable from s.
func (s Status) Successors() []Status {
	next := getTransitions()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether target is a direct successor of s.
// A self-transition is never an edge of the graph.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the edge s -> target exists.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}

func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsCombinable reports whether an order in this stage may still join a
// combined shipment, i.e. it has not left for the airport yet.
func (s Status) IsCombinable() bool {
	return s == Placed || s == ReceivedAtBranch || s == Bagged
}

// HasShipped reports whether the parcel has physically left, i.e. it is in
// transit or later and not cancelled.
func (s Status) HasShipped() bool {
	return s >= InTransit && s <= Completed
}

// IsHandedOver reports whether the parcel reached the customer side of the
// process, which is what fulfillment reports count.
func (s Status) IsHandedOver() bool {
	return s == DeliveredOrReadyForPickup || s == Completed
}

// Before reports whether s comes earlier than other along the main line.
// Cancelled is not part of the main line and is never before anything.
func (s Status) Before(other Status) bool {
	if s == Cancelled || other == Cancelled {
		return false
	}
	return s < other
}
