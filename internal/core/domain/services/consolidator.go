package services

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/pkg/errs"
)

// Consolidator merges compatible orders into combined shipments and splits
// them again. It mutates only the aggregates it is given; persisting them is
// the caller's job.
type Consolidator struct{}

func NewConsolidator() Consolidator {
	return Consolidator{}
}

// Combine checks every precondition and, if all hold, creates the shipment
// and links each member to it. Nothing is linked when any check fails.
//
// Preconditions, each reported as IncompatibleOrdersError naming the offenders:
//   - at least two distinct ids
//   - every requested id was found
//   - no order already belongs to a shipment
//   - every order is in a combinable stage
//   - all orders share destination branch and destination country
func (c Consolidator) Combine(
	shipmentID kernel.UUID,
	combinedBy kernel.UUID,
	requested []kernel.UUID,
	found []*order.Order,
	now time.Time,
) (*shipment.CombinedShipment, error) {
	ids := distinct(requested)
	if len(ids) < shipment.MinMembers {
		return nil, errs.NewIncompatibleOrdersError("at least two distinct orders are required", idStrings(ids)...)
	}

	byID := make(map[kernel.UUID]*order.Order, len(found))
	for _, o := range found {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		byID[o.ID()] = o
	}

	var missing []kernel.UUID
	members := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		o, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		members = append(members, o)
	}
	if len(missing) > 0 {
		return nil, errs.NewIncompatibleOrdersError("orders do not exist", idStrings(missing)...)
	}

	if offenders := filter(members, func(o *order.Order) bool { return o.IsCombined() }); len(offenders) > 0 {
		return nil, errs.NewIncompatibleOrdersError("orders already belong to a combined shipment", orderIDs(offenders)...)
	}
	if offenders := filter(members, func(o *order.Order) bool { return !o.Status().IsCombinable() }); len(offenders) > 0 {
		return nil, errs.NewIncompatibleOrdersError("orders are past the combinable stages", orderIDs(offenders)...)
	}
	if offenders := destinationOutliers(members); len(offenders) > 0 {
		return nil, errs.NewIncompatibleOrdersError("orders have different destinations", orderIDs(offenders)...)
	}

	s, err := shipment.NewCombinedShipment(shipmentID, combinedBy, ids, now)
	if err != nil {
		return nil, err
	}
	for _, o := range members {
		if err := o.AttachToShipment(s.ID()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Decombine unlinks every member from s. It is refused once any member has
// physically shipped.
func (c Consolidator) Decombine(s *shipment.CombinedShipment, members []*order.Order) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, o := range members {
		if o.Status().HasShipped() {
			return errs.NewConflictError("combined shipment", s.ID(),
				"member "+o.ID().String()+" is already "+o.Status().String())
		}
	}
	for _, o := range members {
		if err := o.DetachFromShipment(s.ID()); err != nil {
			return err
		}
	}
	return nil
}

type destinationKey struct {
	branchID kernel.UUID
	country  kernel.Country
}

// destinationOutliers returns the orders outside the most common
// destination. Ties keep the destination seen first.
func destinationOutliers(members []*order.Order) []*order.Order {
	counts := make(map[destinationKey]int)
	var keys []destinationKey
	for _, o := range members {
		k := destinationKey{branchID: o.DestinationBranchID(), country: o.Destination().Country()}
		if counts[k] == 0 {
			keys = append(keys, k)
		}
		counts[k]++
	}
	if len(keys) <= 1 {
		return nil
	}

	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return filter(members, func(o *order.Order) bool {
		return o.DestinationBranchID() != best.branchID || o.Destination().Country() != best.country
	})
}

func distinct(ids []kernel.UUID) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(ids))
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func filter(orders []*order.Order, keep func(*order.Order) bool) []*order.Order {
	var out []*order.Order
	for _, o := range orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

func orderIDs(orders []*order.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID().String())
	}
	return out
}

func idStrings(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
