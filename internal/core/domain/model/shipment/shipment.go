package shipment

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"
)

// MinMembers is the smallest member set that makes a combination.
const MinMembers = 2

var ErrShipmentIsNotConstructed = errors.New("CombinedShipment must be created via NewCombinedShipment constructor")

// CombinedShipment groups orders that are handled as one physical box.
// Membership is stored on the member orders; the shipment only keeps the
// ids it was created with or restored from. Its status is never stored.
type CombinedShipment struct {
	id        kernel.UUID
	createdAt time.Time
	createdBy kernel.UUID
	memberIDs []kernel.UUID

	isConstructed bool
}

func NewCombinedShipment(id, createdBy kernel.UUID, memberIDs []kernel.UUID, now time.Time) (*CombinedShipment, error) {
	return RestoreCombinedShipment(id, createdBy, memberIDs, now)
}

func RestoreCombinedShipment(id, createdBy kernel.UUID, memberIDs []kernel.UUID, createdAt time.Time) (*CombinedShipment, error) {
	s := &CombinedShipment{createdAt: createdAt.UTC(), isConstructed: true}

	if err := errors.Join(
		s.setID(id),
		s.setCreatedBy(createdBy),
		s.setMemberIDs(memberIDs),
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CombinedShipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *CombinedShipment) IsEqual(other *CombinedShipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *CombinedShipment) ID() kernel.UUID        { return s.id }
func (s *CombinedShipment) CreatedAt() time.Time   { return s.createdAt }
func (s *CombinedShipment) CreatedBy() kernel.UUID { return s.createdBy }

// MemberIDs returns the member ids in ascending order.
func (s *CombinedShipment) MemberIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(s.memberIDs))
	copy(out, s.memberIDs)
	return out
}

func (s *CombinedShipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *CombinedShipment) setCreatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("created_by", err)
	}
	s.createdBy = id
	return nil
}

func (s *CombinedShipment) setMemberIDs(ids []kernel.UUID) error {
	unique := make(map[kernel.UUID]struct{}, len(ids))
	members := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("member_ids", err)
		}
		if _, dup := unique[id]; dup {
			continue
		}
		unique[id] = struct{}{}
		members = append(members, id)
	}
	if len(members) < MinMembers {
		return errs.NewValueIsInvalidErrorWithCause(
			"member_ids",
			fmt.Errorf("%d distinct orders given, at least %d required", len(members), MinMembers),
		)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Less(members[j]) })
	s.memberIDs = members
	return nil
}

// DerivedStatus is the earliest stage among members that are not cancelled.
// A shipment whose members are all cancelled is cancelled.
func DerivedStatus(members []*order.Order) order.Status {
	derived := order.Unknown
	for _, m := range members {
		st := m.Status()
		if st == order.Cancelled {
			continue
		}
		if derived == order.Unknown || st.Before(derived) {
			derived = st
		}
	}
	if derived == order.Unknown && len(members) > 0 {
		return order.Cancelled
	}
	return derived
}

// View is a shipment with its members resolved, as shown to staff.
type View struct {
	Shipment *CombinedShipment
	Members  []*order.Order
	Status   order.Status
}

// NewView resolves the derived status on every call, never from a cache.
func NewView(s *CombinedShipment, members []*order.Order) View {
	return View{Shipment: s, Members: members, Status: DerivedStatus(members)}
}

// DestinationBranchID is the branch shared by every member.
func (v View) DestinationBranchID() *kernel.UUID {
	if len(v.Members) == 0 {
		return nil
	}
	id := v.Members[0].DestinationBranchID()
	return &id
}

// TotalWeightGrams sums the weight of every member.
func (v View) TotalWeightGrams() int {
	total := 0
	for _, m := range v.Members {
		total += m.TotalWeightGrams()
	}
	return total
}
