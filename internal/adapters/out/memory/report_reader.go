package memory

import (
	"context"
	"sort"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/model/report"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

var _ ports.ReportReader = &ReportReader{}

// ReportReader answers reports from committed state only.
type ReportReader struct {
	store *Store
}

func NewReportReader(store *Store) *ReportReader {
	return &ReportReader{store: store}
}

func (r *ReportReader) committed(ctx context.Context) (*state, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStoreUnavailableError(err)
	}
	return r.store.snapshot(), nil
}

func (r *ReportReader) CountOrdersCreated(ctx context.Context, w report.Window) (int64, error) {
	st, err := r.committed(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, o := range st.orders {
		if w.Contains(o.CreatedAt()) {
			n++
		}
	}
	return n, nil
}

func (r *ReportReader) CountShipmentsCreated(ctx context.Context, w report.Window) (int64, error) {
	st, err := r.committed(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, s := range st.shipments {
		if w.Contains(s.CreatedAt()) {
			n++
		}
	}
	return n, nil
}

func (r *ReportReader) CountOrdersByStatus(ctx context.Context, w report.Window) (map[order.Status]int64, error) {
	st, err := r.committed(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[order.Status]int64)
	for _, o := range st.orders {
		if w.Contains(o.CreatedAt()) {
			out[o.Status()]++
		}
	}
	return out, nil
}

func (r *ReportReader) FlightLegs(ctx context.Context, days kernel.DateRange) ([]report.FlightLeg, error) {
	st, err := r.committed(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]report.FlightLeg, 0)
	for _, f := range st.flights {
		if !days.ContainsDay(f.DepartureDate()) {
			continue
		}
		leg := report.FlightLeg{
			FlightID:           f.ID(),
			Number:             f.Number(),
			DepartureDate:      f.DepartureDate(),
			OriginCountry:      f.OriginCountry(),
			DestinationCountry: f.DestinationCountry(),
			AirWaybills:        f.AirWaybills(),
		}
		for _, b := range st.bags {
			if id := b.FlightID(); id != nil && *id == f.ID() {
				leg.Bags = append(leg.Bags, report.BagLoad{
					BagID:       b.ID(),
					Label:       b.Label(),
					OrderCount:  len(b.Contents()),
					WeightGrams: b.LoadGrams(),
				})
			}
		}
		sort.Slice(leg.Bags, func(i, j int) bool { return leg.Bags[i].Label < leg.Bags[j].Label })
		out = append(out, leg)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DepartureDate.IsEqual(out[j].DepartureDate) {
			return out[i].DepartureDate.Before(out[j].DepartureDate)
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

func (r *ReportReader) BagsCreated(ctx context.Context, w report.Window) ([]report.BagRow, error) {
	st, err := r.committed(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]report.BagRow, 0)
	for _, b := range st.bags {
		if !w.Contains(b.CreatedAt()) {
			continue
		}
		out = append(out, report.BagRow{
			BagID:       b.ID(),
			Label:       b.Label(),
			BranchID:    b.BranchID(),
			BranchTitle: branchTitle(st, b.BranchID()),
			FlightID:    b.FlightID(),
			OrderCount:  len(b.Contents()),
			WeightGrams: b.LoadGrams(),
			CreatedAt:   b.CreatedAt(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// HandedOverOrders filters on when each order reached the customer side.
func (r *ReportReader) HandedOverOrders(
	ctx context.Context,
	w report.Window,
	f order.Fulfillment,
) ([]report.HandedOverOrder, error) {
	st, err := r.committed(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]report.HandedOverOrder, 0)
	for _, o := range st.orders {
		at := o.HandedOverAt()
		if o.Fulfillment() != f || !o.Status().IsHandedOver() || at == nil || !w.Contains(*at) {
			continue
		}
		out = append(out, report.HandedOverOrder{
			OrderID:     o.ID(),
			OwnerID:     o.OwnerID(),
			BranchID:    o.DestinationBranchID(),
			BranchTitle: branchTitle(st, o.DestinationBranchID()),
			Status:      o.Status().String(),
			ReachedAt:   *at,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReachedAt.Before(out[j].ReachedAt) })
	return out, nil
}

func (r *ReportReader) ShelfPlacements(ctx context.Context, w report.Window) ([]report.ShelfRow, error) {
	st, err := r.committed(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]report.ShelfRow, 0)
	for _, p := range st.placements {
		if !w.Contains(p.PlacedAt()) {
			continue
		}
		out = append(out, report.ShelfRow{
			PlacementID: p.ID(),
			OrderID:     p.OrderID(),
			BranchID:    p.BranchID(),
			BranchTitle: branchTitle(st, p.BranchID()),
			ShelfCode:   p.ShelfCode(),
			PlacedAt:    p.PlacedAt(),
			PlacedBy:    p.PlacedBy(),
		})
	}
	return out, nil
}

func (r *ReportReader) UserBlocks(ctx context.Context, w report.Window) ([]report.BlockRow, error) {
	st, err := r.committed(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]report.BlockRow, 0)
	for _, b := range st.blocks {
		if !w.Contains(b.BlockedAt()) {
			continue
		}
		out = append(out, report.BlockRow{
			BlockID:   b.ID(),
			UserID:    b.UserID(),
			BlockedBy: b.BlockedBy(),
			Reason:    b.Reason(),
			BlockedAt: b.BlockedAt(),
		})
	}
	return out, nil
}

// branchTitle is empty for a branch deleted under the unrestricted policy.
func branchTitle(st *state, id kernel.UUID) string {
	if b, ok := st.branches[id]; ok {
		return b.Title()
	}
	return ""
}
