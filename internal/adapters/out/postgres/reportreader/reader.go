// Package reportreader answers report queries with read-only SQL against the
// tables written by the repositories. It never opens a write transaction.
package reportreader

import (
	"context"
	"time"

	"forwarding/internal/adapters/out/postgres/flightrepo"
	"forwarding/internal/adapters/out/postgres/pgerrs"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/model/report"
	"forwarding/internal/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var _ ports.ReportReader = &GormReportReader{}

type GormReportReader struct {
	db *gorm.DB
}

func NewGormReportReader(db *gorm.DB) *GormReportReader {
	return &GormReportReader{db: db}
}

func (r *GormReportReader) CountOrdersCreated(ctx context.Context, w report.Window) (int64, error) {
	return r.count(ctx, "orders", "created_at", w)
}

func (r *GormReportReader) CountShipmentsCreated(ctx context.Context, w report.Window) (int64, error) {
	return r.count(ctx, "combined_shipments", "created_at", w)
}

func (r *GormReportReader) CountOrdersByStatus(ctx context.Context, w report.Window) (map[order.Status]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS n
		FROM orders
		WHERE created_at >= ? AND created_at < ?
		GROUP BY status`, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, pgerrs.Map("report", "orders by status", err)
	}

	out := make(map[order.Status]int64, len(rows))
	for _, row := range rows {
		status, parseErr := order.ParseStatus(row.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		out[status] = row.N
	}
	return out, nil
}

type flightLegRow struct {
	ID                 uuid.UUID
	Number             string
	DepartureDate      time.Time
	OriginCountry      string
	DestinationCountry string
	AirWaybills        pq.StringArray `gorm:"type:text[]"`
	BagID              *uuid.UUID
	Label              *string
	OrderCount         int
	WeightGrams        int
}

// FlightLegs returns one row per flight and bag, folded into legs in
// departure order. A flight without bags still yields a leg.
func (r *GormReportReader) FlightLegs(ctx context.Context, days kernel.DateRange) ([]report.FlightLeg, error) {
	var rows []flightLegRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT f.id, f.number, f.departure_date, f.origin_country, f.destination_country, f.air_waybills,
		       b.id AS bag_id, b.label,
		       COUNT(bo.order_id) AS order_count,
		       COALESCE(SUM(bo.weight_grams), 0) AS weight_grams
		FROM flights f
		LEFT JOIN bags b ON b.flight_id = f.id
		LEFT JOIN bag_orders bo ON bo.bag_id = b.id
		WHERE f.departure_date BETWEEN ?::date AND ?::date
		GROUP BY f.id, b.id
		ORDER BY f.departure_date, f.number, b.label`,
		days.From().String(), days.To().String()).Scan(&rows).Error
	if err != nil {
		return nil, pgerrs.Map("report", "flight legs", err)
	}

	out := make([]report.FlightLeg, 0)
	index := make(map[uuid.UUID]int)
	for _, row := range rows {
		i, seen := index[row.ID]
		if !seen {
			flightID, idErr := kernel.UUIDFromBytes(row.ID[:])
			if idErr != nil {
				return nil, idErr
			}
			out = append(out, report.FlightLeg{
				FlightID:           flightID,
				Number:             row.Number,
				DepartureDate:      flightrepo.DayOfDate(row.DepartureDate),
				OriginCountry:      kernel.Country(row.OriginCountry),
				DestinationCountry: kernel.Country(row.DestinationCountry),
				AirWaybills:        []string(row.AirWaybills),
			})
			i = len(out) - 1
			index[row.ID] = i
		}
		if row.BagID == nil {
			continue
		}

		bagID, idErr := kernel.UUIDFromBytes(row.BagID[:])
		if idErr != nil {
			return nil, idErr
		}
		load := report.BagLoad{BagID: bagID, OrderCount: row.OrderCount, WeightGrams: row.WeightGrams}
		if row.Label != nil {
			load.Label = *row.Label
		}
		out[i].Bags = append(out[i].Bags, load)
	}
	return out, nil
}

type bagRow struct {
	ID          uuid.UUID
	Label       string
	BranchID    uuid.UUID
	BranchTitle *string
	FlightID    *uuid.UUID
	OrderCount  int
	WeightGrams int
	CreatedAt   time.Time
}

func (r *GormReportReader) BagsCreated(ctx context.Context, w report.Window) ([]report.BagRow, error) {
	var rows []bagRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT b.id, b.label, b.branch_id, br.title AS branch_title, b.flight_id, b.created_at,
		       COUNT(bo.order_id) AS order_count,
		       COALESCE(SUM(bo.weight_grams), 0) AS weight_grams
		FROM bags b
		LEFT JOIN branches br ON br.id = b.branch_id
		LEFT JOIN bag_orders bo ON bo.bag_id = b.id
		WHERE b.created_at >= ? AND b.created_at < ?
		GROUP BY b.id, br.title
		ORDER BY b.created_at, b.id`, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, pgerrs.Map("report", "bags", err)
	}

	out := make([]report.BagRow, 0, len(rows))
	for _, row := range rows {
		ids, idErr := toIDs(row.ID, row.BranchID)
		if idErr != nil {
			return nil, idErr
		}
		flightID, idErr := toOptionalID(row.FlightID)
		if idErr != nil {
			return nil, idErr
		}
		out = append(out, report.BagRow{
			BagID:       ids[0],
			Label:       row.Label,
			BranchID:    ids[1],
			BranchTitle: deref(row.BranchTitle),
			FlightID:    flightID,
			OrderCount:  row.OrderCount,
			WeightGrams: row.WeightGrams,
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

type handedOverRow struct {
	ID                  uuid.UUID
	OwnerID             uuid.UUID
	DestinationBranchID uuid.UUID
	BranchTitle         *string
	Status              string
	HandedOverAt        time.Time
}

// HandedOverOrders filters on when each order reached the customer side.
func (r *GormReportReader) HandedOverOrders(
	ctx context.Context,
	w report.Window,
	f order.Fulfillment,
) ([]report.HandedOverOrder, error) {
	var rows []handedOverRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT o.id, o.owner_id, o.destination_branch_id, br.title AS branch_title, o.status, o.handed_over_at
		FROM orders o
		LEFT JOIN branches br ON br.id = o.destination_branch_id
		WHERE o.fulfillment = ?
		  AND o.status IN ?
		  AND o.handed_over_at >= ? AND o.handed_over_at < ?
		ORDER BY o.handed_over_at, o.id`,
		f.String(),
		[]string{order.DeliveredOrReadyForPickup.String(), order.Completed.String()},
		w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, pgerrs.Map("report", "handed over orders", err)
	}

	out := make([]report.HandedOverOrder, 0, len(rows))
	for _, row := range rows {
		ids, idErr := toIDs(row.ID, row.OwnerID, row.DestinationBranchID)
		if idErr != nil {
			return nil, idErr
		}
		out = append(out, report.HandedOverOrder{
			OrderID:     ids[0],
			OwnerID:     ids[1],
			BranchID:    ids[2],
			BranchTitle: deref(row.BranchTitle),
			Status:      row.Status,
			ReachedAt:   row.HandedOverAt.UTC(),
		})
	}
	return out, nil
}

type shelfRow struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	BranchID    uuid.UUID
	BranchTitle *string
	ShelfCode   string
	PlacedAt    time.Time
	PlacedBy    uuid.UUID
}

func (r *GormReportReader) ShelfPlacements(ctx context.Context, w report.Window) ([]report.ShelfRow, error) {
	var rows []shelfRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.order_id, p.branch_id, br.title AS branch_title, p.shelf_code, p.placed_at, p.placed_by
		FROM shelf_placements p
		LEFT JOIN branches br ON br.id = p.branch_id
		WHERE p.placed_at >= ? AND p.placed_at < ?
		ORDER BY p.placed_at, p.id`, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, pgerrs.Map("report", "shelf placements", err)
	}

	out := make([]report.ShelfRow, 0, len(rows))
	for _, row := range rows {
		ids, idErr := toIDs(row.ID, row.OrderID, row.BranchID, row.PlacedBy)
		if idErr != nil {
			return nil, idErr
		}
		out = append(out, report.ShelfRow{
			PlacementID: ids[0],
			OrderID:     ids[1],
			BranchID:    ids[2],
			BranchTitle: deref(row.BranchTitle),
			ShelfCode:   row.ShelfCode,
			PlacedAt:    row.PlacedAt.UTC(),
			PlacedBy:    ids[3],
		})
	}
	return out, nil
}

type blockRow struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	BlockedBy uuid.UUID
	Reason    string
	BlockedAt time.Time
}

func (r *GormReportReader) UserBlocks(ctx context.Context, w report.Window) ([]report.BlockRow, error) {
	var rows []blockRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, user_id, blocked_by, reason, blocked_at
		FROM user_blocks
		WHERE blocked_at >= ? AND blocked_at < ?
		ORDER BY blocked_at, id`, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, pgerrs.Map("report", "user blocks", err)
	}

	out := make([]report.BlockRow, 0, len(rows))
	for _, row := range rows {
		ids, idErr := toIDs(row.ID, row.UserID, row.BlockedBy)
		if idErr != nil {
			return nil, idErr
		}
		out = append(out, report.BlockRow{
			BlockID:   ids[0],
			UserID:    ids[1],
			BlockedBy: ids[2],
			Reason:    row.Reason,
			BlockedAt: row.BlockedAt.UTC(),
		})
	}
	return out, nil
}

// count is only ever called with constant table and column names.
func (r *GormReportReader) count(ctx context.Context, table, column string, w report.Window) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table(table).
		Where(column+" >= ? AND "+column+" < ?", w.Start, w.End).
		Count(&n).Error
	if err != nil {
		return 0, pgerrs.Map("report", table, err)
	}
	return n, nil
}

func toIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func toOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
