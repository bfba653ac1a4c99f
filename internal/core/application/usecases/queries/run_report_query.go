package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/model/report"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"

	"golang.org/x/sync/errgroup"
)

var ErrRunReportQueryIsNotConstructed = errors.New(
	"RunReportQuery must be created via NewRunReportQuery constructor",
)

// RunReportQuery carries the raw kind so that an unknown kind is reported
// after the permission check, like every other input problem.
type RunReportQuery struct {
	actor access.Actor
	kind  string
	from  *kernel.Day
	to    *kernel.Day

	guard guard.ConstructorGuard
}

func NewRunReportQuery(actor access.Actor, kind string, from, to *kernel.Day) (RunReportQuery, error) {
	if err := actor.Validate(); err != nil {
		return RunReportQuery{}, err
	}
	return RunReportQuery{actor: actor, kind: kind, from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

func (q RunReportQuery) Validate() error {
	return q.guard.Validate(ErrRunReportQueryIsNotConstructed)
}

// RunReportQueryHandler builds one report kind over a day range.
type RunReportQueryHandler struct {
	reader ports.ReportReader
	clock  ports.Clock
	loc    *time.Location
}

// NewRunReportQueryHandler wires the handler to its dependencies.
func NewRunReportQueryHandler(reader ports.ReportReader, clock ports.Clock, loc *time.Location) RunReportQueryHandler {
	return RunReportQueryHandler{reader: reader, clock: clock, loc: loc}
}

// Handle runs one report over an inclusive day range in the business time
// zone. Missing bounds default to the current calendar month. Permission
// and input problems are reported before anything is read.
func (h RunReportQueryHandler) Handle(ctx context.Context, query RunReportQuery) (report.Result, error) {
	if err := query.Validate(); err != nil {
		return report.Result{}, err
	}
	if err := access.Require(query.actor, access.RunReport); err != nil {
		return report.Result{}, err
	}

	kind, err := report.ParseKind(query.kind)
	if err != nil {
		return report.Result{}, err
	}
	if err = access.Require(query.actor, kind.RequiredAction()); err != nil {
		return report.Result{}, err
	}

	now := h.clock.Now()
	w, err := services.ResolveReportWindow(query.from, query.to, now, h.loc)
	if err != nil {
		return report.Result{}, err
	}

	data, err := h.build(ctx, kind, w)
	if err != nil {
		return report.Result{}, err
	}
	return report.NewResult(kind, w, now, data), nil
}

func (h RunReportQueryHandler) build(ctx context.Context, kind report.Kind, w report.Window) (any, error) {
	switch kind {
	case report.Summary:
		return h.summary(ctx, w)
	case report.Flights:
		legs, err := h.reader.FlightLegs(ctx, w.Days)
		if err != nil {
			return nil, err
		}
		return report.BuildFlights(legs), nil
	case report.Bags:
		rows, err := h.reader.BagsCreated(ctx, w)
		if err != nil {
			return nil, err
		}
		return report.BuildBags(rows), nil
	case report.Delivery, report.WalkInPickup, report.SelfService:
		rows, err := h.reader.HandedOverOrders(ctx, w, fulfillmentOf(kind))
		if err != nil {
			return nil, err
		}
		return report.BuildFulfillment(kind, rows), nil
	case report.ShelfHistory:
		rows, err := h.reader.ShelfPlacements(ctx, w)
		if err != nil {
			return nil, err
		}
		return report.BuildShelfHistory(rows), nil
	case report.BlockedUsers:
		rows, err := h.reader.UserBlocks(ctx, w)
		if err != nil {
			return nil, err
		}
		return report.BuildBlockedUsers(rows), nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("no builder for %s", kind))
	}
}

// summary runs its three counts concurrently; the first failure cancels
// the others.
func (h RunReportQueryHandler) summary(ctx context.Context, w report.Window) (report.SummaryReport, error) {
	var (
		out      report.SummaryReport
		byStatus map[order.Status]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := h.reader.CountOrdersCreated(gctx, w)
		out.OrdersCreated = n
		return err
	})
	g.Go(func() error {
		n, err := h.reader.CountShipmentsCreated(gctx, w)
		out.CombinedShipmentsCreated = n
		return err
	})
	g.Go(func() error {
		m, err := h.reader.CountOrdersByStatus(gctx, w)
		byStatus = m
		return err
	})
	if err := g.Wait(); err != nil {
		return report.SummaryReport{}, err
	}

	out.OrdersByStatus = make(map[string]int64, len(order.Statuses()))
	for _, st := range order.Statuses() {
		out.OrdersByStatus[st.String()] = byStatus[st]
	}
	return out, nil
}

func fulfillmentOf(kind report.Kind) order.Fulfillment {
	switch kind {
	case report.WalkInPickup:
		return order.WalkInPickup
	case report.SelfService:
		return order.SelfService
	default:
		return order.Delivery
	}
}
