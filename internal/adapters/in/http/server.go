package http

import (
	"log/slog"
	"net/http"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder           commands.CreateOrderCommandHandler
	UpdateOrder           commands.UpdateOrderCommandHandler
	TransitionOrderStatus commands.TransitionOrderStatusCommandHandler
	CombineOrders         commands.CombineOrdersCommandHandler
	DecombineShipment     commands.DecombineShipmentCommandHandler
	CreateBranch          commands.CreateBranchCommandHandler
	UpdateBranch          commands.UpdateBranchCommandHandler
	DeleteBranch          commands.DeleteBranchCommandHandler
	SaveFlight            commands.SaveFlightCommandHandler
	SaveBag               commands.SaveBagCommandHandler
	AddOrderToBag         commands.AddOrderToBagCommandHandler
	AssignBagToFlight     commands.AssignBagToFlightCommandHandler
	ShelveOrder           commands.ShelveOrderCommandHandler
	BlockUser             commands.BlockUserCommandHandler

	GetOrder              queries.GetOrderQueryHandler
	ListOrdersForUser     queries.ListOrdersForUserQueryHandler
	ListCombinedShipments queries.ListCombinedShipmentsQueryHandler
	ListBranches          queries.ListBranchesQueryHandler
	RunReport             queries.RunReportQueryHandler
}

// Server implements ServerInterface on top of the use case handlers.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{h: h, logger: logger.With("component", "http-server")}
}

var _ ServerInterface = (*Server)(nil)

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Data: data})
}

// fail renders err and logs failures that are not the caller's fault.
func (s *Server) fail(c echo.Context, op string, err error) error {
	if status, _ := classify(err); status >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "operation failed", "operation", op, "error", err)
	}
	return writeError(c, err)
}

func bindBody(c echo.Context, dest any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

// GetOrder handles GET /api/v1/orders/{order_id}.
func (s *Server) GetOrder(c echo.Context, orderID openapi_types.UUID) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "get order", err)
	}
	id, err := toUUID(orderID)
	if err != nil {
		return s.fail(c, "get order", err)
	}
	query, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return s.fail(c, "get order", err)
	}

	o, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, "get order", err)
	}
	return ok(c, http.StatusOK, orderFrom(o))
}

// ListOrders handles GET /api/v1/orders. Without user_id the caller's own
// orders are listed.
func (s *Server) ListOrders(c echo.Context, params ListOrdersParams) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "list orders", err)
	}

	userID := actor.UserID
	if params.UserID != nil {
		if userID, err = toUUID(*params.UserID); err != nil {
			return s.fail(c, "list orders", err)
		}
	}

	var page *ports.Page
	if params.Limit != nil || params.Offset != nil {
		page = &ports.Page{Limit: 50}
		if params.Limit != nil {
			page.Limit = *params.Limit
		}
		if params.Offset != nil {
			page.Offset = *params.Offset
		}
	}

	query, err := queries.NewListOrdersForUserQuery(actor, userID, page)
	if err != nil {
		return s.fail(c, "list orders", err)
	}
	orders, err := s.h.ListOrdersForUser.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, "list orders", err)
	}
	return ok(c, http.StatusOK, ordersFrom(orders))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "create order", err)
	}
	var body NewOrder
	if err = bindBody(c, &body); err != nil {
		return s.fail(c, "create order", err)
	}

	ownerID := actor.UserID
	if body.OwnerID != nil {
		if ownerID, err = toUUID(*body.OwnerID); err != nil {
			return s.fail(c, "create order", err)
		}
	}
	origin, err := body.Origin.toDomain()
	if err != nil {
		return s.fail(c, "create order", err)
	}
	destination, err := body.Destination.toDomain()
	if err != nil {
		return s.fail(c, "create order", err)
	}
	branchID, err := toUUID(body.DestinationBranchID)
	if err != nil {
		return s.fail(c, "create order", err)
	}
	fulfillment, err := order.ParseFulfillment(body.Fulfillment)
	if err != nil {
		return s.fail(c, "create order", err)
	}
	items, err := toItems(body.Items)
	if err != nil {
		return s.fail(c, "create order", err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		actor, kernel.NewUUID(), ownerID, origin, destination, branchID, fulfillment, items,
	)
	if err != nil {
		return s.fail(c, "create order", err)
	}
	o, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "create order", err)
	}
	return ok(c, http.StatusCreated, orderFrom(o))
}

// UpdateOrder handles PATCH /api/v1/orders/{order_id}.
func (s *Server) UpdateOrder(c echo.Context, orderID openapi_types.UUID) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "update order", err)
	}
	id, err := toUUID(orderID)
	if err != nil {
		return s.fail(c, "update order", err)
	}
	var body OrderPatch
	if err = bindBody(c, &body); err != nil {
		return s.fail(c, "update order", err)
	}

	var items []order.Item
	if body.Items != nil {
		if items, err = toItems(body.Items); err != nil {
			return s.fail(c, "update order", err)
		}
	}
	var destination *kernel.Address
	if body.Destination != nil {
		a, addrErr := body.Destination.toDomain()
		if addrErr != nil {
			return s.fail(c, "update order", addrErr)
		}
		destination = &a
	}
	var fulfillment *order.Fulfillment
	if body.Fulfillment != nil {
		f, parseErr := order.ParseFulfillment(*body.Fulfillment)
		if parseErr != nil {
			return s.fail(c, "update order", parseErr)
		}
		fulfillment = &f
	}

	cmd, err := commands.NewUpdateOrderCommand(actor, id, items, destination, fulfillment)
	if err != nil {
		return s.fail(c, "update order", err)
	}
	o, err := s.h.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "update order", err)
	}
	return ok(c, http.StatusOK, orderFrom(o))
}

// TransitionOrderStatus handles PUT /api/v1/orders/{order_id}/status.
func (s *Server) TransitionOrderStatus(c echo.Context, orderID openapi_types.UUID) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "transition order", err)
	}
	id, err := toUUID(orderID)
	if err != nil {
		return s.fail(c, "transition order", err)
	}
	var body StatusChange
	if err = bindBody(c, &body); err != nil {
		return s.fail(c, "transition order", err)
	}
	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(c, "transition order", err)
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(actor, id, target)
	if err != nil {
		return s.fail(c, "transition order", err)
	}
	o, err := s.h.TransitionOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "transition order", err)
	}
	return ok(c, http.StatusOK, orderFrom(o))
}

// ListCombinedShipments handles GET /api/v1/combined-shipments.
func (s *Server) ListCombinedShipments(c echo.Context, params ListCombinedShipmentsParams) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "list shipments", err)
	}

	var criteria queries.ShipmentCriteria
	if params.Status != nil {
		status, parseErr := order.ParseStatus(*params.Status)
		if parseErr != nil {
			return s.fail(c, "list shipments", parseErr)
		}
		criteria.Status = &status
	}
	if params.BranchID != nil {
		branchID, idErr := toUUID(*params.BranchID)
		if idErr != nil {
			return s.fail(c, "list shipments", idErr)
		}
		criteria.DestinationBranchID = &branchID
	}
	if params.From != nil || params.To != nil {
		created, rangeErr := createdRange(params.From, params.To)
		if rangeErr != nil {
			return s.fail(c, "list shipments", rangeErr)
		}
		criteria.Created = &created
	}

	query, err := queries.NewListCombinedShipmentsQuery(actor, criteria)
	if err != nil {
		return s.fail(c, "list shipments", err)
	}
	views, err := s.h.ListCombinedShipments.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, "list shipments", err)
	}

	out := make([]CombinedShipmentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, shipmentFrom(v))
	}
	return ok(c, http.StatusOK, out)
}

// createdRange fills an open side with the other bound.
func createdRange(from, to *openapi_types.Date) (kernel.DateRange, error) {
	switch {
	case from == nil:
		return kernel.NewDateRange(toDay(*to), toDay(*to))
	case to == nil:
		return kernel.NewDateRange(toDay(*from), toDay(*from))
	default:
		return kernel.NewDateRange(toDay(*from), toDay(*to))
	}
}

// CombineOrders handles POST /api/v1/combined-shipments.
func (s *Server) CombineOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "combine orders", err)
	}
	var body CombineRequest
	if err = bindBody(c, &body); err != nil {
		return s.fail(c, "combine orders", err)
	}

	orderIDs := make([]kernel.UUID, 0, len(body.OrderIDs))
	for _, raw := range body.OrderIDs {
		id, idErr := toUUID(raw)
		if idErr != nil {
			return s.fail(c, "combine orders", idErr)
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewCombineOrdersCommand(actor, kernel.NewUUID(), orderIDs)
	if err != nil {
		return s.fail(c, "combine orders", err)
	}
	view, err := s.h.CombineOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "combine orders", err)
	}
	return ok(c, http.StatusCreated, shipmentFrom(view))
}

// DecombineShipment handles DELETE /api/v1/combined-shipments/{shipment_id}.
func (s *Server) DecombineShipment(c echo.Context, shipmentID openapi_types.UUID) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "decombine shipment", err)
	}
	id, err := toUUID(shipmentID)
	if err != nil {
		return s.fail(c, "decombine shipment", err)
	}
	cmd, err := commands.NewDecombineShipmentCommand(actor, id)
	if err != nil {
		return s.fail(c, "decombine shipment", err)
	}
	if err = s.h.DecombineShipment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, "decombine shipment", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBranches handles GET /api/v1/branches.
func (s *Server) ListBranches(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "list branches", err)
	}
	query, err := queries.NewListBranchesQuery(actor)
	if err != nil {
		return s.fail(c, "list branches", err)
	}
	branches, err := s.h.ListBranches.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, "list branches", err)
	}

	out := make([]BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, branchFrom(b))
	}
	return ok(c, http.StatusOK, out)
}

func (s *Server) branchCommand(c echo.Context, branchID kernel.UUID) (commands.SaveBranchCommand, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return commands.SaveBranchCommand{}, err
	}
	var body BranchInput
	if err = bindBody(c, &body); err != nil {
		return commands.SaveBranchCommand{}, err
	}
	country, err := kernel.ParseCountry(body.Country)
	if err != nil {
		return commands.SaveBranchCommand{}, err
	}
	address, err := body.Address.toDomain()
	if err != nil {
		return commands.SaveBranchCommand{}, err
	}
	return commands.NewSaveBranchCommand(actor, branchID, body.Title, country, address)
}

// CreateBranch handles POST /api/v1/branches.
func (s *Server) CreateBranch(c echo.Context) error {
	cmd, err := s.branchCommand(c, kernel.NewUUID())
	if err != nil {
		return s.fail(c, "create branch", err)
	}
	b, err := s.h.CreateBranch.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "create branch", err)
	}
	return ok(c, http.StatusCreated, branchFrom(b))
}

// UpdateBranch handles PUT /api/v1/branches/{branch_id}.
func (s *Server) UpdateBranch(c echo.Context, branchID openapi_types.UUID) error {
	id, err := toUUID(branchID)
	if err != nil {
		return s.fail(c, "update branch", err)
	}
	cmd, err := s.branchCommand(c, id)
	if err != nil {
		return s.fail(c, "update branch", err)
	}
	b, err := s.h.UpdateBranch.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "update branch", err)
	}
	return ok(c, http.StatusOK, branchFrom(b))
}

// DeleteBranch handles DELETE /api/v1/branches/{branch_id}.
func (s *Server) DeleteBranch(c echo.Context, branchID openapi_types.UUID) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "delete branch", err)
	}
	id, err := toUUID(branchID)
	if err != nil {
		return s.fail(c, "delete branch", err)
	}
	cmd, err := commands.NewDeleteBranchCommand(actor, id)
	if err != nil {
		return s.fail(c, "delete branch", err)
	}
	if err = s.h.DeleteBranch.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, "delete branch", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) flightCommand(c echo.Context, flightID kernel.UUID) (commands.SaveFlightCommand, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return commands.SaveFlightCommand{}, err
	}
	var body FlightInput
	if err = bindBody(c, &body); err != nil {
		return commands.SaveFlightCommand{}, err
	}
	schedule, err := body.toSchedule()
	if err != nil {
		return commands.SaveFlightCommand{}, err
	}
	return commands.NewSaveFlightCommand(actor, flightID, schedule)
}

// CreateFlight handles POST /api/v1/flights.
func (s *Server) CreateFlight(c echo.Context) error {
	cmd, err := s.flightCommand(c, kernel.NewUUID())
	if err != nil {
		return s.fail(c, "create flight", err)
	}
	f, err := s.h.SaveFlight.Create(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "create flight", err)
	}
	return ok(c, http.StatusCreated, flightFrom(f))
}

// UpdateFlight handles PUT /api/v1/flights/{flight_id}.
func (s *Server) UpdateFlight(c echo.Context, flightID openapi_types.UUID) error {
	id, err := toUUID(flightID)
	if err != nil {
		return s.fail(c, "update flight", err)
	}
	cmd, err := s.flightCommand(c, id)
	if err != nil {
		return s.fail(c, "update flight", err)
	}
	f, err := s.h.SaveFlight.Update(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "update flight", err)
	}
	return ok(c, http.StatusOK, flightFrom(f))
}

func (s *Server) bagCommand(c echo.Context, bagID kernel.UUID) (commands.SaveBagCommand, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return commands.SaveBagCommand{}, err
	}
	var body BagInput
	if err = bindBody(c, &body); err != nil {
		return commands.SaveBagCommand{}, err
	}
	branchID, err := toUUID(body.BranchID)
	if err != nil {
		return commands.SaveBagCommand{}, err
	}
	return commands.NewSaveBagCommand(actor, bagID, body.Label, branchID, body.MaxWeightGrams)
}

// CreateBag handles POST /api/v1/bags.
func (s *Server) CreateBag(c echo.Context) error {
	cmd, err := s.bagCommand(c, kernel.NewUUID())
	if err != nil {
		return s.fail(c, "create bag", err)
	}
	b, err := s.h.SaveBag.Create(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "create bag", err)
	}
	return ok(c, http.StatusCreated, bagFrom(b))
}

// UpdateBag handles PUT /api/v1/bags/{bag_id}.
func (s *Server) UpdateBag(c echo.Context, bagID openapi_types.UUID) error {
	id, err := toUUID(bagID)
	if err != nil {
		return s.fail(c, "update bag", err)
	}
	cmd, err := s.bagCommand(c, id)
	if err != nil {
		return s.fail(c, "update bag", err)
	}
	b, err := s.h.SaveBag.Update(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "update bag", err)
	}
	return ok(c, http.StatusOK, bagFrom(b))
}

// AddOrderToBag handles POST /api/v1/bags/{bag_id}/orders.
func (s *Server) AddOrderToBag(c echo.Context, bagID openapi_types.UUID) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "add order to bag", err)
	}
	id, err := toUUID(bagID)
	if err != nil {
		return s.fail(c, "add order to bag", err)
	}
	var body BagOrderInput
	if err = bindBody(c, &body); err != nil {
		return s.fail(c, "add order to bag", err)
	}
	orderID, err := toUUID(body.OrderID)
	if err != nil {
		return s.fail(c, "add order to bag", err)
	}

	cmd, err := commands.NewAddOrderToBagCommand(actor, id, orderID)
	if err != nil {
		return s.fail(c, "add order to bag", err)
	}
	b, err := s.h.AddOrderToBag.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "add order to bag", err)
	}
	return ok(c, http.StatusOK, bagFrom(b))
}

// AssignBagToFlight handles PUT /api/v1/bags/{bag_id}/flight.
func (s *Server) AssignBagToFlight(c echo.Context, bagID openapi_types.UUID) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "assign bag", err)
	}
	id, err := toUUID(bagID)
	if err != nil {
		return s.fail(c, "assign bag", err)
	}
	var body BagFlightInput
	if err = bindBody(c, &body); err != nil {
		return s.fail(c, "assign bag", err)
	}
	flightID, err := toUUID(body.FlightID)
	if err != nil {
		return s.fail(c, "assign bag", err)
	}

	cmd, err := commands.NewAssignBagToFlightCommand(actor, id, flightID)
	if err != nil {
		return s.fail(c, "assign bag", err)
	}
	b, err := s.h.AssignBagToFlight.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "assign bag", err)
	}
	return ok(c, http.StatusOK, bagFrom(b))
}

// ShelveOrder handles POST /api/v1/shelf-placements.
func (s *Server) ShelveOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "shelve order", err)
	}
	var body ShelfInput
	if err = bindBody(c, &body); err != nil {
		return s.fail(c, "shelve order", err)
	}
	orderID, err := toUUID(body.OrderID)
	if err != nil {
		return s.fail(c, "shelve order", err)
	}

	cmd, err := commands.NewShelveOrderCommand(actor, kernel.NewUUID(), orderID, body.ShelfCode)
	if err != nil {
		return s.fail(c, "shelve order", err)
	}
	p, err := s.h.ShelveOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "shelve order", err)
	}
	return ok(c, http.StatusCreated, placementFrom(p))
}

// BlockUser handles POST /api/v1/user-blocks.
func (s *Server) BlockUser(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "block user", err)
	}
	var body BlockInput
	if err = bindBody(c, &body); err != nil {
		return s.fail(c, "block user", err)
	}
	userID, err := toUUID(body.UserID)
	if err != nil {
		return s.fail(c, "block user", err)
	}

	cmd, err := commands.NewBlockUserCommand(actor, kernel.NewUUID(), userID, body.Reason)
	if err != nil {
		return s.fail(c, "block user", err)
	}
	b, err := s.h.BlockUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "block user", err)
	}
	return ok(c, http.StatusCreated, blockFrom(b))
}

// RunReport handles GET /api/v1/reports/{kind}.
func (s *Server) RunReport(c echo.Context, kind string, params RunReportParams) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, "run report", err)
	}
	query, err := queries.NewRunReportQuery(actor, kind, toOptionalDay(params.From), toOptionalDay(params.To))
	if err != nil {
		return s.fail(c, "run report", err)
	}
	result, err := s.h.RunReport.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, "run report", err)
	}
	return ok(c, http.StatusOK, result)
}
