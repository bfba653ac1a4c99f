package http

import (
	"log/slog"
	"net/http"
	"time"

	"forwarding/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const BaseURL = "/api/v1"

type ListOrdersParams struct {
	UserID *openapi_types.UUID
	Limit  *int
	Offset *int
}

type ListCombinedShipmentsParams struct {
	Status   *string
	BranchID *openapi_types.UUID
	From     *openapi_types.Date
	To       *openapi_types.Date
}

type RunReportParams struct {
	From *openapi_types.Date
	To   *openapi_types.Date
}

// ServerInterface lists every operation of openapi.yaml.
type ServerInterface interface {
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	CreateOrder(ctx echo.Context) error
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	UpdateOrder(ctx echo.Context, orderID openapi_types.UUID) error
	TransitionOrderStatus(ctx echo.Context, orderID openapi_types.UUID) error

	ListCombinedShipments(ctx echo.Context, params ListCombinedShipmentsParams) error
	CombineOrders(ctx echo.Context) error
	DecombineShipment(ctx echo.Context, shipmentID openapi_types.UUID) error

	ListBranches(ctx echo.Context) error
	CreateBranch(ctx echo.Context) error
	UpdateBranch(ctx echo.Context, branchID openapi_types.UUID) error
	DeleteBranch(ctx echo.Context, branchID openapi_types.UUID) error

	CreateFlight(ctx echo.Context) error
	UpdateFlight(ctx echo.Context, flightID openapi_types.UUID) error

	CreateBag(ctx echo.Context) error
	UpdateBag(ctx echo.Context, bagID openapi_types.UUID) error
	AddOrderToBag(ctx echo.Context, bagID openapi_types.UUID) error
	AssignBagToFlight(ctx echo.Context, bagID openapi_types.UUID) error

	ShelveOrder(ctx echo.Context) error
	BlockUser(ctx echo.Context) error

	RunReport(ctx echo.Context, kind string, params RunReportParams) error
}

// ServerInterfaceWrapper binds path and query parameters before calling
// the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

type queryParam struct {
	name string
	dest any
}

// bindQueries binds optional form-style query parameters in order and
// stops at the first malformed one.
func bindQueries(ctx echo.Context, params ...queryParam) error {
	for _, p := range params {
		if err := runtime.BindQueryParameter("form", true, false, p.name, ctx.QueryParams(), p.dest); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(p.name, err)
		}
	}
	return nil
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	if err := bindQueries(ctx,
		queryParam{"user_id", &params.UserID},
		queryParam{"limit", &params.Limit},
		queryParam{"offset", &params.Offset},
	); err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "order_id")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.GetOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "order_id")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.UpdateOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) TransitionOrderStatus(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "order_id")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.TransitionOrderStatus(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ListCombinedShipments(ctx echo.Context) error {
	var params ListCombinedShipmentsParams
	if err := bindQueries(ctx,
		queryParam{"status", &params.Status},
		queryParam{"branch_id", &params.BranchID},
		queryParam{"from", &params.From},
		queryParam{"to", &params.To},
	); err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.ListCombinedShipments(ctx, params)
}

func (w *ServerInterfaceWrapper) CombineOrders(ctx echo.Context) error {
	return w.Handler.CombineOrders(ctx)
}

func (w *ServerInterfaceWrapper) DecombineShipment(ctx echo.Context) error {
	shipmentID, err := bindPathUUID(ctx, "shipment_id")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.DecombineShipment(ctx, shipmentID)
}

func (w *ServerInterfaceWrapper) ListBranches(ctx echo.Context) error {
	return w.Handler.ListBranches(ctx)
}

func (w *ServerInterfaceWrapper) CreateBranch(ctx echo.Context) error {
	return w.Handler.CreateBranch(ctx)
}

func (w *ServerInterfaceWrapper) UpdateBranch(ctx echo.Context) error {
	branchID, err := bindPathUUID(ctx, "branch_id")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.UpdateBranch(ctx, branchID)
}

func (w *ServerInterfaceWrapper) DeleteBranch(ctx echo.Context) error {
	branchID, err := bindPathUUID(ctx, "branch_id")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.DeleteBranch(ctx, branchID)
}

func (w *ServerInterfaceWrapper) CreateFlight(ctx echo.Context) error {
	return w.Handler.CreateFlight(ctx)
}

func (w *ServerInterfaceWrapper) UpdateFlight(ctx echo.Context) error {
	flightID, err := bindPathUUID(ctx, "flight_id")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.UpdateFlight(ctx, flightID)
}

func (w *ServerInterfaceWrapper) CreateBag(ctx echo.Context) error {
	return w.Handler.CreateBag(ctx)
}

func (w *ServerInterfaceWrapper) UpdateBag(ctx echo.Context) error {
	bagID, err := bindPathUUID(ctx, "bag_id")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.UpdateBag(ctx, bagID)
}

func (w *ServerInterfaceWrapper) AddOrderToBag(ctx echo.Context) error {
	bagID, err := bindPathUUID(ctx, "bag_id")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.AddOrderToBag(ctx, bagID)
}

func (w *ServerInterfaceWrapper) AssignBagToFlight(ctx echo.Context) error {
	bagID, err := bindPathUUID(ctx, "bag_id")
	if err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.AssignBagToFlight(ctx, bagID)
}

func (w *ServerInterfaceWrapper) ShelveOrder(ctx echo.Context) error {
	return w.Handler.ShelveOrder(ctx)
}

func (w *ServerInterfaceWrapper) BlockUser(ctx echo.Context) error {
	return w.Handler.BlockUser(ctx)
}

func (w *ServerInterfaceWrapper) RunReport(ctx echo.Context) error {
	var params RunReportParams
	if err := bindQueries(ctx, queryParam{"from", &params.From}, queryParam{"to", &params.To}); err != nil {
		return writeError(ctx, err)
	}
	return w.Handler.RunReport(ctx, ctx.Param("kind"), params)
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for routing.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation of si under baseURL. Routers that
// already carry the /api/v1 prefix pass an empty baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/orders", w.ListOrders)
	router.POST(baseURL+"/orders", w.CreateOrder)
	router.GET(baseURL+"/orders/:order_id", w.GetOrder)
	router.PATCH(baseURL+"/orders/:order_id", w.UpdateOrder)
	router.PUT(baseURL+"/orders/:order_id/status", w.TransitionOrderStatus)

	router.GET(baseURL+"/combined-shipments", w.ListCombinedShipments)
	router.POST(baseURL+"/combined-shipments", w.CombineOrders)
	router.DELETE(baseURL+"/combined-shipments/:shipment_id", w.DecombineShipment)

	router.GET(baseURL+"/branches", w.ListBranches)
	router.POST(baseURL+"/branches", w.CreateBranch)
	router.PUT(baseURL+"/branches/:branch_id", w.UpdateBranch)
	router.DELETE(baseURL+"/branches/:branch_id", w.DeleteBranch)

	router.POST(baseURL+"/flights", w.CreateFlight)
	router.PUT(baseURL+"/flights/:flight_id", w.UpdateFlight)

	router.POST(baseURL+"/bags", w.CreateBag)
	router.PUT(baseURL+"/bags/:bag_id", w.UpdateBag)
	router.POST(baseURL+"/bags/:bag_id/orders", w.AddOrderToBag)
	router.PUT(baseURL+"/bags/:bag_id/flight", w.AssignBagToFlight)

	router.POST(baseURL+"/shelf-placements", w.ShelveOrder)
	router.POST(baseURL+"/user-blocks", w.BlockUser)

	router.GET(baseURL+"/reports/:kind", w.RunReport)
}

// Mount wires the whole transport onto e: error rendering, request logging,
// the API description, the Swagger UI and the authenticated /api/v1 group
// with request validation and a per-request timeout.
func Mount(e *echo.Echo, spec *APISpec, si ServerInterface, logger *slog.Logger, timeout time.Duration) {
	e.HTTPErrorHandler = ErrorHandler
	e.Use(RequestLogger(logger.With("component", "http")))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", spec.ServeJSON)
	e.GET("/swagger/*", swaggerHandler(spec))

	api := e.Group(BaseURL, Authenticate(), Gate(), spec.ValidateRequests(), Timeout(timeout))
	RegisterHandlers(api, si, "")
}
