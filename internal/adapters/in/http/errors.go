package http

import (
	"errors"
	"net/http"

	"forwarding/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error kinds reported in the "kind" field of a failure body.
const (
	KindValidation         = "validation"
	KindUnauthenticated    = "unauthenticated"
	KindForbidden          = "forbidden"
	KindNotFound           = "not_found"
	KindConflict           = "conflict"
	KindInvalidTransition  = "invalid_transition"
	KindIncompatibleOrders = "incompatible_orders"
	KindStoreUnavailable   = "store_unavailable"
	KindInternal           = "internal"
)

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
	OrderIDs []string `json:"order_ids,omitempty"`
}

// classify maps an error onto its HTTP status and kind. Anything the core
// does not name is an internal error.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized, KindUnauthenticated
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, KindForbidden
	case errs.IsValidation(err):
		return http.StatusBadRequest, KindValidation
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, KindInvalidTransition
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, KindConflict
	case errors.Is(err, errs.ErrIncompatibleOrders):
		return http.StatusUnprocessableEntity, KindIncompatibleOrders
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, KindStoreUnavailable
	default:
		return http.StatusInternalServerError, KindInternal
	}
}

func writeError(c echo.Context, err error) error {
	status, kind := classify(err)

	payload := errorPayload{Kind: kind, Message: err.Error()}
	if status == http.StatusInternalServerError {
		payload.Message = http.StatusText(status)
	}

	var incompatible *errs.IncompatibleOrdersError
	if errors.As(err, &incompatible) {
		payload.OrderIDs = incompatible.OrderIDs
	}

	return c.JSON(status, errorBody{Error: payload})
}

// ErrorHandler renders errors that escape a handler, including echo's own
// routing errors, in the service's failure format.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		kind := KindInternal
		switch httpErr.Code {
		case http.StatusNotFound:
			kind = KindNotFound
		case http.StatusBadRequest, http.StatusMethodNotAllowed, http.StatusUnsupportedMediaType:
			kind = KindValidation
		}
		_ = c.JSON(httpErr.Code, errorBody{Error: errorPayload{Kind: kind, Message: http.StatusText(httpErr.Code)}})
		return
	}

	_ = writeError(c, err)
}
