package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	actorKey = "actor"
)

var errActorMissing = errors.New("actor is not set on the request")

// Authenticate turns the identity headers into an access.Actor. A missing
// or malformed identity is rejected before any validation runs.
func Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := actorFromHeaders(c)
			if err != nil {
				return writeError(c, err)
			}
			c.Request().Header.Set(HeaderUserRole, actor.Role.String())
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func actorFromHeaders(c echo.Context) (access.Actor, error) {
	header := c.Request().Header
	rawID := strings.TrimSpace(header.Get(HeaderUserID))
	rawRole := strings.TrimSpace(header.Get(HeaderUserRole))
	if rawID == "" || rawRole == "" {
		return access.Actor{}, unauthenticated(errs.NewValueIsRequiredError(HeaderUserID + ", " + HeaderUserRole))
	}

	userID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return access.Actor{}, unauthenticated(err)
	}
	role, err := access.ParseRole(rawRole)
	if err != nil {
		return access.Actor{}, unauthenticated(err)
	}
	actor, err := access.NewActor(userID, role)
	if err != nil {
		return access.Actor{}, unauthenticated(err)
	}
	return actor, nil
}

// unauthenticated keeps the cause in the message but classifies only as
// ErrUnauthenticated, never as a validation failure.
func unauthenticated(cause error) error {
	return fmt.Errorf("%w: %v", errs.ErrUnauthenticated, cause)
}

func actorFrom(c echo.Context) (access.Actor, error) {
	actor, ok := c.Get(actorKey).(access.Actor)
	if !ok {
		return access.Actor{}, errActorMissing
	}
	return actor, nil
}

// Timeout bounds every request context. Store adapters observe the
// deadline and report it as an unavailable store.
func Timeout(d time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if d <= 0 {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), d)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			attrs := []any{
				"method", req.Method,
				"path", c.Path(),
				"status", status,
				"duration", time.Since(start),
			}
			switch {
			case status >= 500:
				logger.ErrorContext(req.Context(), "request failed", attrs...)
			case status >= 400:
				logger.WarnContext(req.Context(), "request rejected", attrs...)
			default:
				logger.InfoContext(req.Context(), "request served", attrs...)
			}
			return nil
		}
	}
}

// staffRoutes names the action behind every route that only staff may call.
// Order routes are absent: whether a caller may touch an order depends on
// who owns it and is decided by the use case.
var staffRoutes = map[string]access.Action{
	"GET " + BaseURL + "/combined-shipments":                 access.ListCombinedShipments,
	"POST " + BaseURL + "/combined-shipments":                access.CombineOrders,
	"DELETE " + BaseURL + "/combined-shipments/:shipment_id": access.DecombineShipment,
	"POST " + BaseURL + "/branches":                          access.ManageBranches,
	"PUT " + BaseURL + "/branches/:branch_id":                access.ManageBranches,
	"DELETE " + BaseURL + "/branches/:branch_id":             access.ManageBranches,
	"POST " + BaseURL + "/flights":                           access.ManageFlights,
	"PUT " + BaseURL + "/flights/:flight_id":                 access.ManageFlights,
	"POST " + BaseURL + "/bags":                              access.ManageBags,
	"PUT " + BaseURL + "/bags/:bag_id":                       access.ManageBags,
	"POST " + BaseURL + "/bags/:bag_id/orders":               access.ManageBags,
	"PUT " + BaseURL + "/bags/:bag_id/flight":                access.ManageBags,
	"POST " + BaseURL + "/shelf-placements":                  access.ShelveOrder,
	"POST " + BaseURL + "/user-blocks":                       access.BlockUser,
	"GET " + BaseURL + "/reports/:kind":                      access.RunReport,
}

// Gate refuses staff-only routes to callers whose role is too low, before
// the request body is looked at.
func Gate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			action, guarded := staffRoutes[c.Request().Method+" "+c.Path()]
			if !guarded {
				return next(c)
			}
			actor, err := actorFrom(c)
			if err != nil {
				return writeError(c, err)
			}
			if err = access.Require(actor, action); err != nil {
				return writeError(c, err)
			}
			return next(c)
		}
	}
}
