package queries

import (
	"context"
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

type GetOrderQuery struct {
	actor   access.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(actor access.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryHandler loads one order visible to the actor.
type GetOrderQueryHandler struct {
	readModel ReadModelFactory
}

// NewGetOrderQueryHandler wires the handler to its dependencies.
func NewGetOrderQueryHandler(readModel ReadModelFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{readModel: readModel}
}

// Handle answers NotFound both for unknown ids and for orders of other
// customers, so a user cannot probe which ids exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(query.actor, access.ViewOwnOrders); err != nil {
		return nil, err
	}

	o, err := h.readModel.Create().OrderRepository().Get(ctx, query.orderID)
	if err != nil {
		return nil, err
	}
	if !o.VisibleTo(query.actor) {
		return nil, errs.NewObjectNotFoundError("order", query.orderID.String())
	}
	return o, nil
}
