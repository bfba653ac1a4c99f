package queries

import (
	"context"
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrListOrdersForUserQueryIsNotConstructed = errors.New(
	"ListOrdersForUserQuery must be created via NewListOrdersForUserQuery constructor",
)

// ListOrdersForUserQuery lists a customer's orders, newest first. A nil page
// returns every order.
type ListOrdersForUserQuery struct {
	actor  access.Actor
	userID kernel.UUID
	page   *ports.Page

	guard guard.ConstructorGuard
}

func NewListOrdersForUserQuery(actor access.Actor, userID kernel.UUID, page *ports.Page) (ListOrdersForUserQuery, error) {
	if err := errors.Join(actor.Validate(), userID.Validate()); err != nil {
		return ListOrdersForUserQuery{}, err
	}
	if page != nil {
		if page.Limit < 1 {
			return ListOrdersForUserQuery{}, errs.NewValueIsOutOfRangeError("limit", page.Limit, 1, "unbounded")
		}
		if page.Offset < 0 {
			return ListOrdersForUserQuery{}, errs.NewValueIsOutOfRangeError("offset", page.Offset, 0, "unbounded")
		}
	}
	return ListOrdersForUserQuery{actor: actor, userID: userID, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersForUserQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersForUserQueryIsNotConstructed)
}

// ListOrdersForUserQueryHandler lists the orders a user placed.
type ListOrdersForUserQueryHandler struct {
	readModel ReadModelFactory
}

// NewListOrdersForUserQueryHandler wires the handler to its dependencies.
func NewListOrdersForUserQueryHandler(readModel ReadModelFactory) ListOrdersForUserQueryHandler {
	return ListOrdersForUserQueryHandler{readModel: readModel}
}

func (h ListOrdersForUserQueryHandler) Handle(ctx context.Context, query ListOrdersForUserQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	action := access.ViewOwnOrders
	if !query.actor.Owns(query.userID) {
		action = access.ViewAnyOrder
	}
	if err := access.Require(query.actor, action); err != nil {
		return nil, err
	}

	return h.readModel.Create().OrderRepository().ListByOwner(ctx, query.userID, query.page)
}
