package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrCombineOrdersCommandIsNotConstructed = errors.New(
	"CombineOrdersCommand must be created via NewCombineOrdersCommand constructor",
)

type CombineOrdersCommand struct {
	actor      access.Actor
	shipmentID kernel.UUID
	orderIDs   []kernel.UUID

	guard guard.ConstructorGuard
}

func NewCombineOrdersCommand(actor access.Actor, shipmentID kernel.UUID, orderIDs []kernel.UUID) (CombineOrdersCommand, error) {
	problems := []error{actor.Validate(), shipmentID.Validate()}
	if len(orderIDs) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("order_ids"))
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("order_ids", err))
			break
		}
	}
	if err := errors.Join(problems...); err != nil {
		return CombineOrdersCommand{}, err
	}

	ids := make([]kernel.UUID, len(orderIDs))
	copy(ids, orderIDs)

	return CombineOrdersCommand{
		actor:      actor,
		shipmentID: shipmentID,
		orderIDs:   ids,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CombineOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCombineOrdersCommandIsNotConstructed)
}

func (c CombineOrdersCommand) Actor() access.Actor     { return c.actor }
func (c CombineOrdersCommand) ShipmentID() kernel.UUID { return c.shipmentID }

func (c CombineOrdersCommand) OrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.orderIDs))
	copy(out, c.orderIDs)
	return out
}
