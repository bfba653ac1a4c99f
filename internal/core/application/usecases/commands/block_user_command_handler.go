package commands

import (
	"context"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/userblock"
	"forwarding/internal/core/ports"
)

// BlockUserCommandHandler records a block against a user.
type BlockUserCommandHandler struct {
	uowFactory UserBlockUoWFactory
	clock      ports.Clock
}

// NewBlockUserCommandHandler wires the handler to its dependencies.
func NewBlockUserCommandHandler(uowFactory UserBlockUoWFactory, clock ports.Clock) BlockUserCommandHandler {
	return BlockUserCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle appends a block to the audit trail. Blocks are never lifted here.
func (h BlockUserCommandHandler) Handle(ctx context.Context, cmd BlockUserCommand) (*userblock.Block, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(cmd.Actor(), access.BlockUser); err != nil {
		return nil, err
	}

	b, err := userblock.NewBlock(cmd.BlockID(), cmd.UserID(), cmd.Actor().UserID, cmd.Reason(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserBlockRepository().Add(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
