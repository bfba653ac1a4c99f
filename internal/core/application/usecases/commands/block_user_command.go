package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrBlockUserCommandIsNotConstructed = errors.New(
	"BlockUserCommand must be created via NewBlockUserCommand constructor",
)

type BlockUserCommand struct {
	actor   access.Actor
	blockID kernel.UUID
	userID  kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewBlockUserCommand(actor access.Actor, blockID, userID kernel.UUID, reason string) (BlockUserCommand, error) {
	if err := errors.Join(actor.Validate(), blockID.Validate(), userID.Validate()); err != nil {
		return BlockUserCommand{}, err
	}
	return BlockUserCommand{
		actor:   actor,
		blockID: blockID,
		userID:  userID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c BlockUserCommand) Validate() error {
	return c.guard.Validate(ErrBlockUserCommandIsNotConstructed)
}

func (c BlockUserCommand) Actor() access.Actor  { return c.actor }
func (c BlockUserCommand) BlockID() kernel.UUID { return c.blockID }
func (c BlockUserCommand) UserID() kernel.UUID  { return c.userID }
func (c BlockUserCommand) Reason() string       { return c.reason }
