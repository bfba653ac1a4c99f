package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrDeleteBranchCommandIsNotConstructed = errors.New(
	"DeleteBranchCommand must be created via NewDeleteBranchCommand constructor",
)

type DeleteBranchCommand struct {
	actor    access.Actor
	branchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteBranchCommand(actor access.Actor, branchID kernel.UUID) (DeleteBranchCommand, error) {
	if err := errors.Join(actor.Validate(), branchID.Validate()); err != nil {
		return DeleteBranchCommand{}, err
	}
	return DeleteBranchCommand{actor: actor, branchID: branchID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteBranchCommand) Validate() error {
	return c.guard.Validate(ErrDeleteBranchCommandIsNotConstructed)
}

func (c DeleteBranchCommand) Actor() access.Actor   { return c.actor }
func (c DeleteBranchCommand) BranchID() kernel.UUID { return c.branchID }
