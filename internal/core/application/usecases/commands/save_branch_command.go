package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrSaveBranchCommandIsNotConstructed = errors.New(
	"SaveBranchCommand must be created via NewSaveBranchCommand constructor",
)

// SaveBranchCommand carries the full attribute set of a branch. It serves
// both creation and editing.
type SaveBranchCommand struct {
	actor    access.Actor
	branchID kernel.UUID
	title    string
	country  kernel.Country
	address  kernel.Address

	guard guard.ConstructorGuard
}

func NewSaveBranchCommand(
	actor access.Actor,
	branchID kernel.UUID,
	title string,
	country kernel.Country,
	address kernel.Address,
) (SaveBranchCommand, error) {
	if err := errors.Join(actor.Validate(), branchID.Validate()); err != nil {
		return SaveBranchCommand{}, err
	}
	return SaveBranchCommand{
		actor:    actor,
		branchID: branchID,
		title:    title,
		country:  country,
		address:  address,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SaveBranchCommand) Validate() error {
	return c.guard.Validate(ErrSaveBranchCommandIsNotConstructed)
}

func (c SaveBranchCommand) Actor() access.Actor     { return c.actor }
func (c SaveBranchCommand) BranchID() kernel.UUID   { return c.branchID }
func (c SaveBranchCommand) Title() string           { return c.title }
func (c SaveBranchCommand) Country() kernel.Country { return c.country }
func (c SaveBranchCommand) Address() kernel.Address { return c.address }
