package queries

import (
	"context"
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/pkg/guard"
)

var ErrListBranchesQueryIsNotConstructed = errors.New(
	"ListBranchesQuery must be created via NewListBranchesQuery constructor",
)

type ListBranchesQuery struct {
	actor access.Actor

	guard guard.ConstructorGuard
}

func NewListBranchesQuery(actor access.Actor) (ListBranchesQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListBranchesQuery{}, err
	}
	return ListBranchesQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListBranchesQuery) Validate() error {
	return q.guard.Validate(ErrListBranchesQueryIsNotConstructed)
}

// ListBranchesQueryHandler lists branches.
type ListBranchesQueryHandler struct {
	readModel ReadModelFactory
}

// NewListBranchesQueryHandler wires the handler to its dependencies.
func NewListBranchesQueryHandler(readModel ReadModelFactory) ListBranchesQueryHandler {
	return ListBranchesQueryHandler{readModel: readModel}
}

func (h ListBranchesQueryHandler) Handle(ctx context.Context, query ListBranchesQuery) ([]*branch.Branch, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(query.actor, access.ViewBranches); err != nil {
		return nil, err
	}
	return h.readModel.Create().BranchRepository().List(ctx)
}
