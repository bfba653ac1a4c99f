package commands

import (
	"context"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/branch"
)

// DeleteBranchCommandHandler removes a branch when the delete policy allows it.
type DeleteBranchCommandHandler struct {
	uowFactory BranchUoWFactory
	policy     branch.DeletePolicy
}

// NewDeleteBranchCommandHandler wires the handler to its dependencies.
func NewDeleteBranchCommandHandler(uowFactory BranchUoWFactory, policy branch.DeletePolicy) DeleteBranchCommandHandler {
	return DeleteBranchCommandHandler{uowFactory: uowFactory, policy: policy}
}

// Handle hard-deletes a branch after applying the configured delete policy.
func (h DeleteBranchCommandHandler) Handle(ctx context.Context, cmd DeleteBranchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := access.Require(cmd.Actor(), access.ManageBranches); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	branchRepo := uow.BranchRepository()
	b, err := branchRepo.Get(ctx, cmd.BranchID())
	if err != nil {
		return err
	}

	var refs branch.References
	if h.policy != branch.UnrestrictedDelete {
		if refs.LiveOrders, err = uow.OrderRepository().CountLiveByBranch(ctx, b.ID()); err != nil {
			return err
		}
		if refs.Bags, err = uow.BagRepository().CountByBranch(ctx, b.ID()); err != nil {
			return err
		}
	}
	if err = h.policy.CheckDelete(b, refs); err != nil {
		return err
	}

	if err = branchRepo.Delete(ctx, b.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
