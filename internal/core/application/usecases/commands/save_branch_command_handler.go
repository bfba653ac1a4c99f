package commands

import (
	"context"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/branch"
)

// CreateBranchCommandHandler registers a new branch.
type CreateBranchCommandHandler struct {
	uowFactory BranchUoWFactory
}

// NewCreateBranchCommandHandler wires the handler to its dependencies.
func NewCreateBranchCommandHandler(uowFactory BranchUoWFactory) CreateBranchCommandHandler {
	return CreateBranchCommandHandler{uowFactory: uowFactory}
}

func (h CreateBranchCommandHandler) Handle(ctx context.Context, cmd SaveBranchCommand) (*branch.Branch, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(cmd.Actor(), access.ManageBranches); err != nil {
		return nil, err
	}

	b, err := branch.NewBranch(cmd.BranchID(), cmd.Title(), cmd.Country(), cmd.Address())
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

	if err = uow.BranchRepository().Add(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

// UpdateBranchCommandHandler edits an existing branch.
type UpdateBranchCommandHandler struct {
	uowFactory BranchUoWFactory
}

// NewUpdateBranchCommandHandler wires the handler to its dependencies.
func NewUpdateBranchCommandHandler(uowFactory BranchUoWFactory) UpdateBranchCommandHandler {
	return UpdateBranchCommandHandler{uowFactory: uowFactory}
}

func (h UpdateBranchCommandHandler) Handle(ctx context.Context, cmd SaveBranchCommand) (*branch.Branch, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(cmd.Actor(), access.ManageBranches); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	branchRepo := uow.BranchRepository()
	b, err := branchRepo.Get(ctx, cmd.BranchID())
	if err != nil {
		return nil, err
	}

	if err = b.Edit(cmd.Title(), cmd.Country(), cmd.Address()); err != nil {
		return nil, err
	}

	if err = branchRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
