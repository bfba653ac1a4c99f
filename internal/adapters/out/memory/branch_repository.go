package memory

import (
	"context"
	"sort"

	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

var _ ports.BranchRepository = &BranchRepository{}

type BranchRepository struct {
	uow *UnitOfWork
}

func (r *BranchRepository) Add(ctx context.Context, aggregate *branch.Branch) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	if _, exists := st.branches[aggregate.ID()]; exists {
		return errs.NewConflictError("branch", aggregate.ID(), "already exists")
	}
	st.branches[aggregate.ID()] = cloneBranch(aggregate)
	return nil
}

func (r *BranchRepository) Update(ctx context.Context, aggregate *branch.Branch) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	if _, ok := st.branches[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("branch", aggregate.ID().String())
	}
	st.branches[aggregate.ID()] = cloneBranch(aggregate)
	return nil
}

func (r *BranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	st, err := r.uow.read(ctx)
	if err != nil {
		return nil, err
	}
	b, ok := st.branches[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("branch", id.String())
	}
	return cloneBranch(b), nil
}

func (r *BranchRepository) List(ctx context.Context) ([]*branch.Branch, error) {
	st, err := r.uow.read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*branch.Branch, 0, len(st.branches))
	for _, b := range st.branches {
		out = append(out, cloneBranch(b))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title() != out[j].Title() {
			return out[i].Title() < out[j].Title()
		}
		return out[i].ID().Less(out[j].ID())
	})
	return out, nil
}

func (r *BranchRepository) Delete(ctx context.Context, id kernel.UUID) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	if _, ok := st.branches[id]; !ok {
		return errs.NewObjectNotFoundError("branch", id.String())
	}
	delete(st.branches, id)
	return nil
}
