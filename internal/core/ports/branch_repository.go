package ports

import (
	"context"

	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/domain/model/kernel"
)

type BranchRepository interface {
	Add(ctx context.Context, aggregate *branch.Branch) error
	Update(ctx context.Context, aggregate *branch.Branch) error
	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)
	// List returns every branch ordered by title.
	List(ctx context.Context) ([]*branch.Branch, error)
	Delete(ctx context.Context, id kernel.UUID) error
}
