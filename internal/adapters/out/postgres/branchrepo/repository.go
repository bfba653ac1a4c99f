package branchrepo

import (
	"context"

	"forwarding/internal/adapters/out/postgres/pgerrs"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.BranchRepository = &GormBranchRepository{}

type GormBranchRepository struct {
	db *gorm.DB
}

func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

func (r *GormBranchRepository) Add(ctx context.Context, aggregate *branch.Branch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Map("branch", aggregate.ID(), err)
	}
	return nil
}

func (r *GormBranchRepository) Update(ctx context.Context, aggregate *branch.Branch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&BranchDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return pgerrs.Map("branch", aggregate.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("branch", aggregate.ID().String())
	}
	return nil
}

func (r *GormBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BranchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if pgerrs.IsNotFound(err) {
			return nil, errs.NewObjectNotFoundError("branch", id.String())
		}
		return nil, pgerrs.Map("branch", id, err)
	}

	return toDomain(dto)
}

func (r *GormBranchRepository) List(ctx context.Context) ([]*branch.Branch, error) {
	var dtos []BranchDTO
	if err := r.db.WithContext(ctx).Order("title").Order("id").Find(&dtos).Error; err != nil {
		return nil, pgerrs.Map("branch", "list", err)
	}

	out := make([]*branch.Branch, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *GormBranchRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&BranchDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerrs.Map("branch", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("branch", id.String())
	}
	return nil
}
