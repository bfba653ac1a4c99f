package bagrepo

import (
	"context"
	"errors"

	"forwarding/internal/adapters/out/postgres/pgerrs"
	"forwarding/internal/core/domain/model/bag"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var _ ports.BagRepository = &GormBagRepository{}

type GormBagRepository struct {
	db *gorm.DB
}

func NewGormBagRepository(db *gorm.DB) *GormBagRepository {
	return &GormBagRepository{db: db}
}

func (r *GormBagRepository) Add(ctx context.Context, aggregate *bag.Bag) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Contents").Create(&dto).Error; err != nil {
			return pgerrs.Map("bag", aggregate.ID(), err)
		}
		return r.writeContents(tx, aggregate)
	})
	if err != nil {
		return err
	}
	return nil
}

// Update rewrites the bag row and replaces its contents. The nested
// transaction becomes a savepoint inside the unit of work.
func (r *GormBagRepository) Update(ctx context.Context, aggregate *bag.Bag) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&BagDTO{}).
			Where("id = ?", dto.ID).
			Select("label", "max_weight_grams", "flight_id").
			Updates(&dto)
		if result.Error != nil {
			return pgerrs.Map("bag", aggregate.ID(), result.Error)
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("bag", aggregate.ID().String())
		}

		if err := tx.Where("bag_id = ?", dto.ID).Delete(&BagContentDTO{}).Error; err != nil {
			return pgerrs.Map("bag", aggregate.ID(), err)
		}
		return r.writeContents(tx, aggregate)
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *GormBagRepository) Get(ctx context.Context, id kernel.UUID) (*bag.Bag, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BagDTO
	err := r.db.WithContext(ctx).
		Preload("Contents", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if pgerrs.IsNotFound(err) {
			return nil, errs.NewObjectNotFoundError("bag", id.String())
		}
		return nil, pgerrs.Map("bag", id, err)
	}

	return toDomain(dto)
}

func (r *GormBagRepository) CountByBranch(ctx context.Context, branchID kernel.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&BagDTO{}).Where("branch_id = ?", branchID.Bytes()).Count(&n).Error
	if err != nil {
		return 0, pgerrs.Map("branch", branchID, err)
	}
	return n, nil
}

func (r *GormBagRepository) writeContents(tx *gorm.DB, aggregate *bag.Bag) error {
	contents := contentsFromDomain(aggregate)
	if len(contents) == 0 {
		return nil
	}
	for _, c := range contents {
		if err := tx.Create(&c).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrs.UniqueViolation {
				return errs.NewConflictError("order", c.OrderID, "is already packed in another bag")
			}
			return pgerrs.Map("bag", aggregate.ID(), err)
		}
	}
	return nil
}
