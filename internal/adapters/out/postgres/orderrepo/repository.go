package orderrepo

import (
	"context"

	"forwarding/internal/adapters/out/postgres/pgerrs"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.OrderRepository = &GormOrderRepository{}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Map("order", aggregate.ID(), err)
	}
	return nil
}

// Update is a compare-and-swap on the version column. Every column is
// written so that clearing the shipment link reaches the row. A link is only
// written over an unlinked row or the same link.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	query := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version())
	if dto.CombinedShipmentID != nil {
		query = query.Where("(combined_shipment_id IS NULL OR combined_shipment_id = ?)", *dto.CombinedShipmentID)
	}

	result := query.
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerrs.Map("order", aggregate.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if pgerrs.IsNotFound(err) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerrs.Map("order", id, err)
	}

	return toDomain(dto)
}

// GetForUpdate takes row locks in primary key order so two overlapping
// combinations queue up instead of deadlocking.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	if len(ids) == 0 {
		return []*order.Order{}, nil
	}

	raw := make([]any, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", raw).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerrs.Map("order", "batch", err)
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) ListByOwner(
	ctx context.Context,
	ownerID kernel.UUID,
	page *ports.Page,
) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID.Bytes()).
		Order("created_at DESC").
		Order("id DESC")
	if page != nil {
		if page.Limit > 0 {
			query = query.Limit(page.Limit)
		}
		query = query.Offset(page.Offset)
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, pgerrs.Map("order", ownerID, err)
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("combined_shipment_id = ?", shipmentID.Bytes()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerrs.Map("combined shipment", shipmentID, err)
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) CountLiveByBranch(ctx context.Context, branchID kernel.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("destination_branch_id = ?", branchID.Bytes()).
		Where("status NOT IN ?", []string{order.Completed.String(), order.Cancelled.String()}).
		Count(&n).Error
	if err != nil {
		return 0, pgerrs.Map("branch", branchID, err)
	}
	return n, nil
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&n).Error; err != nil {
		return pgerrs.Map("order", id, err)
	}
	if n == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewConflictError("order", id, "was modified concurrently")
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
