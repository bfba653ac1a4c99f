package shipmentrepo

import (
	"context"

	"forwarding/internal/adapters/out/postgres/pgerrs"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.ShipmentRepository = &GormShipmentRepository{}

type GormShipmentRepository struct {
	db *gorm.DB
}

func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.CombinedShipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Map("combined shipment", aggregate.ID(), err)
	}
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.CombinedShipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if pgerrs.IsNotFound(err) {
			return nil, errs.NewObjectNotFoundError("combined shipment", id.String())
		}
		return nil, pgerrs.Map("combined shipment", id, err)
	}

	return toDomain(dto)
}

// List filters on the destination of the current members, since every
// member of a shipment heads to the same branch.
func (r *GormShipmentRepository) List(
	ctx context.Context,
	filter ports.ShipmentFilter,
) ([]*shipment.CombinedShipment, error) {
	query := r.db.WithContext(ctx).Model(&ShipmentDTO{})
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", *filter.CreatedTo)
	}
	if filter.DestinationBranchID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM orders o WHERE o.combined_shipment_id = combined_shipments.id AND o.destination_branch_id = ?)",
			filter.DestinationBranchID.Bytes(),
		)
	}

	var dtos []ShipmentDTO
	if err := query.Order("created_at DESC").Order("id DESC").Find(&dtos).Error; err != nil {
		return nil, pgerrs.Map("combined shipment", "list", err)
	}

	out := make([]*shipment.CombinedShipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerrs.Map("combined shipment", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("combined shipment", id.String())
	}
	return nil
}
