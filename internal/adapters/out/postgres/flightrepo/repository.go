package flightrepo

import (
	"context"

	"forwarding/internal/adapters/out/postgres/pgerrs"
	"forwarding/internal/core/domain/model/flight"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.FlightRepository = &GormFlightRepository{}

type GormFlightRepository struct {
	db *gorm.DB
}

func NewGormFlightRepository(db *gorm.DB) *GormFlightRepository {
	return &GormFlightRepository{db: db}
}

func (r *GormFlightRepository) Add(ctx context.Context, aggregate *flight.Flight) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Map("flight", aggregate.ID(), err)
	}
	return nil
}

func (r *GormFlightRepository) Update(ctx context.Context, aggregate *flight.Flight) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&FlightDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerrs.Map("flight", aggregate.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("flight", aggregate.ID().String())
	}
	return nil
}

func (r *GormFlightRepository) Get(ctx context.Context, id kernel.UUID) (*flight.Flight, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FlightDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if pgerrs.IsNotFound(err) {
			return nil, errs.NewObjectNotFoundError("flight", id.String())
		}
		return nil, pgerrs.Map("flight", id, err)
	}

	return toDomain(dto)
}
