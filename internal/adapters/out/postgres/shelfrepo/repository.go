// Package shelfrepo appends shelf placements. Rows are never updated.
package shelfrepo

import (
	"context"
	"time"

	"forwarding/internal/adapters/out/postgres/pgerrs"
	"forwarding/internal/core/domain/model/shelf"
	"forwarding/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ ports.ShelfRepository = &GormShelfRepository{}

type PlacementDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ShelfCode string    `gorm:"type:varchar(16);not null"`
	PlacedAt  time.Time `gorm:"not null;index"`
	PlacedBy  uuid.UUID `gorm:"type:uuid;not null"`
}

func (PlacementDTO) TableName() string {
	return "shelf_placements"
}

type GormShelfRepository struct {
	db *gorm.DB
}

func NewGormShelfRepository(db *gorm.DB) *GormShelfRepository {
	return &GormShelfRepository{db: db}
}

func (r *GormShelfRepository) Add(ctx context.Context, placement *shelf.Placement) error {
	if err := placement.Validate(); err != nil {
		return err
	}

	dto := PlacementDTO{
		ID:        placement.ID().Bytes(),
		OrderID:   placement.OrderID().Bytes(),
		BranchID:  placement.BranchID().Bytes(),
		ShelfCode: placement.ShelfCode(),
		PlacedAt:  placement.PlacedAt(),
		PlacedBy:  placement.PlacedBy().Bytes(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Map("shelf placement", placement.ID(), err)
	}
	return nil
}
