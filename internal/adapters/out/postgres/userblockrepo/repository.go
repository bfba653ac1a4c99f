// Package userblockrepo appends user block records.
package userblockrepo

import (
	"context"
	"time"

	"forwarding/internal/adapters/out/postgres/pgerrs"
	"forwarding/internal/core/domain/model/userblock"
	"forwarding/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ ports.UserBlockRepository = &GormUserBlockRepository{}

type BlockDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BlockedBy uuid.UUID `gorm:"type:uuid;not null"`
	Reason    string    `gorm:"type:varchar(500);not null"`
	BlockedAt time.Time `gorm:"not null;index"`
}

func (BlockDTO) TableName() string {
	return "user_blocks"
}

type GormUserBlockRepository struct {
	db *gorm.DB
}

func NewGormUserBlockRepository(db *gorm.DB) *GormUserBlockRepository {
	return &GormUserBlockRepository{db: db}
}

func (r *GormUserBlockRepository) Add(ctx context.Context, block *userblock.Block) error {
	if err := block.Validate(); err != nil {
		return err
	}

	dto := BlockDTO{
		ID:        block.ID().Bytes(),
		UserID:    block.UserID().Bytes(),
		BlockedBy: block.BlockedBy().Bytes(),
		Reason:    block.Reason(),
		BlockedAt: block.BlockedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Map("user block", block.ID(), err)
	}
	return nil
}
