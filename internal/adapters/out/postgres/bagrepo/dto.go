// Package bagrepo persists bags. Contents go to a child table keyed by
// order id, so the database itself refuses to pack one order twice.
package bagrepo

import (
	"time"

	"forwarding/internal/core/domain/model/bag"
	"forwarding/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type BagDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Label          string          `gorm:"type:varchar(40);not null"`
	BranchID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaxWeightGrams int             `gorm:"not null"`
	FlightID       *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt      time.Time       `gorm:"not null;index"`
	Contents       []BagContentDTO `gorm:"foreignKey:BagID;constraint:OnDelete:CASCADE"`
}

func (BagDTO) TableName() string {
	return "bags"
}

type BagContentDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	BagID       uuid.UUID `gorm:"type:uuid;not null;index"`
	WeightGrams int       `gorm:"not null"`
	Position    int       `gorm:"not null"`
}

func (BagContentDTO) TableName() string {
	return "bag_orders"
}

func fromDomain(b *bag.Bag) BagDTO {
	var flightID *uuid.UUID
	if id := b.FlightID(); id != nil {
		raw := id.Bytes()
		flightID = &raw
	}

	return BagDTO{
		ID:             b.ID().Bytes(),
		Label:          b.Label(),
		BranchID:       b.BranchID().Bytes(),
		MaxWeightGrams: b.MaxWeightGrams(),
		FlightID:       flightID,
		CreatedAt:      b.CreatedAt(),
	}
}

func contentsFromDomain(b *bag.Bag) []BagContentDTO {
	contents := b.Contents()
	out := make([]BagContentDTO, 0, len(contents))
	for i, c := range contents {
		out = append(out, BagContentDTO{
			OrderID:     c.OrderID.Bytes(),
			BagID:       b.ID().Bytes(),
			WeightGrams: c.WeightGrams,
			Position:    i,
		})
	}
	return out
}

func toDomain(dto BagDTO) (*bag.Bag, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	var flightID *kernel.UUID
	if dto.FlightID != nil {
		fID, flightErr := kernel.UUIDFromBytes((*dto.FlightID)[:])
		if flightErr != nil {
			return nil, flightErr
		}
		flightID = &fID
	}

	contents := make([]bag.Content, 0, len(dto.Contents))
	for _, c := range dto.Contents {
		orderID, orderErr := kernel.UUIDFromBytes(c.OrderID[:])
		if orderErr != nil {
			return nil, orderErr
		}
		contents = append(contents, bag.Content{OrderID: orderID, WeightGrams: c.WeightGrams})
	}

	return bag.RestoreBag(id, dto.Label, branchID, dto.MaxWeightGrams, flightID, contents, dto.CreatedAt)
}
