// Package shipmentrepo persists combined shipments. Membership lives on the
// orders table; the member_ids column only records the ids the shipment was
// created with.
package shipmentrepo

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ShipmentDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CreatedBy uuid.UUID      `gorm:"type:uuid;not null"`
	MemberIDs pq.StringArray `gorm:"column:member_ids;type:text[];not null"`
	CreatedAt time.Time      `gorm:"not null;index"`
}

func (ShipmentDTO) TableName() string {
	return "combined_shipments"
}

func fromDomain(s *shipment.CombinedShipment) ShipmentDTO {
	members := make(pq.StringArray, 0, len(s.MemberIDs()))
	for _, id := range s.MemberIDs() {
		members = append(members, id.String())
	}

	return ShipmentDTO{
		ID:        s.ID().Bytes(),
		CreatedBy: s.CreatedBy().Bytes(),
		MemberIDs: members,
		CreatedAt: s.CreatedAt(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.CombinedShipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	members := make([]kernel.UUID, 0, len(dto.MemberIDs))
	for _, raw := range dto.MemberIDs {
		memberID, memberErr := kernel.UUIDFromString(raw)
		if memberErr != nil {
			return nil, memberErr
		}
		members = append(members, memberID)
	}

	return shipment.RestoreCombinedShipment(id, createdBy, members, dto.CreatedAt)
}
