// Package orderrepo persists order aggregates. Items are kept in a jsonb
// column; both address snapshots are embedded in the order row.
package orderrepo

import (
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Status and destination branch are indexed for
// the listing and branch-delete queries.
type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status              string     `gorm:"type:varchar(40);not null;index"`
	Origin              AddressDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination         AddressDTO `gorm:"embedded;embeddedPrefix:destination_"`
	DestinationBranchID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Fulfillment         string     `gorm:"type:varchar(20);not null"`
	Items               []ItemDTO  `gorm:"type:jsonb;serializer:json;not null"`
	CombinedShipmentID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt           time.Time  `gorm:"not null;index"`
	StatusChangedAt     time.Time  `gorm:"not null"`
	HandedOverAt        *time.Time `gorm:"index"`
	Version             int64      `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is an address snapshot embedded in the owning row.
type AddressDTO struct {
	Country    string `gorm:"type:varchar(2);not null"`
	City       string `gorm:"not null"`
	Line       string `gorm:"not null"`
	PostalCode string
	Recipient  string `gorm:"not null"`
}

type ItemDTO struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	WeightGrams int    `json:"weight_grams"`
	LengthCm    int    `json:"length_cm,omitempty"`
	WidthCm     int    `json:"width_cm,omitempty"`
	HeightCm    int    `json:"height_cm,omitempty"`
}

func AddressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Country:    a.Country().String(),
		City:       a.City(),
		Line:       a.Line(),
		PostalCode: a.PostalCode(),
		Recipient:  a.Recipient(),
	}
}

func (a AddressDTO) ToDomain() (kernel.Address, error) {
	return kernel.NewAddress(kernel.Country(a.Country), a.City, a.Line, a.PostalCode, a.Recipient)
}

func fromDomain(o *order.Order) OrderDTO {
	var shipmentID *uuid.UUID
	if id := o.CombinedShipmentID(); id != nil {
		raw := id.Bytes()
		shipmentID = &raw
	}

	items := make([]ItemDTO, 0, len(o.Items()))
	for _, it := range o.Items() {
		dim := it.Dimensions()
		items = append(items, ItemDTO{
			Description: it.Description(),
			Quantity:    it.Quantity(),
			WeightGrams: it.WeightGrams(),
			LengthCm:    dim.LengthCm,
			WidthCm:     dim.WidthCm,
			HeightCm:    dim.HeightCm,
		})
	}

	return OrderDTO{
		ID:                  o.ID().Bytes(),
		OwnerID:             o.OwnerID().Bytes(),
		Status:              o.Status().String(),
		Origin:              AddressFromDomain(o.Origin()),
		Destination:         AddressFromDomain(o.Destination()),
		DestinationBranchID: o.DestinationBranchID().Bytes(),
		Fulfillment:         o.Fulfillment().String(),
		Items:               items,
		CombinedShipmentID:  shipmentID,
		CreatedAt:           o.CreatedAt(),
		StatusChangedAt:     o.StatusChangedAt(),
		HandedOverAt:        o.HandedOverAt(),
		Version:             o.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.DestinationBranchID[:])
	if err != nil {
		return nil, err
	}

	var shipmentID *kernel.UUID
	if dto.CombinedShipmentID != nil {
		sID, shipmentErr := kernel.UUIDFromBytes((*dto.CombinedShipmentID)[:])
		if shipmentErr != nil {
			return nil, shipmentErr
		}
		shipmentID = &sID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	origin, originErr := dto.Origin.ToDomain()
	destination, destinationErr := dto.Destination.ToDomain()
	if err := errors.Join(originErr, destinationErr); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		item, itemErr := order.NewItem(it.Description, it.Quantity, it.WeightGrams, order.Dimensions{
			LengthCm: it.LengthCm,
			WidthCm:  it.WidthCm,
			HeightCm: it.HeightCm,
		})
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		ownerID,
		status,
		origin,
		destination,
		branchID,
		order.Fulfillment(dto.Fulfillment),
		items,
		shipmentID,
		dto.CreatedAt,
		dto.StatusChangedAt,
		dto.HandedOverAt,
		dto.Version,
	)
}
