// Package flightrepo persists scheduled flights.
package flightrepo

import (
	"time"

	"forwarding/internal/core/domain/model/flight"
	"forwarding/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type FlightDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Number             string         `gorm:"type:varchar(12);not null"`
	DepartureDate      time.Time      `gorm:"type:date;not null;index"`
	OriginCountry      string         `gorm:"type:varchar(2);not null"`
	DestinationCountry string         `gorm:"type:varchar(2);not null"`
	BranchID           uuid.UUID      `gorm:"type:uuid;not null;index"`
	AirWaybills        pq.StringArray `gorm:"column:air_waybills;type:text[]"`
	CreatedAt          time.Time      `gorm:"not null"`
}

func (FlightDTO) TableName() string {
	return "flights"
}

func fromDomain(f *flight.Flight) FlightDTO {
	return FlightDTO{
		ID:                 f.ID().Bytes(),
		Number:             f.Number(),
		DepartureDate:      f.DepartureDate().StartIn(time.UTC),
		OriginCountry:      f.OriginCountry().String(),
		DestinationCountry: f.DestinationCountry().String(),
		BranchID:           f.BranchID().Bytes(),
		AirWaybills:        pq.StringArray(f.AirWaybills()),
		CreatedAt:          f.CreatedAt(),
	}
}

func toDomain(dto FlightDTO) (*flight.Flight, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	return flight.RestoreFlight(id, flight.Schedule{
		Number:             dto.Number,
		DepartureDate:      DayOfDate(dto.DepartureDate),
		OriginCountry:      kernel.Country(dto.OriginCountry),
		DestinationCountry: kernel.Country(dto.DestinationCountry),
		BranchID:           branchID,
		AirWaybills:        dto.AirWaybills,
	}, dto.CreatedAt)
}

// DayOfDate reads a postgres date column, which the driver returns as
// midnight UTC.
func DayOfDate(t time.Time) kernel.Day {
	return kernel.NewDay(t.Year(), t.Month(), t.Day())
}
