package memory

import (
	"forwarding/internal/core/domain/model/bag"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/domain/model/flight"
	"forwarding/internal/core/domain/model/order"
)

// The clone helpers rebuild aggregates through their restore constructors.
// The source is always a valid aggregate, so a failure is a programming error.

func cloneOrder(o *order.Order, version int64) *order.Order {
	c, err := order.RestoreOrder(
		o.ID(),
		o.OwnerID(),
		o.Status(),
		o.Origin(),
		o.Destination(),
		o.DestinationBranchID(),
		o.Fulfillment(),
		o.Items(),
		o.CombinedShipmentID(),
		o.CreatedAt(),
		o.StatusChangedAt(),
		o.HandedOverAt(),
		version,
	)
	if err != nil {
		panic(err)
	}
	return c
}

func cloneBranch(b *branch.Branch) *branch.Branch {
	c, err := branch.RestoreBranch(b.ID(), b.Title(), b.Country(), b.Address())
	if err != nil {
		panic(err)
	}
	return c
}

func cloneFlight(f *flight.Flight) *flight.Flight {
	c, err := flight.RestoreFlight(f.ID(), flight.Schedule{
		Number:             f.Number(),
		DepartureDate:      f.DepartureDate(),
		OriginCountry:      f.OriginCountry(),
		DestinationCountry: f.DestinationCountry(),
		BranchID:           f.BranchID(),
		AirWaybills:        f.AirWaybills(),
	}, f.CreatedAt())
	if err != nil {
		panic(err)
	}
	return c
}

func cloneBag(b *bag.Bag) *bag.Bag {
	c, err := bag.RestoreBag(
		b.ID(), b.Label(), b.BranchID(), b.MaxWeightGrams(), b.FlightID(), b.Contents(), b.CreatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return c
}
