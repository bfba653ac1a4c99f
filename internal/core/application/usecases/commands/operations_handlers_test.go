package commands_test

import (
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/bag"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/domain/model/flight"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"
)

func (s *MemorySuite) createBag(label string, branchID kernel.UUID, maxWeightGrams int) *bag.Bag {
	cmd, err := commands.NewSaveBagCommand(s.admin, kernel.NewUUID(), label, branchID, maxWeightGrams)
	s.Require().NoError(err)
	b, err := commands.NewSaveBagCommandHandler(operationsUoWs{s.store}, s.clock).Create(s.T().Context(), cmd)
	s.Require().NoError(err)
	return b
}

func (s *MemorySuite) addToBag(bagID, orderID kernel.UUID) (*bag.Bag, error) {
	cmd, err := commands.NewAddOrderToBagCommand(s.admin, bagID, orderID)
	s.Require().NoError(err)
	return commands.NewAddOrderToBagCommandHandler(operationsUoWs{s.store}, s.publisher, s.clock).
		Handle(s.T().Context(), cmd)
}

func (s *MemorySuite) schedule(origin, destination kernel.Country, branchID kernel.UUID) flight.Schedule {
	return flight.Schedule{
		Number:             "tk378",
		DepartureDate:      kernel.NewDay(2024, time.March, 18),
		OriginCountry:      origin,
		DestinationCountry: destination,
		BranchID:           branchID,
		AirWaybills:        []string{"235-12345678"},
	}
}

func (s *MemorySuite) createFlight(schedule flight.Schedule) (*flight.Flight, error) {
	cmd, err := commands.NewSaveFlightCommand(s.admin, kernel.NewUUID(), schedule)
	s.Require().NoError(err)
	return commands.NewSaveFlightCommandHandler(operationsUoWs{s.store}, s.clock).Create(s.T().Context(), cmd)
}

func (s *MemorySuite) TestAddOrderToBag_BagsReceivedOrder() {
	o := s.placeOrder(s.customer, order.Delivery, 1200)
	s.advance(o.ID(), order.ReceivedAtBranch)
	b := s.createBag("US-0001", s.usBranch.ID(), 2000)

	packed, err := s.addToBag(b.ID(), o.ID())

	s.Require().NoError(err)
	s.True(packed.Contains(o.ID()))
	s.Equal(1200, packed.LoadGrams())
	s.Equal(order.Bagged, s.load(o.ID()).Status())
	s.Equal("order.status_changed", s.publisher.names()[len(s.publisher.names())-1])
}

func (s *MemorySuite) TestAddOrderToBag_Rejections() {
	placed := s.placeOrder(s.customer, order.Delivery, 500)
	heavy := s.placeOrder(s.customer, order.Delivery, 1500)
	first := s.placeOrder(s.customer, order.Delivery, 1200)
	s.advance(heavy.ID(), order.ReceivedAtBranch)
	s.advance(first.ID(), order.ReceivedAtBranch)

	usBag := s.createBag("US-0002", s.usBranch.ID(), 2000)
	geBag := s.createBag("GE-0001", s.geBranch.ID(), 2000)

	_, err := s.addToBag(usBag.ID(), placed.ID())
	s.Require().ErrorIs(err, errs.ErrConflict, "order not yet received")

	_, err = s.addToBag(geBag.ID(), first.ID())
	s.Require().ErrorIs(err, errs.ErrConflict, "bag outside the origin country")

	_, err = s.addToBag(usBag.ID(), first.ID())
	s.Require().NoError(err)

	_, err = s.addToBag(usBag.ID(), heavy.ID())
	s.Require().ErrorIs(err, errs.ErrConflict, "capacity exceeded")
	s.Equal(order.ReceivedAtBranch, s.load(heavy.ID()).Status())

	other := s.createBag("US-0003", s.usBranch.ID(), 5000)
	_, err = s.addToBag(other.ID(), first.ID())
	s.Require().ErrorIs(err, errs.ErrConflict, "already packed elsewhere")
}

func (s *MemorySuite) TestAssignBagToFlight_MatchesOriginCountry() {
	ctx := s.T().Context()
	o := s.placeOrder(s.customer, order.Delivery, 800)
	s.advance(o.ID(), order.ReceivedAtBranch)
	b := s.createBag("US-0004", s.usBranch.ID(), 10000)
	_, err := s.addToBag(b.ID(), o.ID())
	s.Require().NoError(err)

	outbound, err := s.createFlight(s.schedule(kernel.CountryUS, kernel.CountryGE, s.usBranch.ID()))
	s.Require().NoError(err)
	s.Equal("TK378", outbound.Number())
	inbound, err := s.createFlight(s.schedule(kernel.CountryGE, kernel.CountryUS, s.geBranch.ID()))
	s.Require().NoError(err)

	h := commands.NewAssignBagToFlightCommandHandler(operationsUoWs{s.store})

	cmd, err := commands.NewAssignBagToFlightCommand(s.admin, b.ID(), inbound.ID())
	s.Require().NoError(err)
	_, err = h.Handle(ctx, cmd)
	s.Require().ErrorIs(err, errs.ErrConflict)

	cmd, err = commands.NewAssignBagToFlightCommand(s.admin, b.ID(), outbound.ID())
	s.Require().NoError(err)
	loaded, err := h.Handle(ctx, cmd)
	s.Require().NoError(err)
	s.Require().NotNil(loaded.FlightID())
	s.Equal(outbound.ID(), *loaded.FlightID())
}

func (s *MemorySuite) TestSaveFlight_BranchMustExistInOriginCountry() {
	_, err := s.createFlight(s.schedule(kernel.CountryUS, kernel.CountryGE, s.geBranch.ID()))
	s.Require().ErrorIs(err, errs.ErrValueIsInvalid)

	_, err = s.createFlight(s.schedule(kernel.CountryUS, kernel.CountryGE, kernel.NewUUID()))
	s.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (s *MemorySuite) TestShelveOrder_PickupOrdersOnly() {
	ctx := s.T().Context()
	pickup := s.placeOrder(s.customer, order.WalkInPickup, 800)
	door := s.placeOrder(s.customer, order.Delivery, 800)
	early := s.placeOrder(s.customer, order.SelfService, 800)
	s.advance(pickup.ID(), order.DeliveredOrReadyForPickup)
	s.advance(door.ID(), order.DeliveredOrReadyForPickup)

	h := commands.NewShelveOrderCommandHandler(operationsUoWs{s.store}, s.clock)

	cmd, err := commands.NewShelveOrderCommand(s.admin, kernel.NewUUID(), pickup.ID(), "a-12")
	s.Require().NoError(err)
	p, err := h.Handle(ctx, cmd)
	s.Require().NoError(err)
	s.Equal("A-12", p.ShelfCode())
	s.Equal(s.geBranch.ID(), p.BranchID())

	cmd, err = commands.NewShelveOrderCommand(s.admin, kernel.NewUUID(), door.ID(), "A-13")
	s.Require().NoError(err)
	_, err = h.Handle(ctx, cmd)
	s.Require().ErrorIs(err, errs.ErrConflict)

	cmd, err = commands.NewShelveOrderCommand(s.admin, kernel.NewUUID(), early.ID(), "A-14")
	s.Require().NoError(err)
	_, err = h.Handle(ctx, cmd)
	s.Require().ErrorIs(err, errs.ErrConflict)
}

func (s *MemorySuite) TestBlockUser_SuperOnly() {
	ctx := s.T().Context()
	h := commands.NewBlockUserCommandHandler(userBlockUoWs{s.store}, s.clock)

	cmd, err := commands.NewBlockUserCommand(s.admin, kernel.NewUUID(), s.customer.UserID, "chargeback fraud")
	s.Require().NoError(err)
	_, err = h.Handle(ctx, cmd)
	s.Require().ErrorIs(err, errs.ErrForbidden)

	cmd, err = commands.NewBlockUserCommand(s.super, kernel.NewUUID(), s.customer.UserID, "chargeback fraud")
	s.Require().NoError(err)
	b, err := h.Handle(ctx, cmd)
	s.Require().NoError(err)
	s.Equal(s.super.UserID, b.BlockedBy())
	s.Equal(testNow, b.BlockedAt())
}

func (s *MemorySuite) TestDeleteBranch_Policies() {
	ctx := s.T().Context()
	s.placeOrder(s.customer, order.Delivery, 500)

	cmd, err := commands.NewDeleteBranchCommand(s.admin, s.geBranch.ID())
	s.Require().NoError(err)

	err = commands.NewDeleteBranchCommandHandler(branchUoWs{s.store}, branch.RestrictDelete).Handle(ctx, cmd)
	s.Require().ErrorIs(err, errs.ErrConflict)

	err = commands.NewDeleteBranchCommandHandler(branchUoWs{s.store}, branch.UnrestrictedDelete).Handle(ctx, cmd)
	s.Require().NoError(err)

	_, err = s.store.Create().BranchRepository().Get(ctx, s.geBranch.ID())
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *MemorySuite) TestUpdateBranch_EditsInPlace() {
	address, err := kernel.NewAddress(kernel.CountryGE, "Tbilisi", "2 Pekini Ave", "0160", "Saburtalo office")
	s.Require().NoError(err)
	cmd, err := commands.NewSaveBranchCommand(s.admin, s.geBranch.ID(), "Tbilisi Saburtalo", kernel.CountryGE, address)
	s.Require().NoError(err)

	updated, err := commands.NewUpdateBranchCommandHandler(branchUoWs{s.store}).Handle(s.T().Context(), cmd)

	s.Require().NoError(err)
	s.Equal("Tbilisi Saburtalo", updated.Title())
	stored, err := s.store.Create().BranchRepository().Get(s.T().Context(), s.geBranch.ID())
	s.Require().NoError(err)
	s.Equal("2 Pekini Ave", stored.Address().Line())
}

// Every staff-only operation answers Forbidden to a customer before touching
// any entity.
func (s *MemorySuite) TestUserIsForbiddenForEveryAdminAction() {
	ctx := s.T().Context()
	own := s.placeOrder(s.customer, order.Delivery, 500)
	user := s.customer
	newID := kernel.NewUUID

	attempts := map[string]func() error{
		"advance own order": func() error {
			_, err := s.transition(user, own.ID(), order.ReceivedAtBranch)
			return err
		},
		"create order for another user": func() error {
			cmd, err := commands.NewCreateOrderCommand(user, newID(), newID(), usAddress(s.T()), geAddress(s.T(), "Nino"),
				s.geBranch.ID(), order.Delivery, newItems(s.T(), 100))
			s.Require().NoError(err)
			_, err = commands.NewCreateOrderCommandHandler(orderUoWs{s.store}, s.clock).Handle(ctx, cmd)
			return err
		},
		"combine": func() error {
			cmd, err := commands.NewCombineOrdersCommand(user, newID(), []kernel.UUID{own.ID(), newID()})
			s.Require().NoError(err)
			_, err = commands.NewCombineOrdersCommandHandler(consolidationUoWs{s.store}, s.publisher, s.clock).Handle(ctx, cmd)
			return err
		},
		"decombine": func() error {
			cmd, err := commands.NewDecombineShipmentCommand(user, newID())
			s.Require().NoError(err)
			return commands.NewDecombineShipmentCommandHandler(consolidationUoWs{s.store}, s.publisher, s.clock).Handle(ctx, cmd)
		},
		"create branch": func() error {
			cmd, err := commands.NewSaveBranchCommand(user, newID(), "Kutaisi", kernel.CountryGE, geAddress(s.T(), "Kutaisi"))
			s.Require().NoError(err)
			_, err = commands.NewCreateBranchCommandHandler(branchUoWs{s.store}).Handle(ctx, cmd)
			return err
		},
		"update branch": func() error {
			cmd, err := commands.NewSaveBranchCommand(user, s.geBranch.ID(), "Renamed", kernel.CountryGE, geAddress(s.T(), "x"))
			s.Require().NoError(err)
			_, err = commands.NewUpdateBranchCommandHandler(branchUoWs{s.store}).Handle(ctx, cmd)
			return err
		},
		"delete branch": func() error {
			cmd, err := commands.NewDeleteBranchCommand(user, s.usBranch.ID())
			s.Require().NoError(err)
			return commands.NewDeleteBranchCommandHandler(branchUoWs{s.store}, branch.UnrestrictedDelete).Handle(ctx, cmd)
		},
		"create flight": func() error {
			cmd, err := commands.NewSaveFlightCommand(user, newID(), s.schedule(kernel.CountryUS, kernel.CountryGE, s.usBranch.ID()))
			s.Require().NoError(err)
			_, err = commands.NewSaveFlightCommandHandler(operationsUoWs{s.store}, s.clock).Create(ctx, cmd)
			return err
		},
		"create bag": func() error {
			cmd, err := commands.NewSaveBagCommand(user, newID(), "US-9999", s.usBranch.ID(), 1000)
			s.Require().NoError(err)
			_, err = commands.NewSaveBagCommandHandler(operationsUoWs{s.store}, s.clock).Create(ctx, cmd)
			return err
		},
		"add order to bag": func() error {
			cmd, err := commands.NewAddOrderToBagCommand(user, newID(), own.ID())
			s.Require().NoError(err)
			_, err = commands.NewAddOrderToBagCommandHandler(operationsUoWs{s.store}, s.publisher, s.clock).Handle(ctx, cmd)
			return err
		},
		"assign bag to flight": func() error {
			cmd, err := commands.NewAssignBagToFlightCommand(user, newID(), newID())
			s.Require().NoError(err)
			_, err = commands.NewAssignBagToFlightCommandHandler(operationsUoWs{s.store}).Handle(ctx, cmd)
			return err
		},
		"shelve order": func() error {
			cmd, err := commands.NewShelveOrderCommand(user, newID(), own.ID(), "B-1")
			s.Require().NoError(err)
			_, err = commands.NewShelveOrderCommandHandler(operationsUoWs{s.store}, s.clock).Handle(ctx, cmd)
			return err
		},
		"block user": func() error {
			cmd, err := commands.NewBlockUserCommand(user, newID(), newID(), "spam")
			s.Require().NoError(err)
			_, err = commands.NewBlockUserCommandHandler(userBlockUoWs{s.store}, s.clock).Handle(ctx, cmd)
			return err
		},
	}

	for name, attempt := range attempts {
		s.Run(name, func() {
			s.Require().ErrorIs(attempt(), errs.ErrForbidden)
		})
	}

	for _, a := range access.Actions() {
		minimum, _ := access.MinimumRole(a)
		if minimum > access.User {
			s.False(access.Authorize(access.User, a), string(a))
		}
	}
	s.Equal(order.Placed, s.load(own.ID()).Status())
}
