package commands_test

import (
	"errors"
	"sync"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/pkg/errs"
)

func (s *MemorySuite) combine(orderIDs ...kernel.UUID) (shipment.View, error) {
	cmd, err := commands.NewCombineOrdersCommand(s.admin, kernel.NewUUID(), orderIDs)
	s.Require().NoError(err)
	return commands.NewCombineOrdersCommandHandler(consolidationUoWs{s.store}, s.publisher, s.clock).
		Handle(s.T().Context(), cmd)
}

func (s *MemorySuite) decombine(shipmentID kernel.UUID) error {
	cmd, err := commands.NewDecombineShipmentCommand(s.admin, shipmentID)
	s.Require().NoError(err)
	return commands.NewDecombineShipmentCommandHandler(consolidationUoWs{s.store}, s.publisher, s.clock).
		Handle(s.T().Context(), cmd)
}

func (s *MemorySuite) TestCombine_LinksEveryMember() {
	a := s.placeOrder(s.customer, order.Delivery, 500)
	b := s.placeOrder(s.customer, order.Delivery, 700)
	s.advance(b.ID(), order.Bagged)

	view, err := s.combine(a.ID(), b.ID(), a.ID())

	s.Require().NoError(err)
	s.Len(view.Members, 2)
	s.Equal(order.Placed, view.Status)
	s.Equal(1200, view.TotalWeightGrams())
	for _, id := range []kernel.UUID{a.ID(), b.ID()} {
		link := s.load(id).CombinedShipmentID()
		s.Require().NotNil(link)
		s.Equal(view.Shipment.ID(), *link)
	}
	s.Equal(order.Bagged, s.load(b.ID()).Status())
	s.Contains(s.publisher.names(), "shipment.orders_combined")
}

func (s *MemorySuite) TestCombine_IsAllOrNothing() {
	a := s.placeOrder(s.customer, order.Delivery, 500)
	b := s.placeOrder(s.customer, order.Delivery, 500)
	c := s.placeOrder(s.customer, order.Delivery, 500)
	s.advance(c.ID(), order.InTransit)

	_, err := s.combine(a.ID(), b.ID(), c.ID())

	var incompatible *errs.IncompatibleOrdersError
	s.Require().ErrorAs(err, &incompatible)
	s.Equal([]string{c.ID().String()}, incompatible.OrderIDs)
	s.Nil(s.load(a.ID()).CombinedShipmentID())
	s.Nil(s.load(b.ID()).CombinedShipmentID())
}

func (s *MemorySuite) TestCombine_UnknownOrdersAreListed() {
	a := s.placeOrder(s.customer, order.Delivery, 500)
	ghost := kernel.NewUUID()

	_, err := s.combine(a.ID(), ghost)

	var incompatible *errs.IncompatibleOrdersError
	s.Require().ErrorAs(err, &incompatible)
	s.Equal([]string{ghost.String()}, incompatible.OrderIDs)
}

func (s *MemorySuite) TestCombine_OverlappingRequestsNeverBothSucceed() {
	a := s.placeOrder(s.customer, order.Delivery, 500)
	b := s.placeOrder(s.customer, order.Delivery, 500)
	c := s.placeOrder(s.customer, order.Delivery, 500)

	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make([]error, 2)
	)
	for i, ids := range [][]kernel.UUID{{a.ID(), b.ID()}, {b.ID(), c.ID()}} {
		cmd, err := commands.NewCombineOrdersCommand(s.admin, kernel.NewUUID(), ids)
		s.Require().NoError(err)
		h := commands.NewCombineOrdersCommandHandler(consolidationUoWs{s.store}, s.publisher, s.clock)

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, results[i] = h.Handle(s.T().Context(), cmd)
		}()
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		s.True(errors.Is(err, errs.ErrIncompatibleOrders) || errors.Is(err, errs.ErrConflict), err.Error())
	}
	s.Equal(1, succeeded)

	link := s.load(b.ID()).CombinedShipmentID()
	s.Require().NotNil(link)
	linked := 0
	for _, id := range []kernel.UUID{a.ID(), c.ID()} {
		if other := s.load(id).CombinedShipmentID(); other != nil {
			s.Equal(*link, *other)
			linked++
		}
	}
	s.Equal(1, linked)
}

func (s *MemorySuite) TestDecombine_ClearsLinksUntilShipped() {
	a := s.placeOrder(s.customer, order.Delivery, 500)
	b := s.placeOrder(s.customer, order.Delivery, 500)

	view, err := s.combine(a.ID(), b.ID())
	s.Require().NoError(err)
	s.Require().NoError(s.decombine(view.Shipment.ID()))

	s.Nil(s.load(a.ID()).CombinedShipmentID())
	s.Nil(s.load(b.ID()).CombinedShipmentID())
	_, err = s.store.Create().ShipmentRepository().Get(s.T().Context(), view.Shipment.ID())
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)

	view, err = s.combine(a.ID(), b.ID())
	s.Require().NoError(err)
	s.advance(a.ID(), order.InTransit)

	err = s.decombine(view.Shipment.ID())

	s.Require().ErrorIs(err, errs.ErrConflict)
	s.NotNil(s.load(b.ID()).CombinedShipmentID())
	s.Equal(order.InTransit, s.load(a.ID()).Status())
}
