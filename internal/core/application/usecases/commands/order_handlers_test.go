package commands_test

import (
	"testing"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(MemorySuite))
}

func (s *MemorySuite) TestTransition_OwnerCancelsPlacedOrder() {
	o := s.placeOrder(s.customer, order.Delivery, 500)

	got, err := s.transition(s.customer, o.ID(), order.Cancelled)

	s.Require().NoError(err)
	s.Equal(order.Cancelled, got.Status())
	s.Equal(order.Cancelled, s.load(o.ID()).Status())
	s.Equal([]string{"order.status_changed"}, s.publisher.names())
}

func (s *MemorySuite) TestTransition_OwnerCannotAdvanceOrCancelLate() {
	o := s.placeOrder(s.customer, order.Delivery, 500)

	_, err := s.transition(s.customer, o.ID(), order.ReceivedAtBranch)
	s.Require().ErrorIs(err, errs.ErrForbidden)

	s.advance(o.ID(), order.ReceivedAtBranch)

	_, err = s.transition(s.customer, o.ID(), order.Cancelled)
	s.Require().ErrorIs(err, errs.ErrForbidden)

	_, err = s.transition(s.admin, o.ID(), order.Cancelled)
	s.Require().NoError(err)
}

func (s *MemorySuite) TestTransition_RejectsSelfAndSkippedStages() {
	o := s.placeOrder(s.customer, order.Delivery, 500)

	_, err := s.transition(s.admin, o.ID(), order.Placed)
	s.Require().ErrorIs(err, errs.ErrInvalidTransition)

	_, err = s.transition(s.admin, o.ID(), order.InTransit)
	s.Require().ErrorIs(err, errs.ErrInvalidTransition)

	s.Equal(order.Placed, s.load(o.ID()).Status())
	s.Equal(o.Version(), s.load(o.ID()).Version())
	s.Empty(s.publisher.names())
}

func (s *MemorySuite) TestTransition_ForeignOrderLooksMissing() {
	o := s.placeOrder(s.customer, order.Delivery, 500)
	stranger := newActor(s.T(), s.customer.Role)

	_, err := s.transition(stranger, o.ID(), order.Cancelled)

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *MemorySuite) TestUpdateOrder_OnlyWhilePlaced() {
	ctx := s.T().Context()
	o := s.placeOrder(s.customer, order.Delivery, 500)
	h := commands.NewUpdateOrderCommandHandler(orderUoWs{s.store})
	pickup := order.WalkInPickup

	cmd, err := commands.NewUpdateOrderCommand(s.customer, o.ID(), newItems(s.T(), 2500), nil, &pickup)
	s.Require().NoError(err)
	updated, err := h.Handle(ctx, cmd)
	s.Require().NoError(err)
	s.Equal(order.WalkInPickup, updated.Fulfillment())
	s.Equal(2500, s.load(o.ID()).TotalWeightGrams())

	s.advance(o.ID(), order.ReceivedAtBranch)

	cmd, err = commands.NewUpdateOrderCommand(s.admin, o.ID(), newItems(s.T(), 100), nil, nil)
	s.Require().NoError(err)
	_, err = h.Handle(ctx, cmd)
	s.Require().ErrorIs(err, errs.ErrConflict)
	s.Equal(2500, s.load(o.ID()).TotalWeightGrams())
}

func (s *MemorySuite) TestUpdateOrder_EmptyPatchIsRejected() {
	_, err := commands.NewUpdateOrderCommand(s.customer, kernel.NewUUID(), nil, nil, nil)

	s.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func (s *MemorySuite) TestCreateOrder_RejectsMalformedInput() {
	cmd, err := commands.NewCreateOrderCommand(
		s.customer, kernel.NewUUID(), s.customer.UserID, usAddress(s.T()), geAddress(s.T(), "Nino"),
		s.geBranch.ID(), order.Delivery, nil,
	)
	s.Require().NoError(err)

	_, err = commands.NewCreateOrderCommandHandler(orderUoWs{s.store}, s.clock).Handle(s.T().Context(), cmd)

	s.Require().Error(err)
	s.True(errs.IsValidation(err))
}
