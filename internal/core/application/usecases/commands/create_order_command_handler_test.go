package commands_test

import (
	"errors"
	"testing"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, actor access.Actor, ownerID, branchID kernel.UUID) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		actor, kernel.NewUUID(), ownerID, usAddress(t), geAddress(t, "Nino"), branchID, order.WalkInPickup, newItems(t, 1200),
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := newActor(t, access.User)
	b := newGeorgianBranch(t)
	cmd := newCreateOrderCommand(t, actor, actor.UserID, b.ID())

	orderRepo := new(MockOrderRepository)
	branchRepo := new(MockBranchRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branchRepo).Once(),
		branchRepo.On("Get", ctx, b.ID()).Return(b, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, fixedClock{now: testNow})
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.OrderID(), o.ID())
	assert.Equal(t, order.Placed, o.Status())
	assert.Equal(t, testNow, o.CreatedAt())
	orderRepo.AssertExpectations(t)
	branchRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{}
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, fixedClock{now: testNow})
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_UserCannotOrderForOthers(t *testing.T) {
	ctx := t.Context()
	actor := newActor(t, access.User)
	cmd := newCreateOrderCommand(t, actor, kernel.NewUUID(), kernel.NewUUID())
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, fixedClock{now: testNow})
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_UnknownBranch(t *testing.T) {
	ctx := t.Context()
	actor := newActor(t, access.Admin)
	branchID := kernel.NewUUID()
	cmd := newCreateOrderCommand(t, actor, kernel.NewUUID(), branchID)

	branchRepo := new(MockBranchRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branchRepo).Once(),
		branchRepo.On("Get", ctx, branchID).
			Return(nil, errs.NewObjectNotFoundError("branch", branchID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, fixedClock{now: testNow})
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "destination_branch_id")
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BranchInAnotherCountry(t *testing.T) {
	ctx := t.Context()
	actor := newActor(t, access.User)
	b := newUSBranch(t)
	cmd := newCreateOrderCommand(t, actor, actor.UserID, b.ID())

	branchRepo := new(MockBranchRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branchRepo).Once(),
		branchRepo.On("Get", ctx, b.ID()).Return(b, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, fixedClock{now: testNow})
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	actor := newActor(t, access.User)
	cmd := newCreateOrderCommand(t, actor, actor.UserID, kernel.NewUUID())

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errs.NewStoreUnavailableError(errors.New("begin error"))).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, fixedClock{now: testNow})
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	uow.AssertNotCalled(t, "Rollback", ctx)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	actor := newActor(t, access.User)
	b := newGeorgianBranch(t)
	cmd := newCreateOrderCommand(t, actor, actor.UserID, b.ID())

	orderRepo := new(MockOrderRepository)
	branchRepo := new(MockBranchRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BranchRepository").Return(branchRepo).Once(),
		branchRepo.On("Get", ctx, b.ID()).Return(b, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, fixedClock{now: testNow})
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
