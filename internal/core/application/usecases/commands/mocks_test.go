package commands_test

import (
	"context"
	"time"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListByOwner(
	ctx context.Context,
	ownerID kernel.UUID,
	page *ports.Page,
) ([]*order.Order, error) {
	args := m.Called(ctx, ownerID, page)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, shipmentID)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) CountLiveByBranch(ctx context.Context, branchID kernel.UUID) (int64, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).(int64), args.Error(1)
}

type MockBranchRepository struct{ mock.Mock }

func (m *MockBranchRepository) Add(ctx context.Context, b *branch.Branch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBranchRepository) Update(ctx context.Context, b *branch.Branch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*branch.Branch)
	return b, args.Error(1)
}

func (m *MockBranchRepository) List(ctx context.Context) ([]*branch.Branch, error) {
	args := m.Called(ctx)
	branches, _ := args.Get(0).([]*branch.Branch)
	return branches, args.Error(1)
}

func (m *MockBranchRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) BranchRepository() ports.BranchRepository {
	args := m.Called()
	return args.Get(0).(ports.BranchRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...ports.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }
