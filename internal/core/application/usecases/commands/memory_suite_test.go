package commands_test

import (
	"context"
	"sync"

	"forwarding/internal/adapters/out/memory"
	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"

	"github.com/stretchr/testify/suite"
)

type orderUoWs struct{ store *memory.Store }

func (f orderUoWs) Create() commands.OrderUoW { return f.store.Create() }

type consolidationUoWs struct{ store *memory.Store }

func (f consolidationUoWs) Create() commands.ConsolidationUoW { return f.store.Create() }

type branchUoWs struct{ store *memory.Store }

func (f branchUoWs) Create() commands.BranchUoW { return f.store.Create() }

type operationsUoWs struct{ store *memory.Store }

func (f operationsUoWs) Create() commands.OperationsUoW { return f.store.Create() }

type userBlockUoWs struct{ store *memory.Store }

func (f userBlockUoWs) Create() commands.UserBlockUoW { return f.store.Create() }

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...ports.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventName())
	}
	return out
}

// MemorySuite runs handlers end to end against the in-memory store.
type MemorySuite struct {
	suite.Suite
	store     *memory.Store
	publisher *recordingPublisher
	clock     fixedClock

	customer access.Actor
	admin    access.Actor
	super    access.Actor

	usBranch *branch.Branch
	geBranch *branch.Branch
}

func (s *MemorySuite) SetupTest() {
	s.store = memory.NewStore()
	s.publisher = &recordingPublisher{}
	s.clock = fixedClock{now: testNow}
	s.customer = newActor(s.T(), access.User)
	s.admin = newActor(s.T(), access.Admin)
	s.super = newActor(s.T(), access.Super)

	s.usBranch = s.createBranch(newUSBranch(s.T()))
	s.geBranch = s.createBranch(newGeorgianBranch(s.T()))
}

func (s *MemorySuite) createBranch(b *branch.Branch) *branch.Branch {
	cmd, err := commands.NewSaveBranchCommand(s.admin, b.ID(), b.Title(), b.Country(), b.Address())
	s.Require().NoError(err)
	created, err := commands.NewCreateBranchCommandHandler(branchUoWs{s.store}).Handle(s.T().Context(), cmd)
	s.Require().NoError(err)
	return created
}

func (s *MemorySuite) placeOrder(owner access.Actor, fulfillment order.Fulfillment, weightGrams int) *order.Order {
	cmd, err := commands.NewCreateOrderCommand(
		owner, kernel.NewUUID(), owner.UserID, usAddress(s.T()), geAddress(s.T(), "Nino"),
		s.geBranch.ID(), fulfillment, newItems(s.T(), weightGrams),
	)
	s.Require().NoError(err)
	o, err := commands.NewCreateOrderCommandHandler(orderUoWs{s.store}, s.clock).Handle(s.T().Context(), cmd)
	s.Require().NoError(err)
	return o
}

func (s *MemorySuite) transition(actor access.Actor, orderID kernel.UUID, target order.Status) (*order.Order, error) {
	cmd, err := commands.NewTransitionOrderStatusCommand(actor, orderID, target)
	s.Require().NoError(err)
	return commands.NewTransitionOrderStatusCommandHandler(orderUoWs{s.store}, s.publisher, s.clock).
		Handle(s.T().Context(), cmd)
}

// advance walks the order along the main path up to target.
func (s *MemorySuite) advance(orderID kernel.UUID, target order.Status) {
	for _, st := range []order.Status{
		order.ReceivedAtBranch, order.Bagged, order.InTransit, order.DeliveredOrReadyForPickup, order.Completed,
	} {
		_, err := s.transition(s.admin, orderID, st)
		s.Require().NoError(err)
		if st == target {
			return
		}
	}
}

func (s *MemorySuite) load(orderID kernel.UUID) *order.Order {
	o, err := s.store.Create().OrderRepository().Get(s.T().Context(), orderID)
	s.Require().NoError(err)
	return o
}
