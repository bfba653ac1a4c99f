package memory

import (
	"errors"
	"sync"

	"forwarding/internal/core/domain/model/bag"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/domain/model/flight"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/model/shelf"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/domain/model/userblock"
	"forwarding/internal/core/ports"
)

var ErrNoTransaction = errors.New("memory: no transaction in progress")

// Store holds the committed state shared by every unit of work.
type Store struct {
	mu        sync.RWMutex
	committed *state
	writer    chan struct{}
}

func NewStore() *Store {
	return &Store{
		committed: newState(),
		writer:    make(chan struct{}, 1),
	}
}

// Create implements ports.UnitOfWorkFactory.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed
}

func (s *Store) publish(next *state) {
	s.mu.Lock()
	s.committed = next
	s.mu.Unlock()
}

// state maps hold private copies. A committed state is never written again;
// a transaction works on a shallow copy and replaces entries instead of
// mutating them.
type state struct {
	orders     map[kernel.UUID]*order.Order
	shipments  map[kernel.UUID]*shipment.CombinedShipment
	branches   map[kernel.UUID]*branch.Branch
	flights    map[kernel.UUID]*flight.Flight
	bags       map[kernel.UUID]*bag.Bag
	placements []*shelf.Placement
	blocks     []*userblock.Block
}

func newState() *state {
	return &state{
		orders:    map[kernel.UUID]*order.Order{},
		shipments: map[kernel.UUID]*shipment.CombinedShipment{},
		branches:  map[kernel.UUID]*branch.Branch{},
		flights:   map[kernel.UUID]*flight.Flight{},
		bags:      map[kernel.UUID]*bag.Bag{},
	}
}

func (st *state) fork() *state {
	return &state{
		orders:     copyMap(st.orders),
		shipments:  copyMap(st.shipments),
		branches:   copyMap(st.branches),
		flights:    copyMap(st.flights),
		bags:       copyMap(st.bags),
		placements: append([]*shelf.Placement(nil), st.placements...),
		blocks:     append([]*userblock.Block(nil), st.blocks...),
	}
}

func copyMap[V any](in map[kernel.UUID]V) map[kernel.UUID]V {
	out := make(map[kernel.UUID]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
