// Package order provides the Order aggregate of the forwarding domain.
//
// The package includes:
//   - Order: the aggregate root holding owner, address snapshots, items,
//     fulfillment, combination link and optimistic concurrency version
//   - Status: the stage graph placed -> received_at_branch -> bagged ->
//     in_transit -> delivered_or_ready_for_pickup -> completed, with
//     cancellation allowed from the first two stages
//   - Item and Fulfillment value objects
//   - StatusChanged, the event emitted after a successful transition
//
// Key business rules:
//   - status never moves backwards and terminal orders are read-only
//   - self-transitions are not edges and fail with InvalidTransitionError
//   - only placed orders can be revised
//   - an order is linked to at most one combined shipment
package order
