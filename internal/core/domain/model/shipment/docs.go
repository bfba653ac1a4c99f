// Package shipment models combined shipments: two or more orders that are
// handled as one box. The status of a shipment is derived from its members
// on every read and is never persisted.
package shipment
