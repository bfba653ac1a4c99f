// Package services provides domain services that span several aggregates.
//
// The package includes:
//   - Consolidator: checks combination preconditions over a set of orders,
//     creates the combined shipment and links members, and splits shipments
//   - ResolveReportWindow: turns optional report bounds into a validated
//     window in the business time zone
package services
