// Package kernel provides the shared value objects of the forwarding domain.
//
// The package includes:
//   - UUID: identifier value object with validation, ordering and text encoding
//   - Country: the closed set of operating countries
//   - Address: an immutable postal address snapshot
//   - Day and DateRange: calendar days and inclusive day ranges resolved in a
//     business time zone
//
// All types are immutable values and safe for concurrent use.
package kernel
