// Package flight models scheduled flights together with the air waybills
// issued for them.
package flight
