// Package ports declares the contracts the core expects from the outside:
// repositories bound to a unit of work, the read-only report reader, the
// event publisher and the clock.
package ports
