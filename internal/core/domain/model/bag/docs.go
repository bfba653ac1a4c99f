// Package bag models bags: weight-limited sacks of parcels packed at a
// branch and loaded onto a flight. A loaded bag is sealed and its contents
// can no longer change.
package bag
