// Package report defines the closed set of report kinds, the row
// projections a report reader returns for a date window, and the pure
// builders that turn those rows into payloads.
package report
