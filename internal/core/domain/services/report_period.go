package services

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/report"
)

// ResolveReportWindow fills missing bounds from the calendar month of now
// in loc and validates the result. The month end is day zero of the next
// month, so leap years need no special casing.
func ResolveReportWindow(from, to *kernel.Day, now time.Time, loc *time.Location) (report.Window, error) {
	month := kernel.MonthOf(now, loc)

	start, end := month.From(), month.To()
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}

	days, err := kernel.NewDateRange(start, end)
	if err != nil {
		return report.Window{}, err
	}
	return report.NewWindow(days, loc), nil
}
