package report

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
)

// Window is a resolved date range: the inclusive days plus the half-open
// instant interval [Start, End) they cover in the business time zone.
type Window struct {
	Days  kernel.DateRange
	Start time.Time
	End   time.Time
}

func NewWindow(days kernel.DateRange, loc *time.Location) Window {
	start, end := days.Bounds(loc)
	return Window{Days: days, Start: start, End: end}
}

// Contains reports whether t falls in [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
