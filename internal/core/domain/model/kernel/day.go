package kernel

import (
	"fmt"
	"time"

	"forwarding/internal/pkg/errs"
)

// DayLayout is the boundary format for calendar days.
const DayLayout = "2006-01-02"

// Day is a calendar date without a time of day or a zone.
type Day struct {
	year  int
	month time.Month
	day   int
}

// NewDay normalizes the given components (so 2024-03-00 becomes 2024-02-29).
func NewDay(year int, month time.Month, day int) Day {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Day{year: t.Year(), month: t.Month(), day: t.Day()}
}

// DayOf returns the calendar day t falls on in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	local := t.In(loc)
	return Day{year: local.Year(), month: local.Month(), day: local.Day()}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, errs.NewValueIsInvalidErrorWithCause("day", err)
	}
	return NewDay(t.Year(), t.Month(), t.Day()), nil
}

func (d Day) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

func (d Day) Year() int          { return d.year }
func (d Day) Month() time.Month  { return d.month }
func (d Day) DayOfMonth() int    { return d.day }
func (d Day) AddDays(n int) Day  { return NewDay(d.year, d.month, d.day+n) }
func (d Day) String() string     { return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day) }
func (d Day) Before(o Day) bool  { return d.compare(o) < 0 }
func (d Day) After(o Day) bool   { return d.compare(o) > 0 }
func (d Day) IsEqual(o Day) bool { return d.compare(o) == 0 }

// StartIn returns the first instant of the day in loc.
func (d Day) StartIn(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Day) compare(o Day) int {
	switch {
	case d.year != o.year:
		return d.year - o.year
	case d.month != o.month:
		return int(d.month) - int(o.month)
	default:
		return d.day - o.day
	}
}

// DateRange is an inclusive [From, To] range of calendar days.
type DateRange struct {
	from Day
	to   Day
}

// NewDateRange rejects ranges whose start lies after their end.
func NewDateRange(from, to Day) (DateRange, error) {
	if from.IsZero() {
		return DateRange{}, errs.NewValueIsRequiredError("from")
	}
	if to.IsZero() {
		return DateRange{}, errs.NewValueIsRequiredError("to")
	}
	if from.After(to) {
		return DateRange{}, errs.NewValueIsInvalidErrorWithCause(
			"date range",
			fmt.Errorf("from %s is after to %s", from, to),
		)
	}
	return DateRange{from: from, to: to}, nil
}

// MonthOf returns the range covering the calendar month that t falls in.
// The last day is day zero of the following month, so month length is
// never hard-coded.
func MonthOf(t time.Time, loc *time.Location) DateRange {
	today := DayOf(t, loc)
	return DateRange{
		from: NewDay(today.year, today.month, 1),
		to:   NewDay(today.year, today.month+1, 0),
	}
}

func (r DateRange) From() Day { return r.from }
func (r DateRange) To() Day   { return r.to }

// Bounds returns the half-open instant interval [start, end) covering the
// range in loc. Stores filter with start <= t < end.
func (r DateRange) Bounds(loc *time.Location) (time.Time, time.Time) {
	return r.from.StartIn(loc), r.to.AddDays(1).StartIn(loc)
}

// Contains reports whether instant t falls on a day inside the range.
func (r DateRange) Contains(t time.Time, loc *time.Location) bool {
	start, end := r.Bounds(loc)
	return !t.Before(start) && t.Before(end)
}

// ContainsDay reports whether d is inside the range.
func (r DateRange) ContainsDay(d Day) bool {
	return !d.Before(r.from) && !d.After(r.to)
}

func (r DateRange) String() string {
	return r.from.String() + ".." + r.to.String()
}
