// Package localtime maps events computed on UTC days onto a local calendar
// day at a fixed UTC offset.
//
// A UTC day's rise or set can land on the neighbouring local date once the
// offset is applied, so callers compute the requested UTC day together with
// the day before and the day after, and let Adjust pick the instance that
// falls on the requested local date.
package localtime

import (
	"time"

	"github.com/thurmanmarka/skyglide/internal/solver"
)

// MaxOffset is the largest accepted UTC offset magnitude, in hours.
const MaxOffset = 12.0

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t as read on a clock at offset hours
// from UTC.
func DateOf(t time.Time, offset float64) Date {
	lt := t.UTC().Add(time.Duration(offset * float64(time.Hour)))
	return Date{lt.Year(), lt.Month(), lt.Day()}
}

// UTCStart returns 00:00 UTC of d.
func (d Date) UTCStart() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	t := d.UTCStart().AddDate(0, 0, n)
	return Date{t.Year(), t.Month(), t.Day()}
}

// Zone returns a fixed time zone for offset hours.
func Zone(offset float64) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", int(offset*3600))
}

// Adjust selects, among the same event computed for the previous, requested
// and next UTC days, the instance whose local date at offset equals target.
// The requested day's instance wins when it matches. When none matches the
// requested day's value is returned with resolved=false. A zero offset
// returns actual unchanged.
func Adjust(target Date, offset float64, prev, actual, next *time.Time) (t *time.Time, resolved bool) {
	if offset == 0 {
		return actual, true
	}
	if actual != nil && DateOf(*actual, offset) == target {
		return actual, true
	}
	for _, c := range []*time.Time{prev, next} {
		if c != nil && DateOf(*c, offset) == target {
			return c, true
		}
	}
	return actual, false
}

// Resolution reports which events of an adjusted day matched the target date.
type Resolution struct {
	Rise bool
	Set  bool
}

// AdjustDay applies Adjust to the rise and set of three consecutive UTC days
// and re-derives the day condition from the selected events.
func AdjustDay(target Date, offset float64, prev, actual, next solver.DayEvents) (solver.DayEvents, Resolution) {
	if offset == 0 {
		return actual, Resolution{Rise: true, Set: true}
	}

	var (
		out solver.DayEvents
		res Resolution
	)
	out.Rise, res.Rise = Adjust(target, offset, prev.Rise, actual.Rise, next.Rise)
	out.Set, res.Set = Adjust(target, offset, prev.Set, actual.Set, next.Set)

	if (out.Rise != nil) == (actual.Rise != nil) && (out.Set != nil) == (actual.Set != nil) {
		out.Status = actual.Status
	} else {
		out.Status = solver.Classify(out.Rise != nil, out.Set != nil, actual.Status == solver.UpAllDay)
	}
	return out, res
}
