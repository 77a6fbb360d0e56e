package solver

import (
	"math"
	"time"
)

// Status is the day condition of a body for one scanned day.
type Status int

const (
	// RiseAndSet means both a rise and a set were found.
	RiseAndSet Status = iota
	// UpAllDay means the body stayed above the threshold.
	UpAllDay
	// DownAllDay means the body stayed below the threshold.
	DownAllDay
	// NoRise means only a set was found.
	NoRise
	// NoSet means only a rise was found.
	NoSet
)

func (s Status) String() string {
	switch s {
	case RiseAndSet:
		return "rise-and-set"
	case UpAllDay:
		return "up-all-day"
	case DownAllDay:
		return "down-all-day"
	case NoRise:
		return "no-rise"
	case NoSet:
		return "no-set"
	default:
		return "unknown"
	}
}

// MarshalText encodes s by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify derives the day condition from which events were found. up is
// consulted only when neither event exists and reports whether the body was
// above the threshold at the end of the scan.
func Classify(hasRise, hasSet, up bool) Status {
	switch {
	case hasRise && hasSet:
		return RiseAndSet
	case hasRise:
		return NoSet
	case hasSet:
		return NoRise
	case up:
		return UpAllDay
	default:
		return DownAllDay
	}
}

// DayEvents is the outcome of scanning one day. Rise and Set are nil when
// the event does not occur; Status is always consistent with them.
type DayEvents struct {
	Rise   *time.Time
	Set    *time.Time
	Status Status
}

const (
	bracketHours = 2
	polishWindow = 10 * time.Minute
	polishTol    = time.Second
)

// quadratic holds the parabola through three samples taken at x = -1, 0, 1
// of a bracket.
type quadratic struct {
	a, b   float64
	xe, ye float64 // vertex
	roots  int
	x1, x2 float64
}

func fitBracket(h0, h1, h2 float64) quadratic {
	q := quadratic{
		a: (h0+h2)/2 - h1,
		b: (h2 - h0) / 2,
	}
	if q.a == 0 {
		// Straight line through the samples.
		if q.b != 0 {
			x := -h1 / q.b
			if math.Abs(x) <= 1 {
				q.roots, q.x1, q.x2 = 1, x, x
			}
		}
		q.ye = h1
		return q
	}

	q.xe = -q.b / (2 * q.a)
	q.ye = (q.a*q.xe+q.b)*q.xe + h1
	d := q.b*q.b - 4*q.a*h1
	if d >= 0 {
		dx := math.Sqrt(d) / (math.Abs(q.a) * 2)
		q.x1 = q.xe - dx
		q.x2 = q.xe + dx
		if math.Abs(q.x1) <= 1 {
			q.roots++
		}
		if math.Abs(q.x2) <= 1 {
			q.roots++
		}
		if q.x1 < -1 {
			q.x1 = q.x2
		}
	}
	return q
}

// ScanDay finds the crossings of f through threshold (degrees) during the 24
// hours following start. The day is covered by twelve 2-hour brackets; each
// is sampled at its start, middle and end, a parabola is fitted through the
// samples and its roots inside the bracket become rise or set events. Each
// root is then refined by bisection to one second.
func ScanDay(f AltitudeFunc, start time.Time, threshold float64) DayEvents {
	at := func(h float64) time.Time {
		return start.Add(time.Duration(h * float64(time.Hour)))
	}
	g := func(h float64) float64 {
		return f(at(h)) - threshold
	}

	var (
		h0              = g(0)
		rise, set       float64
		hasRise, hasSet bool
	)

	for i := 1; i <= 24; i += bracketHours {
		h1 := g(float64(i))
		h2 := g(float64(i + 1))
		q := fitBracket(h0, h1, h2)

		switch q.roots {
		case 1:
			if h0 < 0 {
				rise = float64(i) + q.x1
				hasRise = true
			} else {
				set = float64(i) + q.x1
				hasSet = true
			}
		case 2:
			if q.ye < 0 {
				rise = float64(i) + q.x2
				set = float64(i) + q.x1
			} else {
				rise = float64(i) + q.x1
				set = float64(i) + q.x2
			}
			hasRise = true
			hasSet = true
		}

		if hasRise && hasSet {
			break
		}
		h0 = h2
	}

	var ev DayEvents
	if hasRise {
		t := polish(f, at(rise), threshold, CrossingUp)
		ev.Rise = &t
	}
	if hasSet {
		t := polish(f, at(set), threshold, CrossingDown)
		ev.Set = &t
	}
	ev.Status = Classify(hasRise, hasSet, h0 > 0)
	return ev
}

// polish refines an approximate crossing. The approximation is returned
// unchanged when the window around it shows no crossing in that direction.
func polish(f AltitudeFunc, approx time.Time, threshold float64, dir EventType) time.Time {
	r := FindAltitudeEvent(f, approx.Add(-polishWindow), approx.Add(polishWindow), threshold, dir, 2, polishTol)
	if !r.OK {
		return approx
	}
	return r.Time
}

// NextEvents returns the first rise and the first set at or after from,
// scanning successive days that start at from's UTC midnight. Either result
// is nil when no such event occurs within maxDays.
func NextEvents(f AltitudeFunc, from time.Time, threshold float64, maxDays int) (rise, set *time.Time) {
	u := from.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxDays && (rise == nil || set == nil); i++ {
		ev := ScanDay(f, day.AddDate(0, 0, i), threshold)
		if rise == nil && ev.Rise != nil && !ev.Rise.Before(u) {
			rise = ev.Rise
		}
		if set == nil && ev.Set != nil && !ev.Set.Before(u) {
			set = ev.Set
		}
	}
	return rise, set
}
