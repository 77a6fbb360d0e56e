package skyglide

import (
	"time"

	"github.com/pkg/errors"

	"github.com/thurmanmarka/skyglide/internal/horizon"
	"github.com/thurmanmarka/skyglide/internal/localtime"
	"github.com/thurmanmarka/skyglide/internal/logging"
	"github.com/thurmanmarka/skyglide/internal/metrics"
	"github.com/thurmanmarka/skyglide/internal/moon"
	"github.com/thurmanmarka/skyglide/internal/solver"
	"github.com/thurmanmarka/skyglide/internal/sun"
)

// RiseSet holds rise and set times of a body on a given date. An event that
// does not happen leaves its time zero and its Has flag false; Status tells
// whether the body stayed up or down instead.
type RiseSet struct {
	Rise    time.Time
	Set     time.Time
	HasRise bool
	HasSet  bool
	Status  Status
}

func newRiseSet(ev solver.DayEvents, tz *time.Location) RiseSet {
	rs := RiseSet{Status: ev.Status}
	if ev.Rise != nil {
		rs.Rise = ev.Rise.In(tz)
		rs.HasRise = true
	}
	if ev.Set != nil {
		rs.Set = ev.Set.In(tz)
		rs.HasSet = true
	}
	return rs
}

// RiseSetFor returns rise and set times for the given body and location on
// the calendar day of date, read in date's location. The UTC offset of that
// location at date is used to pick the events of the local day, and the
// returned times are in date's location.
func RiseSetFor(body Body, loc Coordinates, date time.Time) (RiseSet, error) {
	_, off := date.Zone()
	y, m, d := date.Date()
	return riseSet(body, loc, localtime.Date{Year: y, Month: m, Day: d}, float64(off)/3600, date.Location())
}

// RiseSetForOffset is RiseSetFor for a fixed UTC offset in hours. The
// calendar day is the one of date as given; the returned times carry a
// fixed zone at offset.
func RiseSetForOffset(body Body, loc Coordinates, date time.Time, offset float64) (RiseSet, error) {
	if err := validOffset(offset); err != nil {
		return RiseSet{}, err
	}
	y, m, d := date.Date()
	return riseSet(body, loc, localtime.Date{Year: y, Month: m, Day: d}, offset, localtime.Zone(offset))
}

// model bundles what the day scan needs to know about a body.
type model struct {
	scan      func(horizon.Observer, time.Time) solver.DayEvents
	altitude  func(horizon.Observer) solver.AltitudeFunc
	threshold func(horizon.Observer) float64
}

func modelFor(body Body) (model, error) {
	switch body {
	case Sun:
		return model{
			scan:     sun.RiseSetForDay,
			altitude: sun.Altitude,
			threshold: func(obs horizon.Observer) float64 {
				return sun.ApparentHorizon + sun.ObserverDip(obs.Elevation)
			},
		}, nil
	case Moon:
		return model{
			scan:      moon.RiseSetForDay,
			altitude:  moon.Altitude,
			threshold: func(horizon.Observer) float64 { return moon.RiseThreshold },
		}, nil
	}
	return model{}, errors.Wrapf(ErrUnknownBody, "%d", int(body))
}

func (m model) up(obs horizon.Observer, t time.Time) bool {
	return m.altitude(obs)(t) > m.threshold(obs)
}

// riseSet scans the UTC day of day and, for a non-zero offset, the days on
// either side, then keeps the events that fall on day at offset. An event
// with no instance on the local day is dropped and the status re-derived.
func riseSet(body Body, loc Coordinates, day localtime.Date, offset float64, tz *time.Location) (RiseSet, error) {
	defer metrics.Track("riseset")()

	if err := loc.Validate(); err != nil {
		return RiseSet{}, err
	}
	if err := validOffset(offset); err != nil {
		return RiseSet{}, err
	}
	m, err := modelFor(body)
	if err != nil {
		return RiseSet{}, err
	}

	obs := loc.observer()
	ev := m.scan(obs, day.UTCStart())
	if offset == 0 {
		return newRiseSet(ev, tz), nil
	}

	prev := m.scan(obs, day.AddDays(-1).UTCStart())
	next := m.scan(obs, day.AddDays(1).UTCStart())
	ev, res := localtime.AdjustDay(day, offset, prev, ev, next)
	if res.Rise && res.Set {
		return newRiseSet(ev, tz), nil
	}

	logging.Default().Debug("event outside local day",
		"body", body, "date", day.UTCStart().Format("2006-01-02"), "offset", offset,
		"rise", res.Rise, "set", res.Set)
	if !res.Rise {
		ev.Rise = nil
	}
	if !res.Set {
		ev.Set = nil
	}
	start := day.UTCStart().Add(-time.Duration(offset * float64(time.Hour)))
	ev.Status = solver.Classify(ev.Rise != nil, ev.Set != nil, m.up(obs, start))
	return newRiseSet(ev, tz), nil
}

// NextRiseSet returns the next rise and the next set of body at or after t,
// in t's location. Status is RiseAndSet when both were found; otherwise it
// tells which is missing, or whether the body is up or down throughout.
func NextRiseSet(body Body, loc Coordinates, t time.Time) (RiseSet, error) {
	defer metrics.Track("next_riseset")()

	if err := loc.Validate(); err != nil {
		return RiseSet{}, err
	}
	m, err := modelFor(body)
	if err != nil {
		return RiseSet{}, err
	}
	obs := loc.observer()

	var rise, set *time.Time
	if body == Sun {
		rise, set = sun.NextRiseSet(obs, t)
	} else {
		rise, set = moon.NextRiseSet(obs, t)
	}

	ev := solver.DayEvents{Rise: rise, Set: set, Status: solver.Classify(rise != nil, set != nil, m.up(obs, t))}
	return newRiseSet(ev, t.Location()), nil
}

// SlideIntoSunset is your glorious convenience helper:
// it returns sunrise and sunset for the Sun at the given location and date.
func SlideIntoSunset(loc Coordinates, date time.Time) (RiseSet, error) {
	return RiseSetFor(Sun, loc, date)
}

// DaylightHours returns the number of hours the Sun is up during the local
// calendar day of date. Polar day gives 24 and polar night 0. When the Sun
// sets before it rises on the same day, both ends of the day count.
func DaylightHours(loc Coordinates, date time.Time) (float64, error) {
	rs, err := SlideIntoSunset(loc, date)
	if err != nil {
		return 0, err
	}

	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	switch rs.Status {
	case UpAllDay:
		return end.Sub(start).Hours(), nil
	case DownAllDay:
		return 0, nil
	case NoSet:
		return end.Sub(rs.Rise).Hours(), nil
	case NoRise:
		return rs.Set.Sub(start).Hours(), nil
	}
	if rs.Set.After(rs.Rise) {
		return rs.Set.Sub(rs.Rise).Hours(), nil
	}
	return (rs.Set.Sub(start) + end.Sub(rs.Rise)).Hours(), nil
}
