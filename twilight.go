package skyglide

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/thurmanmarka/skyglide/internal/metrics"
	"github.com/thurmanmarka/skyglide/internal/sun"
)

// TwilightKind identifies the type of twilight based on the Sun's altitude
// below the horizon.
type TwilightKind int

const (
	// TwilightCivil corresponds to the Sun's center at -6 degrees altitude.
	TwilightCivil TwilightKind = iota

	// TwilightNautical corresponds to the Sun's center at -12 degrees altitude.
	TwilightNautical

	// TwilightAstronomical corresponds to the Sun's center at -18 degrees altitude.
	TwilightAstronomical
)

func (k TwilightKind) String() string {
	switch k {
	case TwilightCivil:
		return "civil"
	case TwilightNautical:
		return "nautical"
	case TwilightAstronomical:
		return "astronomical"
	default:
		return "unknown"
	}
}

// ParseTwilight maps "civil", "nautical" or "astronomical" to a kind.
func ParseTwilight(s string) (TwilightKind, error) {
	for _, k := range []TwilightKind{TwilightCivil, TwilightNautical, TwilightAstronomical} {
		if k.String() == strings.ToLower(s) {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownTwilight, "%q", s)
}

func (k TwilightKind) altitude() (float64, error) {
	switch k {
	case TwilightCivil:
		return sun.CivilTwilight, nil
	case TwilightNautical:
		return sun.NauticalTwilight, nil
	case TwilightAstronomical:
		return sun.AstroTwilight, nil
	}
	return 0, errors.Wrapf(ErrUnknownTwilight, "%d", int(k))
}

// PhaseWindow represents a continuous time interval where the Sun's altitude
// stays within a particular range (e.g. golden hour or blue hour).
type PhaseWindow struct {
	Start time.Time
	End   time.Time
}

// DaylightPhases holds the morning and evening windows for a given phase
// (e.g. golden hour or blue hour).
type DaylightPhases struct {
	// Morning is the interval after dawn / sunrise.
	Morning PhaseWindow
	// Evening is the interval before dusk / sunset.
	Evening PhaseWindow

	// HasMorning / HasEvening indicate whether the corresponding window
	// exists on this date at this location (high latitudes can be weird).
	HasMorning bool
	HasEvening bool
}

// localNoon is 12:00 on date's calendar day in date's location. The
// closed-form crossings are solved around the solar transit nearest to it.
func localNoon(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, date.Location())
}

func crossing(c sun.Crossing, tz *time.Location) RiseSet {
	rs := RiseSet{Status: DownAllDay}
	if c.Morning != nil {
		rs.Rise = c.Morning.In(tz)
		rs.HasRise = true
	}
	if c.Evening != nil {
		rs.Set = c.Evening.In(tz)
		rs.HasSet = true
	}
	if rs.HasRise && rs.HasSet {
		rs.Status = RiseAndSet
	}
	return rs
}

// TwilightFor computes twilight times (dawn and dusk) of the given kind for
// a location and local calendar date. The returned RiseSet uses Rise as the
// "dawn" time (upward crossing of the twilight altitude) and Set as the
// "dusk" time (downward crossing).
//
// For example, TwilightCivil returns civil dawn (Rise) and civil dusk (Set)
// where the Sun's altitude crosses -6 degrees.
func TwilightFor(loc Coordinates, date time.Time, kind TwilightKind) (RiseSet, error) {
	defer metrics.Track("twilight")()

	if err := loc.Validate(); err != nil {
		return RiseSet{}, err
	}
	alt, err := kind.altitude()
	if err != nil {
		return RiseSet{}, err
	}

	c := sun.CrossingAt(loc.observer(), localNoon(date), alt)
	if c.Morning == nil && c.Evening == nil {
		return RiseSet{}, errors.Wrapf(ErrNoRiseNoSet, "%s twilight on %s", kind, date.Format("2006-01-02"))
	}
	return crossing(c, date.Location()), nil
}

// SunTimes is the set of daily solar events of one local day, found with
// the closed-form hour-angle approximation. Each RiseSet holds the morning
// (Rise) and evening (Set) crossing of its altitude.
type SunTimes struct {
	SolarNoon    time.Time
	Nadir        time.Time
	Sunrise      RiseSet // -0.833°
	SunriseEnd   RiseSet // -0.3°: upper limb clears the horizon
	Civil        RiseSet // -6°
	Nautical     RiseSet // -12°
	Astronomical RiseSet // -18°
	GoldenHour   RiseSet // +6°
}

// SunTimesFor returns the daily solar events for loc on date's calendar day.
func SunTimesFor(loc Coordinates, date time.Time) (SunTimes, error) {
	defer metrics.Track("sun_times")()

	if err := loc.Validate(); err != nil {
		return SunTimes{}, err
	}
	tz := date.Location()
	st := sun.TimesFor(loc.observer(), localNoon(date))
	return SunTimes{
		SolarNoon:    st.SolarNoon.In(tz),
		Nadir:        st.Nadir.In(tz),
		Sunrise:      crossing(st.Horizon, tz),
		SunriseEnd:   crossing(st.LimbClear, tz),
		Civil:        crossing(st.Civil, tz),
		Nautical:     crossing(st.Nautical, tz),
		Astronomical: crossing(st.Astronomical, tz),
		GoldenHour:   crossing(st.Golden, tz),
	}, nil
}

// window builds the morning and evening intervals during which the Sun's
// center is between low and high degrees.
func window(loc Coordinates, date time.Time, low, high float64) (DaylightPhases, error) {
	if err := loc.Validate(); err != nil {
		return DaylightPhases{}, err
	}
	obs := loc.observer()
	noon := localNoon(date)
	tz := date.Location()
	lo := sun.CrossingAt(obs, noon, low)
	hi := sun.CrossingAt(obs, noon, high)

	var phases DaylightPhases

	// Morning: Sun climbing from low to high.
	if lo.Morning != nil && hi.Morning != nil && hi.Morning.After(*lo.Morning) {
		phases.Morning = PhaseWindow{Start: lo.Morning.In(tz), End: hi.Morning.In(tz)}
		phases.HasMorning = true
	}

	// Evening: Sun descending from high to low.
	if hi.Evening != nil && lo.Evening != nil && lo.Evening.After(*hi.Evening) {
		phases.Evening = PhaseWindow{Start: hi.Evening.In(tz), End: lo.Evening.In(tz)}
		phases.HasEvening = true
	}

	if !phases.HasMorning && !phases.HasEvening {
		return DaylightPhases{}, errors.Wrapf(ErrNoRiseNoSet, "no window between %v° and %v° on %s",
			low, high, date.Format("2006-01-02"))
	}
	return phases, nil
}

// GoldenHourFor computes the golden hour intervals for the given local
// calendar date and location. Golden hour is (approximately) defined as
// the period when the Sun's center altitude is between -4° and +6°.
//
// If neither morning nor evening golden hour exists (e.g. extreme
// high-latitude edge cases), ErrNoRiseNoSet is returned.
func GoldenHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	defer metrics.Track("golden_hour")()
	return window(loc, date, -4, sun.GoldenHourLimit)
}

// BlueHourFor computes the blue hour intervals for the given local calendar
// date and location: the Sun's center between -6° and -4°.
//
// If neither morning nor evening blue hour exists, ErrNoRiseNoSet is returned.
func BlueHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	defer metrics.Track("blue_hour")()
	return window(loc, date, sun.CivilTwilight, -4)
}
