package skyglide

import (
	"time"

	"github.com/pkg/errors"

	"github.com/thurmanmarka/skyglide/internal/localtime"
	"github.com/thurmanmarka/skyglide/internal/metrics"
)

// Report is everything skyglide knows about the sky of one observer at one
// instant. Day-based fields are for the local calendar day of Time at
// Offset. Eclipse pointers are nil when none is visible within the table.
type Report struct {
	Time        time.Time
	Offset      float64 // hours east of UTC
	Coordinates Coordinates

	Sun  Position
	Moon Position

	SunRiseSet  RiseSet
	MoonRiseSet RiseSet
	SunTimes    SunTimes
	Daylight    float64 // hours

	MoonPhase  MoonPhase
	NextPhases MoonPhases
	Apsides    Apsides
	Seasons    Seasons

	PreviousSolarEclipse *Eclipse
	NextSolarEclipse     *Eclipse
	PreviousLunarEclipse *Eclipse
	NextLunarEclipse     *Eclipse
}

// ReportFor composes a Report for loc at t. Times in the report, eclipse
// contacts included, are in a fixed zone at offset hours from UTC.
func ReportFor(loc Coordinates, t time.Time, offset float64) (Report, error) {
	defer metrics.Track("report")()

	if err := loc.Validate(); err != nil {
		return Report{}, err
	}
	if err := validOffset(offset); err != nil {
		return Report{}, err
	}
	tz := localtime.Zone(offset)
	t = t.In(tz)
	day := localtime.DateOf(t, offset)
	noon := time.Date(day.Year, day.Month, day.Day, 12, 0, 0, 0, tz)

	r := Report{Time: t, Offset: offset, Coordinates: loc}

	var err error
	if r.Sun, err = PositionAt(Sun, loc, t); err != nil {
		return Report{}, err
	}
	if r.Moon, err = PositionAt(Moon, loc, t); err != nil {
		return Report{}, err
	}
	if r.SunRiseSet, err = riseSet(Sun, loc, day, offset, tz); err != nil {
		return Report{}, err
	}
	if r.MoonRiseSet, err = riseSet(Moon, loc, day, offset, tz); err != nil {
		return Report{}, err
	}
	if r.SunTimes, err = SunTimesFor(loc, noon); err != nil {
		return Report{}, err
	}
	if r.Daylight, err = DaylightHours(loc, noon); err != nil {
		return Report{}, err
	}
	if r.MoonPhase, err = MoonPhaseAt(t); err != nil {
		return Report{}, err
	}
	r.NextPhases = NextMoonPhases(t)
	r.Apsides = NextPerigeeApogee(t)
	r.Seasons = SeasonsFor(day.Year)

	for _, e := range []struct {
		dst  **Eclipse
		find func(Coordinates, time.Time) (Eclipse, error)
	}{
		{&r.PreviousSolarEclipse, PreviousSolarEclipse},
		{&r.NextSolarEclipse, NextSolarEclipse},
		{&r.PreviousLunarEclipse, PreviousLunarEclipse},
		{&r.NextLunarEclipse, NextLunarEclipse},
	} {
		d, err := e.find(loc, t)
		switch {
		case errors.Is(err, ErrNoEclipse):
			continue
		case err != nil:
			return Report{}, err
		}
		d = d.In(tz)
		*e.dst = &d
	}
	return r, nil
}
