package moon

import (
	"time"

	"github.com/thurmanmarka/skyglide/internal/horizon"
	"github.com/thurmanmarka/skyglide/internal/solver"
	"github.com/thurmanmarka/skyglide/internal/timeutil"
)

// RiseThreshold is the apparent topocentric altitude (degrees) of the
// Moon's center at moonrise and moonset: the upper limb on the horizon for a
// mean semidiameter of 15.5', with 34' of horizon refraction against the
// 29' that Apparent adds below the horizon.
const RiseThreshold = -0.34

// searchDays bounds NextRiseSet. The Moon rises and sets at least once in
// any two consecutive days outside the polar caps.
const searchDays = 3

// Altitude returns the Moon's apparent topocentric altitude in degrees for
// obs as a function of time.
func Altitude(obs horizon.Observer) solver.AltitudeFunc {
	return func(t time.Time) float64 {
		return Horizontal(obs, timeutil.NewMoment(t)).AltitudeDeg()
	}
}

// RiseSetForDay scans the 24 hours from start for moonrise and moonset.
// Returned times are UTC.
func RiseSetForDay(obs horizon.Observer, start time.Time) solver.DayEvents {
	return solver.ScanDay(Altitude(obs), start.UTC(), RiseThreshold)
}

// NextRiseSet returns the next moonrise and moonset at or after t. Either
// may be nil at high latitudes.
func NextRiseSet(obs horizon.Observer, t time.Time) (rise, set *time.Time) {
	return solver.NextEvents(Altitude(obs), t, RiseThreshold, searchDays)
}
