package skyglide

import (
	"time"

	"github.com/thurmanmarka/skyglide/internal/metrics"
	"github.com/thurmanmarka/skyglide/internal/moon"
	"github.com/thurmanmarka/skyglide/internal/timeutil"
)

// MoonPhase describes the illuminated fraction and qualitative phase
// of the Moon at a given instant.
type MoonPhase struct {
	Time       time.Time // the instant this phase is evaluated at
	Fraction   float64   // illuminated fraction [0..1], 0=new, 1=full
	Phase      float64   // position in the lunation: 0 new, 0.25 first quarter, 0.5 full, 0.75 last quarter
	Angle      float64   // position angle of the bright limb's midpoint, degrees
	Elongation float64   // Sun-Moon angular separation in degrees [0..180]
	Waxing     bool      // true if waxing (illumination increasing), false if waning
	Name       string    // e.g. "New Moon", "Waxing Crescent", "First Quarter", ...
}

// MoonPhaseAt computes the Moon's illuminated fraction and qualitative phase
// at the given time. Phase is a global property (independent of observer
// location), so the returned Time is t as passed in.
func MoonPhaseAt(t time.Time) (MoonPhase, error) {
	defer metrics.Track("moon_phase")()

	il := moon.IlluminationAt(timeutil.NewMoment(t))
	return MoonPhase{
		Time:       t,
		Fraction:   il.Fraction,
		Phase:      il.Phase,
		Angle:      timeutil.Rad2Deg(il.Angle),
		Elongation: il.Elongation,
		Waxing:     il.Waxing,
		Name:       il.Name,
	}, nil
}

// MoonPhases holds the next instant of each principal phase.
type MoonPhases struct {
	New          time.Time
	FirstQuarter time.Time
	Full         time.Time
	LastQuarter  time.Time
}

// NextMoonPhases returns the first new, first quarter, full and last
// quarter Moon at or after t, in t's location.
func NextMoonPhases(t time.Time) MoonPhases {
	defer metrics.Track("moon_phases")()

	p := moon.NextPhases(t)
	tz := t.Location()
	return MoonPhases{
		New:          p.New.In(tz),
		FirstQuarter: p.FirstQuarter.In(tz),
		Full:         p.Full.In(tz),
		LastQuarter:  p.LastQuarter.In(tz),
	}
}
