package moon

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/moonphase"

	"github.com/thurmanmarka/skyglide/internal/horizon"
	"github.com/thurmanmarka/skyglide/internal/sun"
	"github.com/thurmanmarka/skyglide/internal/timeutil"
)

// sunDistance is the mean Earth-Sun distance in km used by the
// illumination geometry.
const sunDistance = 149598000.0

// Illumination describes the lit portion of the Moon at an instant.
type Illumination struct {
	Fraction   float64 // illuminated fraction [0..1]
	Phase      float64 // 0 new, 0.25 first quarter, 0.5 full, 0.75 last quarter
	Angle      float64 // midpoint angle of the bright limb, radians
	Elongation float64 // Sun-Moon separation, degrees [0..180]
	Waxing     bool
	Name       string
}

// IlluminationAt computes the Moon's illumination at m.
func IlluminationAt(m timeutil.Moment) Illumination {
	s := sun.Position(m)
	mo := Position(m)

	phi := horizon.Separation(s, mo)
	inc := math.Atan2(sunDistance*math.Sin(phi), mo.Distance-sunDistance*math.Cos(phi))
	angle := math.Atan2(math.Cos(s.Dec)*math.Sin(s.RA-mo.RA),
		math.Sin(s.Dec)*math.Cos(mo.Dec)-math.Cos(s.Dec)*math.Sin(mo.Dec)*math.Cos(s.RA-mo.RA))

	fraction := (1 + math.Cos(inc)) / 2
	phase := 0.5 + 0.5*inc*math.Copysign(1, angle)/math.Pi
	waxing := phase < 0.5

	return Illumination{
		Fraction:   fraction,
		Phase:      phase,
		Angle:      angle,
		Elongation: phi / rad,
		Waxing:     waxing,
		Name:       PhaseName(fraction, waxing),
	}
}

// PhaseName classifies an illuminated fraction into one of the eight
// conventional phase names.
func PhaseName(f float64, waxing bool) string {
	const (
		eps        = 0.01 // near 0 or 1
		quarterTol = 0.05 // fraction window around 0.5
	)

	switch {
	case f < eps:
		return "New Moon"
	case f > 1-eps:
		return "Full Moon"
	case math.Abs(f-0.5) < quarterTol:
		if waxing {
			return "First Quarter"
		}
		return "Last Quarter"
	case f < 0.5:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}

// lunationsPerYear converts a lunation count to a fractional year.
const lunationsPerYear = 12.3685

// PhaseDates holds the next occurrence of each principal phase.
type PhaseDates struct {
	New          time.Time
	FirstQuarter time.Time
	Full         time.Time
	LastQuarter  time.Time
}

// NextPhases returns the first new, first quarter, full and last quarter
// Moon at or after t, in UTC.
func NextPhases(t time.Time) PhaseDates {
	return PhaseDates{
		New:          nextPhase(moonphase.New, t),
		FirstQuarter: nextPhase(moonphase.First, t),
		Full:         nextPhase(moonphase.Full, t),
		LastQuarter:  nextPhase(moonphase.Last, t),
	}
}

// nextPhase walks forward in half-lunation steps from a lunation before t
// until the phase returned by fn falls at or after t.
func nextPhase(fn func(float64) float64, t time.Time) time.Time {
	y := timeutil.DecimalYear(t) - 1/lunationsPerYear
	var at time.Time
	for i := 0; i < 8; i++ {
		at = timeutil.TTToUT(fn(y))
		if !at.Before(t) {
			break
		}
		y += 0.5 / lunationsPerYear
	}
	return at
}

// Syzygies returns the Julian Ephemeris Days of every new moon (full moon
// when full is true) from the start of year from up to year to, in order.
func Syzygies(from, to int, full bool) []float64 {
	fn := moonphase.New
	if full {
		fn = moonphase.Full
	}
	var out []float64
	last := math.Inf(-1)
	for y := float64(from); y < float64(to); y += 0.5 / lunationsPerYear {
		jde := fn(y)
		if jde-last < 1 {
			continue
		}
		out = append(out, jde)
		last = jde
	}
	return out
}
