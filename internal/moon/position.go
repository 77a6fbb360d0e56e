package moon

import (
	"math"

	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/parallax"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/skyglide/internal/horizon"
	"github.com/thurmanmarka/skyglide/internal/sun"
	"github.com/thurmanmarka/skyglide/internal/timeutil"
)

const rad = math.Pi / 180

// Ecliptic is the Moon's geocentric ecliptic position, mean equinox of
// date: longitude and latitude in radians, distance in kilometers.
type Ecliptic struct {
	Lon, Lat float64
	Distance float64
}

// jde is the ephemeris day of m.
func jde(m timeutil.Moment) float64 {
	return m.JD + timeutil.DeltaT(timeutil.DecimalYear(m.Time))/86400
}

// EclipticPosition evaluates the lunar series (Meeus ch. 47, the main
// periodic terms of ELP-2000/82) at m.
func EclipticPosition(m timeutil.Moment) Ecliptic {
	lon, lat, dist := moonposition.Position(jde(m))
	return Ecliptic{Lon: lon.Rad(), Lat: lat.Rad(), Distance: dist}
}

// Position returns the Moon's geocentric equatorial position at m.
func Position(m timeutil.Moment) horizon.Equatorial {
	ec := EclipticPosition(m)
	eq := horizon.FromEcliptic(ec.Lon, ec.Lat, nutation.MeanObliquity(jde(m)).Rad())
	eq.Distance = ec.Distance
	return eq
}

// Topocentric returns the Moon's position as seen from obs at m, corrected
// for parallax. Distance stays geocentric.
func Topocentric(obs horizon.Observer, m timeutil.Moment) horizon.Equatorial {
	eq := Position(m)
	s, c := globe.Earth76.ParallaxConstants(unit.AngleFromDeg(obs.Lat), obs.Elevation)
	// Meeus counts longitude positive west.
	ra, dec := parallax.Topocentric(unit.RAFromRad(eq.RA), unit.Angle(eq.Dec),
		eq.Distance/sun.AU, s, c, unit.AngleFromDeg(-obs.Lon), m.JD)
	return horizon.Equatorial{RA: ra.Rad(), Dec: dec.Rad(), Distance: eq.Distance}
}

// Horizontal returns the Moon's apparent (topocentric, refracted) horizon
// position for obs at m.
func Horizontal(obs horizon.Observer, m timeutil.Moment) horizon.Position {
	return horizon.Project(Topocentric(obs, m), obs, m).Apparent()
}
