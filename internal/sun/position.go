package sun

import (
	"math"

	"github.com/thurmanmarka/skyglide/internal/horizon"
	"github.com/thurmanmarka/skyglide/internal/timeutil"
)

const (
	rad = math.Pi / 180

	// obliquity of the Earth's axis
	obliquity = rad * 23.4397

	// longitude of the Earth's perihelion at J2000 and its daily advance
	perihelion     = rad * 102.9372
	perihelionRate = rad * 0.0000470935

	// AU is the astronomical unit in kilometers.
	AU = 149597870.7
)

// MeanAnomaly returns the Sun's mean anomaly in radians for d days since J2000.
func MeanAnomaly(d float64) float64 {
	return rad * (357.5291 + 0.98560028*d)
}

// EclipticLongitude returns the Sun's ecliptic longitude in radians, mean
// equinox of date, given its mean anomaly and d days since J2000.
func EclipticLongitude(M, d float64) float64 {
	C := rad * (1.9148*math.Sin(M) + 0.02*math.Sin(2*M) + 0.0003*math.Sin(3*M))
	return M + C + perihelion + perihelionRate*d + math.Pi
}

// Declination returns the Sun's declination in radians for an ecliptic longitude.
func Declination(L float64) float64 {
	return horizon.FromEcliptic(L, 0, obliquity).Dec
}

// Position returns the Sun's geocentric equatorial position at m.
//
// The longitude series keeps the equation of centre to three terms; the
// result is good to about a minute of arc.
func Position(m timeutil.Moment) horizon.Equatorial {
	M := MeanAnomaly(m.Days)
	L := EclipticLongitude(M, m.Days)
	eq := horizon.FromEcliptic(L, 0, obliquity)
	eq.Distance = AU * (1.00014 - 0.01671*math.Cos(M) - 0.00014*math.Cos(2*M))
	return eq
}

// Horizontal returns the Sun's geometric horizon position for obs at m.
func Horizontal(obs horizon.Observer, m timeutil.Moment) horizon.Position {
	return horizon.Project(Position(m), obs, m)
}
