// Package horizon projects geocentric equatorial coordinates onto an
// observer's local horizon.
package horizon

import (
	"math"

	"github.com/soniakeys/meeus/v3/refraction"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/skyglide/internal/timeutil"
)

const rad = math.Pi / 180

// Equatorial is a geocentric position. RA and Dec are in radians,
// Distance in kilometers (zero when the model does not provide one).
type Equatorial struct {
	RA       float64
	Dec      float64
	Distance float64
}

// Observer is a location on the Earth in degrees (east and north positive)
// with an elevation in meters.
type Observer struct {
	Lat       float64
	Lon       float64
	Elevation float64
}

// Position is a horizon-frame position in radians. Azimuth is measured
// clockwise from north.
type Position struct {
	Altitude         float64
	Azimuth          float64
	ParallacticAngle float64
}

// AltitudeDeg returns the altitude in degrees.
func (p Position) AltitudeDeg() float64 { return p.Altitude / rad }

// AzimuthDeg returns the azimuth in degrees, [0, 360).
func (p Position) AzimuthDeg() float64 { return timeutil.Normalize360(p.Azimuth / rad) }

// ParallacticDeg returns the parallactic angle in degrees.
func (p Position) ParallacticDeg() float64 { return p.ParallacticAngle / rad }

// Apparent returns p with atmospheric refraction added to the altitude.
func (p Position) Apparent() Position {
	p.Altitude += Refraction(p.Altitude)
	return p
}

// FromEcliptic converts ecliptic longitude/latitude (radians) to equatorial
// coordinates for obliquity eps (radians).
func FromEcliptic(l, b, eps float64) Equatorial {
	ra := math.Atan2(math.Sin(l)*math.Cos(eps)-math.Tan(b)*math.Sin(eps), math.Cos(l))
	dec := math.Asin(math.Sin(b)*math.Cos(eps) + math.Cos(b)*math.Sin(eps)*math.Sin(l))
	return Equatorial{RA: timeutil.Normalize2Pi(ra), Dec: dec}
}

// SiderealTime returns local mean sidereal time in radians for d days
// (UT) since J2000 and an east-positive longitude in degrees.
func SiderealTime(d, lon float64) float64 {
	return sidereal.Mean(timeutil.J2000+d).Rad() + rad*lon
}

// HourAngle returns the local hour angle of eq for obs at m.
func HourAngle(eq Equatorial, obs Observer, m timeutil.Moment) float64 {
	return SiderealTime(m.Days, obs.Lon) - eq.RA
}

// Project returns the geometric (unrefracted) horizon position of eq.
func Project(eq Equatorial, obs Observer, m timeutil.Moment) Position {
	H := HourAngle(eq, obs, m)
	phi := rad * obs.Lat
	return Position{
		Altitude:         altitude(H, phi, eq.Dec),
		Azimuth:          azimuth(H, phi, eq.Dec) + math.Pi,
		ParallacticAngle: math.Atan2(math.Sin(H), math.Tan(phi)*math.Cos(eq.Dec)-math.Sin(eq.Dec)*math.Cos(H)),
	}
}

// azimuth is measured from south, westward.
func azimuth(H, phi, dec float64) float64 {
	return math.Atan2(math.Sin(H), math.Cos(H)*math.Sin(phi)-math.Tan(dec)*math.Cos(phi))
}

func altitude(H, phi, dec float64) float64 {
	return math.Asin(math.Sin(phi)*math.Sin(dec) + math.Cos(phi)*math.Cos(dec)*math.Cos(H))
}

// Refraction returns the refraction correction in radians for a geometric
// altitude h in radians (Saemundsson, Meeus 16.4). Negative altitudes are
// clamped to the horizon, so the correction below the horizon equals the
// horizon value.
func Refraction(h float64) float64 {
	return refraction.Saemundsson(unit.Angle(math.Max(h, 0))).Rad()
}
