package timeutil

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// Moment is a UTC instant together with the time arguments the series
// evaluators need. It is a value type and never mutated after construction.
type Moment struct {
	Time      time.Time // UTC
	JD        float64   // Julian Day (UT)
	Days      float64   // days since J2000.0
	Centuries float64   // Julian centuries since J2000.0
}

// NewMoment builds a Moment for t, converted to UTC.
func NewMoment(t time.Time) Moment {
	u := t.UTC()
	jd := julian.TimeToJD(u)
	return Moment{
		Time:      u,
		JD:        jd,
		Days:      jd - J2000,
		Centuries: (jd - J2000) / 36525.0,
	}
}

// MomentFromJD builds a Moment from a Julian Day (UT).
func MomentFromJD(jd float64) Moment {
	return Moment{
		Time:      julian.JDToTime(jd).UTC(),
		JD:        jd,
		Days:      jd - J2000,
		Centuries: (jd - J2000) / 36525.0,
	}
}

// Add returns the Moment h hours later (h may be negative).
func (m Moment) Add(h float64) Moment {
	return NewMoment(HoursLater(m.Time, h))
}

// HoursLater returns t shifted by a fractional number of hours.
func HoursLater(t time.Time, h float64) time.Time {
	return t.Add(time.Duration(h * float64(time.Hour)))
}

// StartOfDay returns 00:00 UTC of t's UTC calendar day.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysSinceJ2000 returns the number of (UTC) days since the J2000.0 epoch.
func DaysSinceJ2000(t time.Time) float64 {
	return julian.TimeToJD(t.UTC()) - J2000
}

// JulianDay returns the Julian Day for t.
func JulianDay(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// JulianCenturies returns centuries since J2000.0.
func JulianCenturies(t time.Time) float64 {
	return (JulianDay(t) - J2000) / 36525.0
}

// DecimalYear returns t as a fractional Gregorian year.
func DecimalYear(t time.Time) float64 {
	u := t.UTC()
	start := time.Date(u.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return float64(u.Year()) + u.Sub(start).Seconds()/end.Sub(start).Seconds()
}

// DeltaT returns TT − UT in seconds for a fractional year, using the
// Espenak-Meeus polynomial fits.
func DeltaT(year float64) float64 {
	switch {
	case year < 1986:
		t := year - 1950
		return 29.07 + 0.407*t - t*t/233 + t*t*t/2547
	case year < 2005:
		t := year - 2000
		return 63.86 + 0.3345*t - 0.060374*t*t + 0.0017275*t*t*t +
			0.000651814*t*t*t*t + 0.00002373599*t*t*t*t*t
	case year < 2050:
		t := year - 2000
		return 62.92 + 0.32217*t + 0.005589*t*t
	case year < 2150:
		u := (year - 1820) / 100
		return -20 + 32*u*u - 0.5628*(2150-year)
	default:
		u := (year - 1820) / 100
		return -20 + 32*u*u
	}
}

// TTToUT converts a Julian Ephemeris Day to a UTC time using DeltaT.
func TTToUT(jde float64) time.Time {
	y := 2000 + (jde-J2000)/365.25
	return julian.JDToTime(jde - DeltaT(y)/86400).UTC()
}

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// NormalizePi wraps an angle in radians into (-π, π].
func NormalizePi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Normalize2Pi wraps an angle in radians into [0, 2π).
func Normalize2Pi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func Normalize24(h float64) float64 {
	h = math.Mod(h, 24.0)
	if h < 0 {
		h += 24.0
	}
	return h
}
