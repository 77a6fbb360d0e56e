package sun

import (
	"math"
	"time"

	"github.com/thurmanmarka/skyglide/internal/horizon"
	"github.com/thurmanmarka/skyglide/internal/solver"
	"github.com/thurmanmarka/skyglide/internal/timeutil"
)

// ApparentHorizon is the altitude (in degrees) of the Sun's center when the
// apparent upper limb is on the horizon under standard refraction.
const ApparentHorizon = -0.833

// Twilight and daylight boundary altitudes in degrees.
const (
	UpperLimbClear   = -0.3
	CivilTwilight    = -6.0
	NauticalTwilight = -12.0
	AstroTwilight    = -18.0
	GoldenHourLimit  = 6.0
)

// j0 is the mean solar transit offset in days.
const j0 = 0.0009

// Altitude returns the Sun's geometric altitude in degrees for obs as a
// function of time.
func Altitude(obs horizon.Observer) solver.AltitudeFunc {
	return func(t time.Time) float64 {
		return Horizontal(obs, timeutil.NewMoment(t)).AltitudeDeg()
	}
}

// ObserverDip returns the horizon dip in degrees for an observer elevation in meters.
func ObserverDip(elevation float64) float64 {
	if elevation <= 0 {
		return 0
	}
	return -2.076 * math.Sqrt(elevation) / 60
}

// RiseSetForDay scans the 24 hours from start for sunrise and sunset.
// Returned times are UTC.
func RiseSetForDay(obs horizon.Observer, start time.Time) solver.DayEvents {
	return solver.ScanDay(Altitude(obs), start.UTC(), ApparentHorizon+ObserverDip(obs.Elevation))
}

// Crossing holds the morning (ascending) and evening (descending) instants
// at which the Sun's center passes a given altitude. A nil field means the
// Sun does not reach that altitude on the day.
type Crossing struct {
	Morning *time.Time
	Evening *time.Time
}

// Times is the set of daily solar events around one solar transit.
type Times struct {
	SolarNoon    time.Time
	Nadir        time.Time
	Horizon      Crossing // sunrise / sunset
	LimbClear    Crossing // sunrise end / sunset start
	Civil        Crossing // dawn / dusk
	Nautical     Crossing // nautical dawn / dusk
	Astronomical Crossing // night end / night
	Golden       Crossing // golden hour end / golden hour
}

// transit carries the per-day quantities shared by every crossing.
type transit struct {
	n, lw, phi float64
	M, L, dec  float64
	jnoon      float64
}

func newTransit(obs horizon.Observer, date time.Time) transit {
	lw := rad * -obs.Lon
	d := timeutil.DaysSinceJ2000(date)
	n := math.Round(d - j0 - lw/(2*math.Pi))
	ds := approxTransit(0, lw, n)
	M := MeanAnomaly(ds)
	L := EclipticLongitude(M, ds)
	return transit{
		n:     n,
		lw:    lw,
		phi:   rad * obs.Lat,
		M:     M,
		L:     L,
		dec:   Declination(L),
		jnoon: solarTransitJ(ds, M, L),
	}
}

func approxTransit(Ht, lw, n float64) float64 {
	return j0 + (Ht+lw)/(2*math.Pi) + n
}

func solarTransitJ(ds, M, L float64) float64 {
	return timeutil.J2000 + ds + 0.0053*math.Sin(M) - 0.0069*math.Sin(2*L)
}

func hourAngle(h, phi, dec float64) float64 {
	return math.Acos((math.Sin(h) - math.Sin(phi)*math.Sin(dec)) / (math.Cos(phi) * math.Cos(dec)))
}

// crossing solves the hour-angle equation once for altitude alt (degrees).
func (tr transit) crossing(alt float64) Crossing {
	w := hourAngle(alt*rad, tr.phi, tr.dec)
	if math.IsNaN(w) {
		return Crossing{}
	}
	jset := solarTransitJ(approxTransit(w, tr.lw, tr.n), tr.M, tr.L)
	jrise := tr.jnoon - (jset - tr.jnoon)
	rise := timeutil.MomentFromJD(jrise).Time
	set := timeutil.MomentFromJD(jset).Time
	return Crossing{Morning: &rise, Evening: &set}
}

// CrossingAt returns the closed-form crossings of alt (degrees) around the
// solar transit nearest to date.
func CrossingAt(obs horizon.Observer, date time.Time, alt float64) Crossing {
	return newTransit(obs, date).crossing(alt + ObserverDip(obs.Elevation))
}

// TimesFor computes the daily solar events around the solar transit nearest
// to date with the closed-form hour-angle approximation. Pass local noon to
// get the events of a local calendar day.
func TimesFor(obs horizon.Observer, date time.Time) Times {
	tr := newTransit(obs, date)
	dip := ObserverDip(obs.Elevation)
	return Times{
		SolarNoon:    timeutil.MomentFromJD(tr.jnoon).Time,
		Nadir:        timeutil.MomentFromJD(tr.jnoon - 0.5).Time,
		Horizon:      tr.crossing(ApparentHorizon + dip),
		LimbClear:    tr.crossing(UpperLimbClear + dip),
		Civil:        tr.crossing(CivilTwilight + dip),
		Nautical:     tr.crossing(NauticalTwilight + dip),
		Astronomical: tr.crossing(AstroTwilight + dip),
		Golden:       tr.crossing(GoldenHourLimit + dip),
	}
}

// nextDays bounds NextRiseSet.
const nextDays = 2

// NextRiseSet returns the next sunrise and sunset at or after t. Either is
// nil during polar day or night.
func NextRiseSet(obs horizon.Observer, t time.Time) (rise, set *time.Time) {
	return solver.NextEvents(Altitude(obs), t, ApparentHorizon+ObserverDip(obs.Elevation), nextDays)
}
