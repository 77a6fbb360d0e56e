package eclipse

import (
	"math"
	"time"

	"github.com/thurmanmarka/skyglide/internal/horizon"
	"github.com/thurmanmarka/skyglide/internal/logging"
	"github.com/thurmanmarka/skyglide/internal/moon"
	"github.com/thurmanmarka/skyglide/internal/solver"
	"github.com/thurmanmarka/skyglide/internal/timeutil"
)

// shadowRadius returns, at t, the separation in degrees between the Moon's
// center and the shadow axis at which a contact happens.
type shadowRadius func(e *LunarElements, t float64) (r, dr float64)

func penumbralOuter(e *LunarElements, t float64) (float64, float64) {
	f, df := linear(e.F1, t)
	s, ds := linear(e.S, t)
	return f + s, df + ds
}

func umbralOuter(e *LunarElements, t float64) (float64, float64) {
	f, df := linear(e.F2, t)
	s, ds := linear(e.S, t)
	return f + s, df + ds
}

func umbralInner(e *LunarElements, t float64) (float64, float64) {
	f, df := linear(e.F2, t)
	s, ds := linear(e.S, t)
	return f - s, df - ds
}

// contactTime solves |(x, y)| = r(t) by Newton iteration from the linear
// estimate on the side of greatest eclipse given by sign.
func (e *LunarElements) contactTime(tm, gamma, sign float64, radius shadowRadius) (float64, bool) {
	_, dx := quad(e.X, tm)
	_, dy := quad(e.Y, tm)
	r, _ := radius(e, tm)
	if r <= gamma {
		return 0, false
	}
	t := tm + sign*math.Sqrt(r*r-gamma*gamma)/math.Hypot(dx, dy)

	for i := 0; i < maxIterations; i++ {
		x, dx := quad(e.X, t)
		y, dy := quad(e.Y, t)
		r, dr := radius(e, t)
		f := x*x + y*y - r*r
		df := 2 * (x*dx + y*dy - r*dr)
		step := f / df
		t -= step
		if math.Abs(step) < tolerance {
			return t, true
		}
	}
	notConverged("lunar contact", "jde", e.JDE0, "sign", sign)
	return t, true
}

func (e *LunarElements) circumstance(obs horizon.Observer, t float64) Circumstance {
	at := e.Instant(t)
	p := moon.Horizontal(obs, timeutil.NewMoment(at))
	x, _ := quad(e.X, t)
	y, _ := quad(e.Y, t)

	vis := Visible
	if p.AltitudeDeg() <= moon.RiseThreshold {
		vis = BelowHorizon
	}
	return Circumstance{
		T:             t,
		Time:          at,
		Altitude:      p.AltitudeDeg(),
		Azimuth:       p.AzimuthDeg(),
		PositionAngle: wrapDeg(math.Atan2(x, y)),
		Visibility:    vis,
	}
}

// Lunar computes the circumstances of e for obs. The umbral contacts fill
// Contacts; the penumbral ones are reported without horizon clipping.
// Magnitude is the umbral magnitude at greatest eclipse and Duration that
// of totality, or of the partial phase for a partial eclipse.
func (e LunarElements) Lunar(obs horizon.Observer) Details {
	d := Details{Lunar: true, Global: e.Kind, Kind: e.Kind}
	tm, gamma := e.Greatest()

	s, _ := linear(e.S, tm)
	f1, _ := linear(e.F1, tm)
	f2, _ := linear(e.F2, tm)
	d.Magnitude = (f2 + s - gamma) / (2 * s)
	d.PenumbralMagnitude = (f1 + s - gamma) / (2 * s)

	d.Contacts[Mid] = e.circumstance(obs, tm)
	if t, ok := e.contactTime(tm, gamma, -1, penumbralOuter); ok {
		c := e.circumstance(obs, t)
		d.P1 = &c
	}
	if t, ok := e.contactTime(tm, gamma, +1, penumbralOuter); ok {
		c := e.circumstance(obs, t)
		d.P4 = &c
	}

	t1, ok1 := e.contactTime(tm, gamma, -1, umbralOuter)
	t4, ok4 := e.contactTime(tm, gamma, +1, umbralOuter)
	if !ok1 || !ok4 {
		d.Kind = None
		return d
	}
	d.Contacts[First] = e.circumstance(obs, t1)
	d.Contacts[Fourth] = e.circumstance(obs, t4)

	t2, ok2 := e.contactTime(tm, gamma, -1, umbralInner)
	t3, ok3 := e.contactTime(tm, gamma, +1, umbralInner)
	central := ok2 && ok3
	if central {
		d.Contacts[Second] = e.circumstance(obs, t2)
		d.Contacts[Third] = e.circumstance(obs, t3)
	} else {
		d.Contacts[Second].Visibility = NotApplicable
		d.Contacts[Third].Visibility = NotApplicable
	}

	alt := moon.Altitude(obs)
	edge := func(from, to time.Time, dir solver.EventType, fallback Circumstance) Circumstance {
		if to.Before(from) {
			from, to = to, from
		}
		r := solver.FindAltitudeEvent(alt, from, to, moon.RiseThreshold, dir, 8, time.Second)
		if !r.OK {
			return fallback
		}
		return e.circumstance(obs, e.hoursAt(r.Time))
	}
	rise := func(below, above Circumstance) Circumstance {
		return edge(below.Time, above.Time, solver.CrossingUp, above)
	}
	set := func(below, above Circumstance) Circumstance {
		return edge(above.Time, below.Time, solver.CrossingDown, above)
	}
	if hc := clip(&d, central, rise, set); hc == unhandledCase {
		logging.Default().Debug("unhandled horizon pattern", "jde", e.JDE0, "lat", obs.Lat, "lon", obs.Lon)
	}

	switch {
	case !d.Visible:
		d.Kind = None
	case hasCentral(&d):
		d.Duration = centralDuration(&d)
	default:
		d.Kind = Partial
		d.Duration = d.Contacts[Fourth].Time.Sub(d.Contacts[First].Time).Round(time.Second)
	}
	return d
}

// hoursAt converts a UTC instant to hours from T0.
func (e *LunarElements) hoursAt(t time.Time) float64 {
	jde := timeutil.JulianDay(t) + e.DeltaT/86400
	return (jde - e.JDE0) * 24
}
