package eclipse

import (
	"math"

	"github.com/thurmanmarka/skyglide/internal/horizon"
	"github.com/thurmanmarka/skyglide/internal/logging"
)

const (
	// Altitude of the Sun's center at rise and set, radians.
	sunHorizon = -0.00524

	// Seconds of ΔT per radian of Earth rotation.
	deltaTRotation = 13713.44

	maxIterations = 50
	tolerance     = 1e-6

	// Iterations of the rise/set refinement.
	edgeIterations = 3
	edgeTolerance  = 1e-5
)

// notConverged records an iteration that hit maxIterations. The last
// estimate is still usable, so this is a debug line, not a warning.
func notConverged(what string, args ...any) {
	logging.Default().Debug(what+" did not converge", args...)
}

// site holds the observer's geocentric constants.
type site struct {
	lat, lon       float64 // geodetic latitude, east longitude, radians
	rhoSin         float64 // ρ sin φ'
	rhoCos         float64 // ρ cos φ'
	sinLat, cosLat float64
}

func newSite(obs horizon.Observer) site {
	lat := obs.Lat * rad
	u := math.Atan(polarRadius * math.Tan(lat))
	h := obs.Elevation / (earthRadiusKm * 1000)
	return site{
		lat:    lat,
		lon:    obs.Lon * rad,
		rhoSin: polarRadius*math.Sin(u) + h*math.Sin(lat),
		rhoCos: math.Cos(u) + h*math.Cos(lat),
		sinLat: math.Sin(lat),
		cosLat: math.Cos(lat),
	}
}

// local holds the time-dependent and observer-dependent quantities of a
// solar eclipse at t.
type local struct {
	t             float64
	x, y          float64
	dx, dy        float64
	d, dd         float64 // radians, radians/hour
	mu, dmu       float64
	l1, l2        float64
	h             float64 // hour angle of the shadow axis
	xi, eta, zeta float64
	u, v          float64
	a, b          float64
	l1p, l2p      float64 // shadow radii on the observer's plane
	n2            float64
}

func (e *SolarElements) at(s site, t float64) local {
	var c local
	c.t = t
	c.x, c.dx = cubic(e.X, t)
	c.y, c.dy = cubic(e.Y, t)
	d, dd := quad(e.D, t)
	c.d, c.dd = d*rad, dd*rad
	mu, dmu := quad(e.Mu, t)
	c.mu, c.dmu = mu*rad, dmu*rad
	c.l1, _ = quad(e.L1, t)
	c.l2, _ = quad(e.L2, t)

	c.h = c.mu + s.lon - e.DeltaT/deltaTRotation
	sinH, cosH := math.Sincos(c.h)
	sinD, cosD := math.Sincos(c.d)

	c.xi = s.rhoCos * sinH
	c.eta = s.rhoSin*cosD - s.rhoCos*cosH*sinD
	c.zeta = s.rhoSin*sinD + s.rhoCos*cosH*cosD
	dxi := c.dmu * s.rhoCos * cosH
	deta := c.dmu*c.xi*sinD - c.zeta*c.dd

	c.u = c.x - c.xi
	c.v = c.y - c.eta
	c.a = c.dx - dxi
	c.b = c.dy - deta
	c.l1p = c.l1 - c.zeta*e.TanF1
	c.l2p = c.l2 - c.zeta*e.TanF2
	c.n2 = c.a*c.a + c.b*c.b
	return c
}

// m is the observer's distance from the shadow axis.
func (c local) m() float64 { return math.Hypot(c.u, c.v) }

// magnitude is the fraction of the Sun's diameter covered.
func (c local) magnitude() float64 { return (c.l1p - c.m()) / (c.l1p + c.l2p) }

// ratio is the apparent Moon/Sun diameter ratio.
func (c local) ratio() float64 { return (c.l1p - c.l2p) / (c.l1p + c.l2p) }

func (c local) altitude(s site) float64 {
	sinD, cosD := math.Sincos(c.d)
	return math.Asin(sinD*s.sinLat + cosD*s.cosLat*math.Cos(c.h))
}

func (c local) circumstance(e *SolarElements, s site) Circumstance {
	sinH, cosH := math.Sincos(c.h)
	sinD, cosD := math.Sincos(c.d)
	alt := c.altitude(s)
	azi := math.Atan2(-sinH*cosD, sinD*s.cosLat-cosH*s.sinLat*cosD)

	vis := Visible
	if alt <= sunHorizon {
		vis = BelowHorizon
	}
	return Circumstance{
		T:             c.t,
		Time:          e.Instant(c.t),
		Altitude:      alt / rad,
		Azimuth:       wrapDeg(azi),
		PositionAngle: wrapDeg(math.Atan2(c.u, c.v)),
		Visibility:    vis,
	}
}

// greatest iterates from t=0 to the instant of least distance between the
// observer and the shadow axis.
func (e *SolarElements) greatest(s site) (c local, iterations int, residual float64) {
	c = e.at(s, 0)
	step := 1.0
	for iterations = 0; iterations < maxIterations && math.Abs(step) > tolerance; iterations++ {
		step = (c.u*c.a + c.v*c.b) / c.n2
		c = e.at(s, c.t-step)
	}
	if math.Abs(step) > tolerance {
		notConverged("greatest eclipse", "jde", e.JDE0, "residual", step)
	}
	return c, iterations, math.Abs(step)
}

// contact refines an approximate contact time where the observer is at
// distance l from the shadow axis; radius picks l1' or l2'. sign is -1 for
// the ingress and +1 for the egress.
func (e *SolarElements) contact(s site, t, sign float64, radius func(local) float64) local {
	c := e.at(s, t)
	step := 1.0
	for i := 0; i < maxIterations && math.Abs(step) > tolerance; i++ {
		n := math.Sqrt(c.n2)
		l := radius(c)
		k := (c.a*c.v - c.u*c.b) / n / l
		step = (c.u*c.a+c.v*c.b)/c.n2 - sign*sqrtClamped(1-k*k)*l/n
		c = e.at(s, c.t-step)
	}
	return c
}

// span returns the half duration from mid to the contacts at radius l.
func span(mid local, l float64) float64 {
	n := math.Sqrt(mid.n2)
	k := (mid.u*mid.b - mid.a*mid.v) / n / l
	return sqrtClamped(1-k*k) * l / n
}

func sqrtClamped(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Sqrt(x)
}

func penumbra(c local) float64 { return c.l1p }
func umbra(c local) float64    { return c.l2p }

// edge refines the time the Sun's center crosses the horizon near c. riset
// is -1 for sunrise and +1 for sunset.
func (e *SolarElements) edge(s site, c local, riset float64) local {
	for i := 0; i < edgeIterations; i++ {
		sinD, cosD := math.Sincos(c.d)
		cosH0 := (math.Sin(sunHorizon) - s.sinLat*sinD) / (s.cosLat * cosD)
		h0 := math.Acos(math.Max(-1, math.Min(1, cosH0)))
		diff := (riset*h0 - c.h) / c.dmu
		for diff >= 12 {
			diff -= 24
		}
		for diff <= -12 {
			diff += 24
		}
		c = e.at(s, c.t+diff)
		if math.Abs(diff) < edgeTolerance {
			break
		}
	}
	return c
}

// Solar computes the local circumstances of e for obs.
func (e SolarElements) Solar(obs horizon.Observer) Details {
	s := newSite(obs)
	d := Details{Global: e.Kind}

	mid, iters, residual := e.greatest(s)
	d.Iterations, d.Residual = iters, residual

	if mid.magnitude() <= 0 {
		d.Kind = None
		d.Contacts[Mid] = mid.circumstance(&e, s)
		return d
	}

	c1 := e.contact(s, mid.t-span(mid, mid.l1p), -1, penumbra)
	c4 := e.contact(s, mid.t+span(mid, mid.l1p), +1, penumbra)
	d.Contacts[First] = c1.circumstance(&e, s)
	d.Contacts[Mid] = mid.circumstance(&e, s)
	d.Contacts[Fourth] = c4.circumstance(&e, s)

	central := mid.m() < math.Abs(mid.l2p)
	if central {
		// A negative umbral radius (total eclipse) reverses the roles of the
		// ingress and egress solutions.
		sign := 1.0
		if mid.l2p < 0 {
			sign = -1
		}
		half := math.Abs(span(mid, mid.l2p))
		c2 := e.contact(s, mid.t-half, -sign, umbra)
		c3 := e.contact(s, mid.t+half, sign, umbra)
		d.Contacts[Second] = c2.circumstance(&e, s)
		d.Contacts[Third] = c3.circumstance(&e, s)
		d.Kind = Total
		if mid.l2p > 0 {
			d.Kind = Annular
		}
	} else {
		d.Contacts[Second].Visibility = NotApplicable
		d.Contacts[Third].Visibility = NotApplicable
		d.Kind = Partial
	}

	rise := func(below, _ Circumstance) Circumstance {
		return e.edge(s, e.at(s, below.T), -1).circumstance(&e, s)
	}
	set := func(below, _ Circumstance) Circumstance {
		return e.edge(s, e.at(s, below.T), +1).circumstance(&e, s)
	}
	if hc := clip(&d, central, rise, set); hc == unhandledCase {
		logging.Default().Debug("unhandled horizon pattern", "jde", e.JDE0, "lat", obs.Lat, "lon", obs.Lon)
	}
	if !d.Visible {
		d.Kind = None
	}

	if d.Kind != None && !hasCentral(&d) {
		d.Kind = Partial
	}

	at := e.at(s, d.Contacts[Mid].T)
	d.Ratio = at.ratio()
	d.Magnitude = at.magnitude()
	if d.Kind == Total || d.Kind == Annular {
		d.Magnitude = d.Ratio
		d.Duration = centralDuration(&d)
	}
	d.Coverage = coverage(at, d.Kind)
	return d
}

// coverage is the fraction of the Sun's disc area hidden by the Moon.
func coverage(c local, kind Kind) float64 {
	mag := c.magnitude()
	switch {
	case mag <= 0:
		return 0
	case mag >= 1:
		return 1
	}
	ratio := c.ratio()
	if kind == Annular {
		return ratio * ratio
	}
	m := c.m()
	l1, l2 := c.l1p, c.l2p
	cc := math.Acos(clamp1((l1*l1 + l2*l2 - 2*m*m) / (l1*l1 - l2*l2)))
	bb := math.Acos(clamp1((l1*l2 + m*m) / m / (l1 + l2)))
	aa := math.Pi - bb - cc
	return (ratio*ratio*aa + bb - ratio*math.Sin(cc)) / math.Pi
}

func clamp1(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
