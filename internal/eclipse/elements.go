// Package eclipse computes local circumstances of solar and lunar eclipses
// from polynomial Besselian elements.
package eclipse

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const rad = math.Pi / 180

// Kind classifies an eclipse.
type Kind int

const (
	None Kind = iota
	Partial
	Annular
	Total
)

func (k Kind) String() string {
	switch k {
	case Partial:
		return "partial"
	case Annular:
		return "annular"
	case Total:
		return "total"
	default:
		return "none"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Row layouts of the element table.
const (
	solarRowLen = 28
	lunarRowLen = 20
)

// SolarElements are the Besselian elements of one solar eclipse. Polynomials
// are in t, hours from T0 (dynamical time); coefficients are listed from the
// constant term up.
type SolarElements struct {
	JDE0   float64    // Julian Ephemeris Day of T0
	T0     float64    // T0 hour of day, TT
	TMin   float64    // validity range of t
	TMax   float64    //
	DeltaT float64    // TT-UT, seconds
	X      [4]float64 // Earth radii
	Y      [4]float64 //
	D      [3]float64 // degrees
	Mu     [3]float64 // degrees
	L1     [3]float64 // penumbral radius, Earth radii
	L2     [3]float64 // umbral radius, Earth radii
	TanF1  float64
	TanF2  float64
	Kind   Kind // global type
}

// DecodeSolar unpacks a table row.
func DecodeSolar(r [solarRowLen]float64) SolarElements {
	return SolarElements{
		JDE0:   r[0],
		T0:     r[1],
		TMin:   r[2],
		TMax:   r[3],
		DeltaT: r[4],
		X:      [4]float64{r[5], r[6], r[7], r[8]},
		Y:      [4]float64{r[9], r[10], r[11], r[12]},
		D:      [3]float64{r[13], r[14], r[15]},
		Mu:     [3]float64{r[16], r[17], r[18]},
		L1:     [3]float64{r[19], r[20], r[21]},
		L2:     [3]float64{r[22], r[23], r[24]},
		TanF1:  r[25],
		TanF2:  r[26],
		Kind:   Kind(r[27]),
	}
}

// Row packs e into the table layout.
func (e SolarElements) Row() [solarRowLen]float64 {
	return [solarRowLen]float64{
		e.JDE0, e.T0, e.TMin, e.TMax, e.DeltaT,
		e.X[0], e.X[1], e.X[2], e.X[3],
		e.Y[0], e.Y[1], e.Y[2], e.Y[3],
		e.D[0], e.D[1], e.D[2],
		e.Mu[0], e.Mu[1], e.Mu[2],
		e.L1[0], e.L1[1], e.L1[2],
		e.L2[0], e.L2[1], e.L2[2],
		e.TanF1, e.TanF2,
		float64(e.Kind),
	}
}

// Instant converts t hours from T0 to UTC.
func (e SolarElements) Instant(t float64) time.Time {
	return julian.JDToTime(e.JDE0 + t/24 - e.DeltaT/86400).UTC()
}

// Greatest returns the t at which the shadow axis passes closest to the
// Earth's center, and that distance (gamma) in Earth radii.
func (e SolarElements) Greatest() (t, gamma float64) {
	for i := 0; i < 20; i++ {
		x, dx := cubic(e.X, t)
		y, dy := cubic(e.Y, t)
		step := (x*dx + y*dy) / (dx*dx + dy*dy)
		t -= step
		if math.Abs(step) < 1e-9 {
			break
		}
	}
	x, _ := cubic(e.X, t)
	y, _ := cubic(e.Y, t)
	return t, math.Hypot(x, y)
}

// LunarElements describe one lunar eclipse as the Moon's offset from the
// center of the Earth's shadow. Angles are in degrees, polynomials in t
// hours from T0 (dynamical time).
type LunarElements struct {
	JDE0   float64
	T0     float64
	TMin   float64
	TMax   float64
	DeltaT float64
	X      [3]float64 // eastward offset of the Moon from the shadow axis
	Y      [3]float64 // northward offset
	F1     [2]float64 // penumbral radius
	F2     [2]float64 // umbral radius
	S      [2]float64 // lunar semidiameter
	Kind   Kind
	Gamma  float64 // least separation, degrees
}

// DecodeLunar unpacks a table row.
func DecodeLunar(r [lunarRowLen]float64) LunarElements {
	return LunarElements{
		JDE0:   r[0],
		T0:     r[1],
		TMin:   r[2],
		TMax:   r[3],
		DeltaT: r[4],
		X:      [3]float64{r[5], r[6], r[7]},
		Y:      [3]float64{r[8], r[9], r[10]},
		F1:     [2]float64{r[11], r[12]},
		F2:     [2]float64{r[13], r[14]},
		S:      [2]float64{r[15], r[16]},
		Kind:   Kind(r[17]),
		Gamma:  r[18],
	}
}

// Row packs e into the table layout.
func (e LunarElements) Row() [lunarRowLen]float64 {
	return [lunarRowLen]float64{
		e.JDE0, e.T0, e.TMin, e.TMax, e.DeltaT,
		e.X[0], e.X[1], e.X[2],
		e.Y[0], e.Y[1], e.Y[2],
		e.F1[0], e.F1[1],
		e.F2[0], e.F2[1],
		e.S[0], e.S[1],
		float64(e.Kind), e.Gamma, 0,
	}
}

// Instant converts t hours from T0 to UTC.
func (e LunarElements) Instant(t float64) time.Time {
	return julian.JDToTime(e.JDE0 + t/24 - e.DeltaT/86400).UTC()
}

// cubic evaluates a polynomial of up to degree 3 and its derivative.
func cubic(c [4]float64, t float64) (v, dv float64) {
	v = ((c[3]*t+c[2])*t+c[1])*t + c[0]
	dv = (3*c[3]*t+2*c[2])*t + c[1]
	return v, dv
}

// quad evaluates a polynomial of up to degree 2 and its derivative.
func quad(c [3]float64, t float64) (v, dv float64) {
	v = (c[2]*t+c[1])*t + c[0]
	dv = 2*c[2]*t + c[1]
	return v, dv
}

// linear evaluates a first-degree polynomial and its derivative.
func linear(c [2]float64, t float64) (v, dv float64) {
	return c[1]*t + c[0], c[1]
}
