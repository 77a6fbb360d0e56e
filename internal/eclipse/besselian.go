package eclipse

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/thurmanmarka/skyglide/internal/horizon"
)

const (
	earthRadiusKm = 6378.137
	auKm          = 149597870.7

	// Solar radius in Earth radii (959.63" at 1 AU).
	sunRadius = 109.1217

	// Lunar radius in Earth radii for the penumbral and umbral cones.
	kPenumbra = 0.2725076
	kUmbra    = 0.272281

	// Lunar semidiameter per unit horizontal parallax.
	kLunar = 0.272488
	// Enlargement of the Earth's shadow by the atmosphere.
	shadowEnlargement = 1.02
)

// ephemeris holds apparent geocentric positions at one dynamical instant.
type ephemeris struct {
	sunRA, sunDec, sunDist    float64 // radians, Earth radii
	moonRA, moonDec, moonDist float64 // radians, Earth radii
	sidereal                  float64 // apparent sidereal time at jde read as UT, radians
}

func ephemerisAt(jde float64) ephemeris {
	T := base.J2000Century(jde)
	sra, sdec := solar.ApparentEquatorial(jde)

	lon, lat, dist := moonposition.Position(jde)
	dpsi, deps := nutation.Nutation(jde)
	eps := nutation.MeanObliquity(jde) + deps
	m := horizon.FromEcliptic((lon + dpsi).Rad(), lat.Rad(), eps.Rad())

	return ephemeris{
		sunRA:    sra.Rad(),
		sunDec:   sdec.Rad(),
		sunDist:  solar.Radius(T) * auKm / earthRadiusKm,
		moonRA:   m.RA,
		moonDec:  m.Dec,
		moonDist: dist / earthRadiusKm,
		sidereal: sidereal.Apparent(jde).Angle().Rad(),
	}
}

// shadowAxis holds the instantaneous Besselian quantities of a solar
// eclipse. Angles in radians, lengths in Earth radii.
type shadowAxis struct {
	x, y, d, mu  float64
	l1, l2       float64
	tanF1, tanF2 float64
}

func solarAxis(e ephemeris) shadowAxis {
	b := e.moonDist / e.sunDist
	cs, cm := math.Cos(e.sunDec), math.Cos(e.moonDec)

	gx := cs*math.Cos(e.sunRA) - b*cm*math.Cos(e.moonRA)
	gy := cs*math.Sin(e.sunRA) - b*cm*math.Sin(e.moonRA)
	gz := math.Sin(e.sunDec) - b*math.Sin(e.moonDec)
	g := math.Sqrt(gx*gx + gy*gy + gz*gz)

	a := math.Atan2(gy, gx)
	d := math.Asin(gz / g)
	sunMoon := g * e.sunDist

	dra := e.moonRA - a
	sd, cd := math.Sin(d), math.Cos(d)
	x := e.moonDist * cm * math.Sin(dra)
	y := e.moonDist * (math.Sin(e.moonDec)*cd - cm*sd*math.Cos(dra))
	z := e.moonDist * (math.Sin(e.moonDec)*sd + cm*cd*math.Cos(dra))

	sinF1 := (sunRadius + kPenumbra) / sunMoon
	sinF2 := (sunRadius - kUmbra) / sunMoon
	tanF1 := math.Tan(math.Asin(sinF1))
	tanF2 := math.Tan(math.Asin(sinF2))

	return shadowAxis{
		x:     x,
		y:     y,
		d:     d,
		mu:    e.sidereal - a,
		l1:    (z + kPenumbra/sinF1) * tanF1,
		l2:    (z - kUmbra/sinF2) * tanF2,
		tanF1: tanF1,
		tanF2: tanF2,
	}
}

// shadowOffset holds the Moon's offset from the antisolar point and the
// shadow radii, all in degrees.
type shadowOffset struct {
	x, y     float64
	penumbra float64
	umbra    float64
	semidiam float64
}

func lunarOffset(e ephemeris) shadowOffset {
	ara := e.sunRA + math.Pi
	adec := -e.sunDec
	dra := e.moonRA - ara
	cm := math.Cos(e.moonDec)

	x := cm * math.Sin(dra)
	y := math.Sin(e.moonDec)*math.Cos(adec) - cm*math.Sin(adec)*math.Cos(dra)

	au := e.sunDist * earthRadiusKm / auKm
	piMoon := math.Asin(1/e.moonDist) / rad
	piSun := 8.794148 / 3600 / au
	sdSun := 959.63 / 3600 / au

	return shadowOffset{
		x:        x / rad,
		y:        y / rad,
		penumbra: shadowEnlargement * (0.998340*piMoon + piSun + sdSun),
		umbra:    shadowEnlargement * (0.998340*piMoon + piSun - sdSun),
		semidiam: kLunar * piMoon,
	}
}
