package horizon

import (
	"math"
)

// degenerateEps is the separation (radians) below which two points are
// treated as coincident.
const degenerateEps = 1e-6

// Separation returns the angular distance between two equatorial positions
// in radians, using the haversine form.
func Separation(a, b Equatorial) float64 {
	dDec := b.Dec - a.Dec
	dRA := b.RA - a.RA
	h := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(a.Dec)*math.Cos(b.Dec)*math.Sin(dRA/2)*math.Sin(dRA/2)
	if h > 1 {
		h = 1
	}
	return 2 * math.Asin(math.Sqrt(h))
}

// PositionAngle returns the position angle of b as seen from a, measured
// from north through east, in radians [0, 2π). For coincident or antipodal
// points the angle is undefined: it returns 0 and ok=false.
func PositionAngle(a, b Equatorial) (angle float64, ok bool) {
	sep := Separation(a, b)
	if sep < degenerateEps || math.Pi-sep < degenerateEps {
		return 0, false
	}
	dRA := b.RA - a.RA
	y := math.Sin(dRA) * math.Cos(b.Dec)
	x := math.Cos(a.Dec)*math.Sin(b.Dec) - math.Sin(a.Dec)*math.Cos(b.Dec)*math.Cos(dRA)
	angle = math.Atan2(y, x)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle, true
}
