package moon

import (
	"time"

	"github.com/soniakeys/meeus/v3/apsis"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/skyglide/internal/timeutil"
)

// earthRadius is the equatorial radius in km used to turn horizontal
// parallax into distance.
const earthRadius = 6378.14

// anomalisticPerYear is the number of anomalistic months in a year.
const anomalisticPerYear = 13.2555

// Apsis is a lunar perigee or apogee.
type Apsis struct {
	Time     time.Time // UTC
	Distance float64   // km
}

// Apsides holds the next perigee and apogee.
type Apsides struct {
	Perigee Apsis
	Apogee  Apsis
}

// NextApsides returns the first perigee and apogee at or after t.
func NextApsides(t time.Time) Apsides {
	return Apsides{
		Perigee: nextApsis(apsis.Perigee, apsis.PerigeeParallax, t),
		Apogee:  nextApsis(apsis.Apogee, apsis.ApogeeParallax, t),
	}
}

func nextApsis(at func(float64) float64, parallax func(float64) unit.Angle, t time.Time) Apsis {
	y := timeutil.DecimalYear(t) - 1/anomalisticPerYear
	var a Apsis
	for i := 0; i < 8; i++ {
		a = Apsis{
			Time:     timeutil.TTToUT(at(y)),
			Distance: earthRadius / parallax(y).Sin(),
		}
		if !a.Time.Before(t) {
			break
		}
		y += 0.5 / anomalisticPerYear
	}
	return a
}
