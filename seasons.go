package skyglide

import (
	"time"

	"github.com/thurmanmarka/skyglide/internal/metrics"
	"github.com/thurmanmarka/skyglide/internal/moon"
	"github.com/thurmanmarka/skyglide/internal/sun"
)

// Seasons holds the equinox and solstice instants of one year. The
// instants are in dynamical time, as almanacs list them; they run about a
// minute ahead of UTC.
type Seasons struct {
	Year             int
	MarchEquinox     time.Time
	JuneSolstice     time.Time
	SeptemberEquinox time.Time
	DecemberSolstice time.Time
}

// SeasonsFor returns the equinoxes and solstices of year.
func SeasonsFor(year int) Seasons {
	defer metrics.Track("seasons")()

	s := sun.SeasonsFor(year)
	return Seasons{
		Year:             year,
		MarchEquinox:     s.MarchEquinox,
		JuneSolstice:     s.JuneSolstice,
		SeptemberEquinox: s.SeptemberEquinox,
		DecemberSolstice: s.DecemberSolstice,
	}
}

// Apsis is a lunar perigee or apogee.
type Apsis struct {
	Time     time.Time
	Distance float64 // km, center to center
}

// Apsides holds the next lunar perigee and apogee.
type Apsides struct {
	Perigee Apsis
	Apogee  Apsis
}

// NextPerigeeApogee returns the first lunar perigee and apogee at or after
// t, in t's location.
func NextPerigeeApogee(t time.Time) Apsides {
	defer metrics.Track("apsides")()

	a := moon.NextApsides(t)
	tz := t.Location()
	return Apsides{
		Perigee: Apsis{Time: a.Perigee.Time.In(tz), Distance: a.Perigee.Distance},
		Apogee:  Apsis{Time: a.Apogee.Time.In(tz), Distance: a.Apogee.Distance},
	}
}
