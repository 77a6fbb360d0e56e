package sun

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solstice"
)

// Seasons holds the equinox and solstice instants of one year, in UTC.
type Seasons struct {
	MarchEquinox     time.Time
	JuneSolstice     time.Time
	SeptemberEquinox time.Time
	DecemberSolstice time.Time
}

// SeasonsFor returns the equinoxes and solstices of year.
//
// The series yields dynamical time; the instants are reported on that scale
// without a ΔT correction, which is how almanac tables usually list them.
func SeasonsFor(year int) Seasons {
	at := func(jde float64) time.Time {
		return julian.JDToTime(jde).UTC()
	}
	return Seasons{
		MarchEquinox:     at(solstice.March(year)),
		JuneSolstice:     at(solstice.June(year)),
		SeptemberEquinox: at(solstice.September(year)),
		DecemberSolstice: at(solstice.December(year)),
	}
}
