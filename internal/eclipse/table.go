package eclipse

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/soniakeys/meeus/v3/moonposition"

	"github.com/thurmanmarka/skyglide/internal/logging"
	"github.com/thurmanmarka/skyglide/internal/moon"
	"github.com/thurmanmarka/skyglide/internal/timeutil"
)

// Range of years covered by the element table.
const (
	FirstYear = 2000
	LastYear  = 2100
)

const (
	// Elements are fitted to hourly samples over [-fitSpan, fitSpan].
	fitSpan = 5

	// Syzygies farther than this from a node cannot produce an eclipse.
	solarLatLimit = 1.6 * rad
	lunarLatLimit = 1.3 * rad

	// Polar radius of the Earth in equatorial radii.
	polarRadius = 0.99664719
)

var table struct {
	once  sync.Once
	solar [][solarRowLen]float64
	lunar [][lunarRowLen]float64
}

func load() {
	table.once.Do(func() {
		start := time.Now()
		table.solar = buildSolar(FirstYear, LastYear)
		table.lunar = buildLunar(FirstYear, LastYear)
		logging.Default().Debug("eclipse elements generated",
			"solar", len(table.solar),
			"lunar", len(table.lunar),
			"elapsed", time.Since(start))
	})
}

// SolarTable returns the elements of every solar eclipse between FirstYear
// and LastYear, in chronological order.
func SolarTable() []SolarElements {
	load()
	out := make([]SolarElements, len(table.solar))
	for i, r := range table.solar {
		out[i] = DecodeSolar(r)
	}
	return out
}

// LunarTable returns the elements of every partial or total lunar eclipse
// between FirstYear and LastYear, in chronological order.
func LunarTable() []LunarElements {
	load()
	out := make([]LunarElements, len(table.lunar))
	for i, r := range table.lunar {
		out[i] = DecodeLunar(r)
	}
	return out
}

// FindSolar returns the solar eclipse whose greatest eclipse falls within a
// day of t.
func FindSolar(t time.Time) (SolarElements, bool) {
	jd := timeutil.JulianDay(t)
	for _, e := range SolarTable() {
		if math.Abs(e.JDE0-jd) < 1 {
			return e, true
		}
	}
	return SolarElements{}, false
}

// FindLunar returns the lunar eclipse whose greatest eclipse falls within a
// day of t.
func FindLunar(t time.Time) (LunarElements, bool) {
	jd := timeutil.JulianDay(t)
	for _, e := range LunarTable() {
		if math.Abs(e.JDE0-jd) < 1 {
			return e, true
		}
	}
	return LunarElements{}, false
}

func buildSolar(from, to int) [][solarRowLen]float64 {
	var rows [][solarRowLen]float64
	for _, jde := range moon.Syzygies(from, to, false) {
		if _, lat, _ := moonposition.Position(jde); math.Abs(lat.Rad()) > solarLatLimit {
			continue
		}
		e, ok := fitSolar(jde)
		if !ok {
			continue
		}
		rows = append(rows, e.Row())
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return rows
}

func buildLunar(from, to int) [][lunarRowLen]float64 {
	var rows [][lunarRowLen]float64
	for _, jde := range moon.Syzygies(from, to, true) {
		if _, lat, _ := moonposition.Position(jde); math.Abs(lat.Rad()) > lunarLatLimit {
			continue
		}
		e, ok := fitLunar(jde)
		if !ok {
			continue
		}
		rows = append(rows, e.Row())
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return rows
}

// wholeHour rounds a JDE to the nearest whole hour.
func wholeHour(jde float64) float64 {
	return math.Round(jde*24) / 24
}

// hourOfDay returns the TT hour of day of jde.
func hourOfDay(jde float64) float64 {
	f := jde + 0.5
	return math.Round((f - math.Floor(f)) * 24)
}

func deltaTAt(jde float64) float64 {
	return timeutil.DeltaT(2000 + (jde-timeutil.J2000)/365.25)
}

// fitSolar derives polynomial elements around the new moon at jde. T0 is
// moved to the whole hour nearest greatest eclipse before the final fit.
func fitSolar(jde float64) (SolarElements, bool) {
	jde0 := wholeHour(jde)
	e, err := solarElementsAt(jde0)
	if err != nil {
		logging.Default().Warn("solar element fit failed", "jde", jde0, "err", err)
		return SolarElements{}, false
	}
	if tm, _ := e.Greatest(); math.Abs(tm) > 0.5 {
		jde0 += math.Round(tm) / 24
		if e, err = solarElementsAt(jde0); err != nil {
			logging.Default().Warn("solar element fit failed", "jde", jde0, "err", err)
			return SolarElements{}, false
		}
	}

	tm, gamma := e.Greatest()
	l1, _ := quad(e.L1, tm)
	l2, _ := quad(e.L2, tm)
	switch {
	case gamma >= 1+l1:
		return SolarElements{}, false
	case gamma < polarRadius+math.Abs(l2) && l2 < 0:
		e.Kind = Total
	case gamma < polarRadius+math.Abs(l2):
		e.Kind = Annular
	default:
		e.Kind = Partial
	}
	return e, true
}

func solarElementsAt(jde0 float64) (SolarElements, error) {
	n := 2*fitSpan + 1
	ts := make([]float64, n)
	var xs, ys, ds, mus, l1s, l2s []float64
	var tf1, tf2 float64
	for i := range ts {
		t := float64(i - fitSpan)
		ts[i] = t
		ax := solarAxis(ephemerisAt(jde0 + t/24))
		mu := ax.mu
		if i > 0 {
			prev := mus[i-1] * rad
			for mu < prev {
				mu += 2 * math.Pi
			}
			for mu-prev > 2*math.Pi {
				mu -= 2 * math.Pi
			}
		}
		xs = append(xs, ax.x)
		ys = append(ys, ax.y)
		ds = append(ds, ax.d/rad)
		mus = append(mus, mu/rad)
		l1s = append(l1s, ax.l1)
		l2s = append(l2s, ax.l2)
		if t == 0 {
			tf1, tf2 = ax.tanF1, ax.tanF2
		}
	}

	var fits [6][]float64
	for i, s := range []struct {
		vs  []float64
		deg int
	}{{xs, 3}, {ys, 3}, {ds, 2}, {mus, 2}, {l1s, 2}, {l2s, 2}} {
		c, err := polyfit(ts, s.vs, s.deg)
		if err != nil {
			return SolarElements{}, err
		}
		fits[i] = c
	}

	e := SolarElements{
		JDE0:   jde0,
		T0:     hourOfDay(jde0),
		TMin:   -fitSpan,
		TMax:   fitSpan,
		DeltaT: deltaTAt(jde0),
		TanF1:  tf1,
		TanF2:  tf2,
	}
	copy(e.X[:], fits[0])
	copy(e.Y[:], fits[1])
	copy(e.D[:], fits[2])
	copy(e.Mu[:], fits[3])
	copy(e.L1[:], fits[4])
	copy(e.L2[:], fits[5])
	e.Mu[0] = timeutil.Normalize360(e.Mu[0])
	return e, nil
}

// fitLunar derives elements around the full moon at jde. Penumbral-only
// eclipses are skipped.
func fitLunar(jde float64) (LunarElements, bool) {
	jde0 := wholeHour(jde)
	e, err := lunarElementsAt(jde0)
	if err != nil {
		logging.Default().Warn("lunar element fit failed", "jde", jde0, "err", err)
		return LunarElements{}, false
	}
	if tm, _ := e.Greatest(); math.Abs(tm) > 0.5 {
		jde0 += math.Round(tm) / 24
		if e, err = lunarElementsAt(jde0); err != nil {
			logging.Default().Warn("lunar element fit failed", "jde", jde0, "err", err)
			return LunarElements{}, false
		}
	}

	tm, gamma := e.Greatest()
	umbra, _ := linear(e.F2, tm)
	s, _ := linear(e.S, tm)
	switch {
	case gamma < umbra-s:
		e.Kind = Total
	case gamma < umbra+s:
		e.Kind = Partial
	default:
		return LunarElements{}, false
	}
	e.Gamma = gamma
	return e, true
}

func lunarElementsAt(jde0 float64) (LunarElements, error) {
	n := 2*fitSpan + 1
	ts := make([]float64, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	f1s := make([]float64, n)
	f2s := make([]float64, n)
	ss := make([]float64, n)
	for i := range ts {
		t := float64(i - fitSpan)
		o := lunarOffset(ephemerisAt(jde0 + t/24))
		ts[i], xs[i], ys[i] = t, o.x, o.y
		f1s[i], f2s[i], ss[i] = o.penumbra, o.umbra, o.semidiam
	}

	e := LunarElements{
		JDE0:   jde0,
		T0:     hourOfDay(jde0),
		TMin:   -fitSpan,
		TMax:   fitSpan,
		DeltaT: deltaTAt(jde0),
	}
	for _, s := range []struct {
		vs  []float64
		dst []float64
	}{{xs, e.X[:]}, {ys, e.Y[:]}, {f1s, e.F1[:]}, {f2s, e.F2[:]}, {ss, e.S[:]}} {
		c, err := polyfit(ts, s.vs, len(s.dst)-1)
		if err != nil {
			return LunarElements{}, err
		}
		copy(s.dst, c)
	}
	return e, nil
}

// Greatest returns the t of least separation between the Moon and the
// shadow axis, and that separation in degrees.
func (e LunarElements) Greatest() (t, gamma float64) {
	for i := 0; i < 20; i++ {
		x, dx := quad(e.X, t)
		y, dy := quad(e.Y, t)
		step := (x*dx + y*dy) / (dx*dx + dy*dy)
		t -= step
		if math.Abs(step) < 1e-9 {
			break
		}
	}
	x, _ := quad(e.X, t)
	y, _ := quad(e.Y, t)
	return t, math.Hypot(x, y)
}
