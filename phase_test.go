package skyglide

import (
	"math"
	"testing"
	"time"
)

func TestMoonPhaseAt(t *testing.T) {
	loc := mustLoad(t, "America/Phoenix")

	tests := []struct {
		name       string
		at         time.Time
		minF, maxF float64
		want       string
	}{
		{"full", time.Date(2024, time.April, 23, 16, 49, 0, 0, loc), 0.98, 1, "Full Moon"},
		{"new", time.Date(2024, time.April, 8, 11, 21, 0, 0, loc), 0, 0.01, "New Moon"},
		{"first quarter", time.Date(2024, time.April, 15, 12, 13, 0, 0, loc), 0.42, 0.58, "First Quarter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := MoonPhaseAt(tt.at)
			if err != nil {
				t.Fatal(err)
			}
			if !p.Time.Equal(tt.at) || p.Time.Location() != loc {
				t.Errorf("time = %v, want %v", p.Time, tt.at)
			}
			if p.Fraction < tt.minF || p.Fraction > tt.maxF {
				t.Errorf("fraction = %.3f, want [%.2f, %.2f]", p.Fraction, tt.minF, tt.maxF)
			}
			if p.Name != tt.want {
				t.Errorf("name = %q, want %q", p.Name, tt.want)
			}
		})
	}
}

// TestMoonPhaseElongation checks that the illuminated fraction follows the
// Sun-Moon elongation through a lunation.
func TestMoonPhaseElongation(t *testing.T) {
	start := time.Date(2024, time.April, 8, 18, 21, 0, 0, time.UTC)
	for h := 24; h < 29*24; h += 24 {
		p, err := MoonPhaseAt(start.Add(time.Duration(h) * time.Hour))
		if err != nil {
			t.Fatal(err)
		}
		want := (1 - math.Cos(p.Elongation*math.Pi/180)) / 2
		if math.Abs(p.Fraction-want) > 0.02 {
			t.Errorf("+%dh: fraction %.3f, elongation %.1f° implies %.3f", h, p.Fraction, p.Elongation, want)
		}
		if waxing := h < 14*24; waxing != p.Waxing && math.Abs(float64(h)/24-14.8) > 1 {
			t.Errorf("+%dh: waxing = %v", h, p.Waxing)
		}
		if p.Phase < 0 || p.Phase > 1 {
			t.Errorf("+%dh: phase %.3f out of [0, 1]", h, p.Phase)
		}
	}
}

func TestNextMoonPhases(t *testing.T) {
	loc := mustLoad(t, "America/New_York")
	p := NextMoonPhases(time.Date(2024, time.April, 1, 0, 0, 0, 0, loc))

	tests := []struct {
		name string
		got  time.Time
		want time.Time
	}{
		{"new", p.New, time.Date(2024, time.April, 8, 18, 21, 0, 0, time.UTC)},
		{"first quarter", p.FirstQuarter, time.Date(2024, time.April, 15, 19, 13, 0, 0, time.UTC)},
		{"full", p.Full, time.Date(2024, time.April, 23, 23, 49, 0, 0, time.UTC)},
		{"last quarter", p.LastQuarter, time.Date(2024, time.April, 2, 3, 15, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if d := diffMinutes(tt.got, tt.want); d > 5 {
			t.Errorf("%s: %v, want %v", tt.name, tt.got, tt.want)
		}
		if tt.got.Location() != loc {
			t.Errorf("%s: location %v", tt.name, tt.got.Location())
		}
	}
}

func TestSeasonsFor(t *testing.T) {
	s := SeasonsFor(2000)
	if d := s.MarchEquinox.Sub(time.Date(2000, time.March, 20, 7, 36, 19, 0, time.UTC)); math.Abs(d.Seconds()) > 100 {
		t.Errorf("March equinox %v off by %v", s.MarchEquinox, d)
	}
	if d := s.JuneSolstice.Sub(time.Date(2000, time.June, 21, 1, 48, 46, 0, time.UTC)); math.Abs(d.Seconds()) > 100 {
		t.Errorf("June solstice %v off by %v", s.JuneSolstice, d)
	}
	if !s.MarchEquinox.Before(s.JuneSolstice) || !s.JuneSolstice.Before(s.SeptemberEquinox) ||
		!s.SeptemberEquinox.Before(s.DecemberSolstice) {
		t.Errorf("seasons out of order: %+v", s)
	}
	if s.Year != 2000 || s.DecemberSolstice.Year() != 2000 {
		t.Errorf("year = %d, December solstice %v", s.Year, s.DecemberSolstice)
	}
}

func TestNextPerigeeApogee(t *testing.T) {
	from := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	a := NextPerigeeApogee(from)

	// Perigee 2024-04-07 17:50 UTC, apogee 2024-04-20 02:09 UTC.
	if d := diffMinutes(a.Perigee.Time, time.Date(2024, time.April, 7, 17, 50, 0, 0, time.UTC)); d > 60 {
		t.Errorf("perigee %v", a.Perigee.Time)
	}
	if d := diffMinutes(a.Apogee.Time, time.Date(2024, time.April, 20, 2, 9, 0, 0, time.UTC)); d > 60 {
		t.Errorf("apogee %v", a.Apogee.Time)
	}
	if a.Perigee.Distance >= a.Apogee.Distance {
		t.Errorf("perigee %.0f km not closer than apogee %.0f km", a.Perigee.Distance, a.Apogee.Distance)
	}
}
