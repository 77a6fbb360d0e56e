package timeutil

import (
	"math"
	"testing"
	"time"
)

func TestNewMomentJ2000(t *testing.T) {
	m := NewMoment(time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(m.JD-J2000) > 1e-9 {
		t.Fatalf("JD = %.9f, want %.1f", m.JD, J2000)
	}
	if math.Abs(m.Days) > 1e-9 || math.Abs(m.Centuries) > 1e-12 {
		t.Fatalf("Days=%.9f Centuries=%.12f, want 0", m.Days, m.Centuries)
	}
}

func TestMomentRoundTrip(t *testing.T) {
	in := time.Date(2019, time.February, 6, 13, 10, 32, 0, time.UTC)
	m := NewMoment(in)
	back := MomentFromJD(m.JD)
	if d := back.Time.Sub(in); d > time.Millisecond || d < -time.Millisecond {
		t.Fatalf("round trip drift %v (got %v)", d, back.Time)
	}
}

func TestMomentUsesUTC(t *testing.T) {
	loc := time.FixedZone("MST", -7*3600)
	local := time.Date(2025, time.November, 28, 5, 0, 0, 0, loc)
	m := NewMoment(local)
	if m.Time.Location() != time.UTC {
		t.Fatalf("location = %v, want UTC", m.Time.Location())
	}
	if m.Time.Hour() != 12 {
		t.Fatalf("hour = %d, want 12", m.Time.Hour())
	}
}

func TestMomentAdd(t *testing.T) {
	m := NewMoment(time.Date(2024, time.April, 8, 0, 0, 0, 0, time.UTC))
	later := m.Add(1.5)
	if math.Abs(later.JD-m.JD-1.5/24) > 1e-9 {
		t.Fatalf("JD delta = %.9f", later.JD-m.JD)
	}
}

func TestDeltaT(t *testing.T) {
	tests := []struct {
		year     float64
		min, max float64
	}{
		{2000, 63, 65},
		{2017.6, 68, 72},
		{2024.3, 70, 76},
		{2100, 190, 215},
	}
	for _, tt := range tests {
		got := DeltaT(tt.year)
		if got < tt.min || got > tt.max {
			t.Errorf("DeltaT(%.1f) = %.2f, want in [%.0f, %.0f]", tt.year, got, tt.min, tt.max)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize360(-30); got != 330 {
		t.Errorf("Normalize360(-30) = %v", got)
	}
	if got := Normalize24(25.5); got != 1.5 {
		t.Errorf("Normalize24(25.5) = %v", got)
	}
	if got := NormalizePi(3 * math.Pi / 2); math.Abs(got+math.Pi/2) > 1e-12 {
		t.Errorf("NormalizePi(3π/2) = %v", got)
	}
	if got := Normalize2Pi(-math.Pi / 2); math.Abs(got-3*math.Pi/2) > 1e-12 {
		t.Errorf("Normalize2Pi(-π/2) = %v", got)
	}
}

func TestDecimalYear(t *testing.T) {
	got := DecimalYear(time.Date(2001, time.July, 2, 12, 0, 0, 0, time.UTC))
	if math.Abs(got-2001.5) > 0.002 {
		t.Fatalf("DecimalYear = %.4f", got)
	}
}
