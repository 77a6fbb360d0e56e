package skyglide_test

import (
	"math"
	"testing"
	"time"

	"github.com/thurmanmarka/skyglide"
)

func TestDaylightHoursIsRiseToSet(t *testing.T) {
	locPHX, err := time.LoadLocation("America/Phoenix")
	if err != nil {
		t.Skip(err)
	}
	cases := []struct {
		name   string
		coords skyglide.Coordinates
		date   time.Time
		want   float64 // hours from published rise and set
	}{
		{"Phoenix 2025-11-30", skyglide.Coordinates{Lat: 33.4484, Lon: -112.0740},
			time.Date(2025, time.November, 30, 0, 0, 0, 0, locPHX), 10 + 8.0/60},
		{"New York 2025-11-30", skyglide.Coordinates{Lat: 40.7128, Lon: -74.0060},
			time.Date(2025, time.November, 30, 0, 0, 0, 0, time.FixedZone("EST", -5*3600)), 9 + 32.0/60},
		{"Dallas 2024-04-08", skyglide.Coordinates{Lat: 32.7767, Lon: -96.7970},
			time.Date(2024, time.April, 8, 0, 0, 0, 0, time.FixedZone("CDT", -5*3600)), 12 + 40.0/60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hours, err := skyglide.DaylightHours(tc.coords, tc.date)
			if err != nil {
				t.Fatal(err)
			}
			rs, err := skyglide.RiseSetFor(skyglide.Sun, tc.coords, tc.date)
			if err != nil {
				t.Fatal(err)
			}
			if got := rs.Set.Sub(rs.Rise).Hours(); math.Abs(got-hours) > 1e-9 {
				t.Errorf("daylight %.4f h, rise to set %.4f h", hours, got)
			}
			if math.Abs(hours-tc.want) > 0.1 {
				t.Errorf("daylight %.3f h, want ~%.3f", hours, tc.want)
			}
		})
	}
}

func TestDaylightHoursSeasons(t *testing.T) {
	dallas := skyglide.Coordinates{Lat: 32.7767, Lon: -96.7970}
	prev := 0.0
	for m := time.January; m <= time.December; m++ {
		hours, err := skyglide.DaylightHours(dallas, time.Date(2025, m, 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatal(err)
		}
		// Compare within each half year; the solstices fall between samples.
		lengthening := m <= time.June
		if m != time.January && m != time.July && (hours > prev) != lengthening {
			t.Errorf("%v: %.3f h after %.3f h", m, hours, prev)
		}
		prev = hours
	}

	// Opposite latitudes split the solstice, plus twice the refraction and
	// semidiameter margin.
	solstice := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)
	north, err := skyglide.DaylightHours(skyglide.Coordinates{Lat: 40}, solstice)
	if err != nil {
		t.Fatal(err)
	}
	south, err := skyglide.DaylightHours(skyglide.Coordinates{Lat: -40}, solstice)
	if err != nil {
		t.Fatal(err)
	}
	if sum := north + south; sum < 24.2 || sum > 24.5 {
		t.Errorf("40N %.3f h + 40S %.3f h = %.3f", north, south, sum)
	}
}

// TestDaylightHoursAcrossMidnight uses a zone that puts solar noon near
// local midnight, so the Sun sets before it rises on the same local date.
func TestDaylightHoursAcrossMidnight(t *testing.T) {
	greenwich := skyglide.Coordinates{Lat: 51.4779, Lon: 0}
	date := time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC)

	want, err := skyglide.DaylightHours(greenwich, date)
	if err != nil {
		t.Fatal(err)
	}
	shifted := time.Date(2025, time.December, 10, 0, 0, 0, 0, time.FixedZone("", 12*3600))
	rs, err := skyglide.RiseSetFor(skyglide.Sun, greenwich, shifted)
	if err != nil {
		t.Fatal(err)
	}
	if !rs.HasRise || !rs.HasSet || !rs.Set.Before(rs.Rise) {
		t.Fatalf("rise/set = %+v, want set before rise", rs)
	}
	got, err := skyglide.DaylightHours(greenwich, shifted)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-want) > 0.05 {
		t.Errorf("daylight across midnight %.3f h, want ~%.3f", got, want)
	}
}

func TestDaylightHoursPolar(t *testing.T) {
	tromso := skyglide.Coordinates{Lat: 69.6492, Lon: 18.9553}

	summer, err := skyglide.DaylightHours(tromso, time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if summer != 24 {
		t.Errorf("midnight sun daylight = %.2f, want 24", summer)
	}

	winter, err := skyglide.DaylightHours(tromso, time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if winter != 0 {
		t.Errorf("polar night daylight = %.2f, want 0", winter)
	}
}
