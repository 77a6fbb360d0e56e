package skyglide

import (
	"errors"
	"testing"
	"time"
)

// Reference values for Phoenix, AZ on 2025-11-28 (America/Phoenix):
//
//	Astronomical dawn: 05:44   Astronomical dusk: 18:48
//	Nautical dawn:     06:14   Nautical dusk:     18:18
//	Civil dawn:        06:45   Civil dusk:        17:47
//	Sunrise:           07:11   Sunset:            17:21
const twilightToleranceMinutes = 4.0

func TestTwilightForPhoenix(t *testing.T) {
	loc := mustLoad(t, "America/Phoenix")
	date := time.Date(2025, time.November, 28, 0, 0, 0, 0, loc)

	cases := []struct {
		kind       TwilightKind
		dawn, dusk string
	}{
		{TwilightCivil, "06:45", "17:47"},
		{TwilightNautical, "06:14", "18:18"},
		{TwilightAstronomical, "05:44", "18:48"},
	}

	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			rs, err := TwilightFor(phoenix, date, tc.kind)
			if err != nil {
				t.Fatalf("TwilightFor: %v", err)
			}
			if rs.Status != RiseAndSet {
				t.Fatalf("status = %v", rs.Status)
			}
			if d := diffMinutes(rs.Rise, clock(t, date, tc.dawn)); d > twilightToleranceMinutes {
				t.Errorf("dawn %v off by %.1f min", rs.Rise, d)
			}
			if d := diffMinutes(rs.Set, clock(t, date, tc.dusk)); d > twilightToleranceMinutes {
				t.Errorf("dusk %v off by %.1f min", rs.Set, d)
			}
		})
	}
}

func TestTwilightForErrors(t *testing.T) {
	date := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)

	if _, err := TwilightFor(phoenix, date, TwilightKind(9)); !errors.Is(err, ErrUnknownTwilight) {
		t.Errorf("unknown kind err = %v", err)
	}
	// Tromsø in June: the Sun never gets 18° below the horizon.
	tromso := Coordinates{Lat: 69.6492, Lon: 18.9553}
	if _, err := TwilightFor(tromso, date, TwilightAstronomical); !errors.Is(err, ErrNoRiseNoSet) {
		t.Errorf("midnight sun err = %v", err)
	}
	if _, err := TwilightFor(Coordinates{Lon: 200}, date, TwilightCivil); !errors.Is(err, ErrInvalidLongitude) {
		t.Errorf("bad longitude err = %v", err)
	}
}

func TestParseTwilight(t *testing.T) {
	k, err := ParseTwilight("nautical")
	if err != nil || k != TwilightNautical {
		t.Errorf("ParseTwilight(nautical) = %v, %v", k, err)
	}
	if _, err := ParseTwilight("dusky"); !errors.Is(err, ErrUnknownTwilight) {
		t.Errorf("ParseTwilight(dusky) err = %v", err)
	}
}

func TestSunTimesFor(t *testing.T) {
	loc := mustLoad(t, "America/Phoenix")
	date := time.Date(2025, time.November, 28, 0, 0, 0, 0, loc)

	st, err := SunTimesFor(phoenix, date)
	if err != nil {
		t.Fatal(err)
	}
	if d := diffMinutes(st.Sunrise.Rise, clock(t, date, "07:11")); d > twilightToleranceMinutes {
		t.Errorf("sunrise %v off by %.1f min", st.Sunrise.Rise, d)
	}
	if d := diffMinutes(st.Sunrise.Set, clock(t, date, "17:21")); d > twilightToleranceMinutes {
		t.Errorf("sunset %v off by %.1f min", st.Sunrise.Set, d)
	}

	// Every morning event precedes noon and the later ones in order.
	morning := []time.Time{
		st.Astronomical.Rise, st.Nautical.Rise, st.Civil.Rise,
		st.Sunrise.Rise, st.SunriseEnd.Rise, st.GoldenHour.Rise, st.SolarNoon,
	}
	for i := 1; i < len(morning); i++ {
		if !morning[i].After(morning[i-1]) {
			t.Errorf("morning event %d (%v) not after %v", i, morning[i], morning[i-1])
		}
	}
	if d := st.SolarNoon.Sub(st.Nadir) - 12*time.Hour; d < -time.Second || d > time.Second {
		t.Errorf("nadir %v is not 12h before noon %v", st.Nadir, st.SolarNoon)
	}
	if st.SolarNoon.Location() != loc {
		t.Errorf("noon location = %v", st.SolarNoon.Location())
	}
}

func TestGoldenAndBlueHour(t *testing.T) {
	loc := mustLoad(t, "America/Phoenix")
	date := time.Date(2025, time.November, 28, 0, 0, 0, 0, loc)

	golden, err := GoldenHourFor(phoenix, date)
	if err != nil {
		t.Fatal(err)
	}
	blue, err := BlueHourFor(phoenix, date)
	if err != nil {
		t.Fatal(err)
	}
	if !golden.HasMorning || !golden.HasEvening || !blue.HasMorning || !blue.HasEvening {
		t.Fatalf("missing windows: golden %+v blue %+v", golden, blue)
	}

	// Blue hour hands over to golden hour at -4° in the morning, and the
	// other way round in the evening.
	if d := diffMinutes(blue.Morning.End, golden.Morning.Start); d > 0.01 {
		t.Errorf("morning blue end %v != golden start %v", blue.Morning.End, golden.Morning.Start)
	}
	if d := diffMinutes(golden.Evening.End, blue.Evening.Start); d > 0.01 {
		t.Errorf("evening golden end %v != blue start %v", golden.Evening.End, blue.Evening.Start)
	}

	civil, err := TwilightFor(phoenix, date, TwilightCivil)
	if err != nil {
		t.Fatal(err)
	}
	if !blue.Morning.Start.Equal(civil.Rise) || !blue.Evening.End.Equal(civil.Set) {
		t.Errorf("blue hour %+v does not start at civil dawn %v", blue, civil.Rise)
	}

	for _, w := range []PhaseWindow{golden.Morning, golden.Evening, blue.Morning, blue.Evening} {
		if d := w.End.Sub(w.Start); d < 5*time.Minute || d > 90*time.Minute {
			t.Errorf("window %v..%v lasts %v", w.Start, w.End, d)
		}
	}
}

func TestGoldenHourPolarNight(t *testing.T) {
	// At 78°N in December the Sun never climbs to -4°.
	svalbard := Coordinates{Lat: 78.2232, Lon: 15.6267}
	date := time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC)
	if _, err := GoldenHourFor(svalbard, date); !errors.Is(err, ErrNoRiseNoSet) {
		t.Errorf("err = %v, want ErrNoRiseNoSet", err)
	}
}
