package skyglide_test

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/skyglide"
)

// ExampleSlideIntoSunset demonstrates computing sunrise and sunset for a location.
func ExampleSlideIntoSunset() {
	loc := skyglide.Coordinates{
		Lat: 40.7128,  // New York City latitude
		Lon: -74.0060, // New York City longitude
	}

	// Use a local date; the time zone is taken from the date's Location.
	locNY, _ := time.LoadLocation("America/New_York")
	date := time.Date(2025, time.November, 30, 0, 0, 0, 0, locNY)

	rs, err := skyglide.SlideIntoSunset(loc, date)
	if err != nil {
		panic(err)
	}

	fmt.Println("Sunrise:", rs.Rise.Format(time.RFC3339))
	fmt.Println("Sunset:", rs.Set.Format(time.RFC3339))
	// No // Output: block so this stays a documentation example and
	// is not validated as a test.
}

// ExampleRiseSetFor demonstrates using the generic RiseSetFor API.
func ExampleRiseSetFor() {
	loc := skyglide.Coordinates{
		Lat: 33.4484,   // Phoenix, AZ
		Lon: -112.0740, // Phoenix longitude
	}

	locPHX, _ := time.LoadLocation("America/Phoenix")
	date := time.Date(2025, time.November, 30, 0, 0, 0, 0, locPHX)

	rs, err := skyglide.RiseSetFor(skyglide.Moon, loc, date)
	if err != nil {
		panic(err)
	}

	switch rs.Status {
	case skyglide.RiseAndSet:
		fmt.Println("Moonrise:", rs.Rise.Format(time.RFC3339))
		fmt.Println("Moonset:", rs.Set.Format(time.RFC3339))
	default:
		fmt.Println("Moon:", rs.Status)
	}
}

// ExampleRiseSetForOffset reads a day at a fixed UTC offset instead of a
// named zone.
func ExampleRiseSetForOffset() {
	sydney := skyglide.Coordinates{Lat: -33.8688, Lon: 151.2093}
	date := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)

	rs, err := skyglide.RiseSetForOffset(skyglide.Sun, sydney, date, 10)
	if err != nil {
		panic(err)
	}
	fmt.Println("Sunrise:", rs.Rise.Format("2006-01-02 15:04 -0700"))
}

// ExampleDaylightHours demonstrates calculating daylight duration.
func ExampleDaylightHours() {
	loc := skyglide.Coordinates{
		Lat: 33.4484,   // Phoenix, AZ
		Lon: -112.0740, // Phoenix longitude
	}

	locPHX, _ := time.LoadLocation("America/Phoenix")

	// Summer solstice
	summer := time.Date(2025, time.June, 21, 0, 0, 0, 0, locPHX)
	summerHours, _ := skyglide.DaylightHours(loc, summer)
	fmt.Printf("Summer solstice daylight: %.2f hours\n", summerHours)

	// Winter solstice
	winter := time.Date(2025, time.December, 21, 0, 0, 0, 0, locPHX)
	winterHours, _ := skyglide.DaylightHours(loc, winter)
	fmt.Printf("Winter solstice daylight: %.2f hours\n", winterHours)
}

// ExampleNextSolarEclipse finds the next solar eclipse seen from Dallas.
func ExampleNextSolarEclipse() {
	dallas := skyglide.Coordinates{Lat: 32.7767, Lon: -96.7970}

	e, err := skyglide.NextSolarEclipse(dallas, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		panic(err)
	}
	fmt.Println(e.Kind, "eclipse, maximum at", e.Contact(skyglide.MidEclipse).Time.Format(time.RFC3339))
	if e.Duration > 0 {
		fmt.Println("totality lasts", e.Duration)
	}
}

// ExampleMoonPhaseAt prints the phase of the Moon.
func ExampleMoonPhaseAt() {
	phase, _ := skyglide.MoonPhaseAt(time.Date(2025, time.May, 12, 16, 56, 0, 0, time.UTC))
	fmt.Printf("%s, %.0f%% illuminated\n", phase.Name, phase.Fraction*100)
}
