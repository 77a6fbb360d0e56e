package main

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/thurmanmarka/skyglide"
)

// header prints the observer line most subcommands start with.
func (p *printer) header(r request) {
	if r.name != "" {
		p.note("%s: lat=%.6f lon=%.6f elev=%.0fm", r.name, r.coords.Lat, r.coords.Lon, r.coords.Elevation)
	} else {
		p.note("lat=%.6f lon=%.6f elev=%.0fm", r.coords.Lat, r.coords.Lon, r.coords.Elevation)
	}
}

type riseSetJSON struct {
	Body      skyglide.Body    `json:"body"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	Date      string           `json:"date"` // YYYY-MM-DD
	Timezone  string           `json:"timezone"`
	Rise      *time.Time       `json:"rise,omitempty"`
	Set       *time.Time       `json:"set,omitempty"`
	Status    skyglide.Status  `json:"status"`
	Daylight  *float64         `json:"daylight_hours,omitempty"`
	Raw       skyglide.RiseSet `json:"raw"`
}

func runRiseSet(args []string, out io.Writer, now time.Time) error {
	c := newCommand("riseset", "Sun or Moon rise and set for one local day.")
	event := c.fs.String("event", "both", "event: rise, set, or both")
	next := c.fs.Bool("next", false, "next rise and set after -time instead of the events of -date")
	if err := c.parse(args); err != nil {
		return err
	}
	r, err := c.resolve(now)
	if err != nil {
		return err
	}
	body, err := skyglide.ParseBody(c.body)
	if err != nil {
		return err
	}
	e := strings.ToLower(*event)
	switch e {
	case "rise", "set", "both":
	default:
		return errors.Errorf("unknown event %q (use rise, set or both)", *event)
	}

	var rs skyglide.RiseSet
	if *next {
		rs, err = skyglide.NextRiseSet(body, r.coords, r.at)
	} else {
		rs, err = skyglide.RiseSetFor(body, r.coords, r.at)
	}
	if err != nil {
		return errors.Wrap(err, "error computing rise/set")
	}

	var daylight *float64
	if body == skyglide.Sun && !*next {
		h, err := skyglide.DaylightHours(r.coords, r.at)
		if err != nil {
			return err
		}
		daylight = &h
	}

	if c.json {
		o := riseSetJSON{
			Body:      body,
			Latitude:  r.coords.Lat,
			Longitude: r.coords.Lon,
			Date:      r.at.Format("2006-01-02"),
			Timezone:  r.zone.String(),
			Status:    rs.Status,
			Daylight:  daylight,
			Raw:       rs,
		}
		if rs.HasRise && e != "set" {
			o.Rise = &rs.Rise
		}
		if rs.HasSet && e != "rise" {
			o.Set = &rs.Set
		}
		return writeJSON(out, o)
	}

	p := newPrinter(out)
	name := strings.ToUpper(body.String()[:1]) + body.String()[1:]
	if *next {
		p.title("Next %s rise/set after %s", name, r.at.Format(timeLayout))
	} else {
		p.title("%s rise/set on %s (%s)", name, r.at.Format("2006-01-02"), r.zone)
	}
	p.header(r)
	p.riseSet(rs, e)
	if daylight != nil {
		p.row("Daylight", "%.2f h", *daylight)
	}
	return nil
}

type phaseJSON struct {
	skyglide.MoonPhase
	Next skyglide.MoonPhases `json:"next"`
}

func runPhase(args []string, out io.Writer, now time.Time) error {
	c := newCommand("phase", "Moon phase and illumination, and the next principal phases.")
	if err := c.parse(args); err != nil {
		return err
	}
	r, err := c.resolve(now)
	if err != nil {
		return err
	}
	ph, err := skyglide.MoonPhaseAt(r.at)
	if err != nil {
		return errors.Wrap(err, "MoonPhaseAt failed")
	}
	next := skyglide.NextMoonPhases(r.at)

	if c.json {
		return writeJSON(out, phaseJSON{MoonPhase: ph, Next: next})
	}
	p := newPrinter(out)
	p.title("Moon phase at %s (%s)", ph.Time.Format(time.RFC3339), r.zone)
	p.phase(ph)
	p.blank()
	p.title("Next phases")
	p.phases(next)
	return nil
}

func runPosition(args []string, out io.Writer, now time.Time) error {
	c := newCommand("position", "Apparent altitude and azimuth of the Sun and Moon.")
	if err := c.parse(args); err != nil {
		return err
	}
	r, err := c.resolve(now)
	if err != nil {
		return err
	}

	bodies := []skyglide.Body{skyglide.Sun, skyglide.Moon}
	if c.isSet("body") {
		b, err := skyglide.ParseBody(c.body)
		if err != nil {
			return err
		}
		bodies = []skyglide.Body{b}
	}

	positions := make(map[string]skyglide.Position, len(bodies))
	for _, b := range bodies {
		pos, err := skyglide.PositionAt(b, r.coords, r.at)
		if err != nil {
			return err
		}
		positions[b.String()] = pos
	}

	if c.json {
		return writeJSON(out, positions)
	}
	p := newPrinter(out)
	p.header(r)
	for i, b := range bodies {
		if i > 0 {
			p.blank()
		}
		p.position(strings.ToUpper(b.String()[:1])+b.String()[1:], positions[b.String()])
	}
	return nil
}

type twilightJSON struct {
	Times      *skyglide.SunTimes       `json:"times,omitempty"`
	Twilight   *skyglide.RiseSet        `json:"twilight,omitempty"`
	GoldenHour *skyglide.DaylightPhases `json:"golden_hour,omitempty"`
	BlueHour   *skyglide.DaylightPhases `json:"blue_hour,omitempty"`
}

func runTwilight(args []string, out io.Writer, now time.Time) error {
	c := newCommand("twilight", "Twilight, golden hour and blue hour for one local day.")
	kindS := c.fs.String("kind", "all", "civil, nautical, astronomical or all")
	if err := c.parse(args); err != nil {
		return err
	}
	r, err := c.resolve(now)
	if err != nil {
		return err
	}

	var o twilightJSON
	if strings.ToLower(*kindS) == "all" {
		st, err := skyglide.SunTimesFor(r.coords, r.at)
		if err != nil {
			return err
		}
		o.Times = &st
	} else {
		kind, err := skyglide.ParseTwilight(*kindS)
		if err != nil {
			return err
		}
		tw, err := skyglide.TwilightFor(r.coords, r.at, kind)
		if err != nil {
			return err
		}
		o.Twilight = &tw
	}
	// The windows are optional near the poles.
	if g, err := skyglide.GoldenHourFor(r.coords, r.at); err == nil {
		o.GoldenHour = &g
	}
	if b, err := skyglide.BlueHourFor(r.coords, r.at); err == nil {
		o.BlueHour = &b
	}

	if c.json {
		return writeJSON(out, o)
	}
	p := newPrinter(out)
	p.title("Twilight on %s (%s)", r.at.Format("2006-01-02"), r.zone)
	p.header(r)
	if o.Times != nil {
		p.sunTimes(*o.Times)
	} else {
		p.note("%s twilight", strings.ToLower(*kindS))
		p.row("Dawn", "%s", fmtTime(o.Twilight.Rise, o.Twilight.HasRise))
		p.row("Dusk", "%s", fmtTime(o.Twilight.Set, o.Twilight.HasSet))
	}
	if o.GoldenHour != nil {
		p.window("Golden hour", *o.GoldenHour)
	}
	if o.BlueHour != nil {
		p.window("Blue hour", *o.BlueHour)
	}
	return nil
}

func runEclipse(args []string, out io.Writer, now time.Time) error {
	c := newCommand("eclipse", "Next (or previous) solar and lunar eclipse visible from the observer.")
	kindS := c.fs.String("kind", "both", "solar, lunar or both")
	previous := c.fs.Bool("previous", false, "search backwards from -time")
	if err := c.parse(args); err != nil {
		return err
	}
	r, err := c.resolve(now)
	if err != nil {
		return err
	}

	type search struct {
		name string
		find func(skyglide.Coordinates, time.Time) (skyglide.Eclipse, error)
	}
	var searches []search
	kind := strings.ToLower(*kindS)
	switch kind {
	case "solar", "lunar", "both":
	default:
		return errors.Errorf("unknown eclipse kind %q (use solar, lunar or both)", *kindS)
	}
	if kind != "lunar" {
		s := search{"solar", skyglide.NextSolarEclipse}
		if *previous {
			s.find = skyglide.PreviousSolarEclipse
		}
		searches = append(searches, s)
	}
	if kind != "solar" {
		s := search{"lunar", skyglide.NextLunarEclipse}
		if *previous {
			s.find = skyglide.PreviousLunarEclipse
		}
		searches = append(searches, s)
	}

	found := map[string]*skyglide.Eclipse{}
	for _, s := range searches {
		e, err := s.find(r.coords, r.at)
		switch {
		case errors.Is(err, skyglide.ErrNoEclipse):
			found[s.name] = nil
		case err != nil:
			return err
		default:
			found[s.name] = &e
		}
	}

	if c.json {
		return writeJSON(out, found)
	}
	p := newPrinter(out)
	p.header(r)
	for i, s := range searches {
		if i > 0 {
			p.blank()
		}
		if found[s.name] == nil {
			p.warn("no %s eclipse visible before the end of the table", s.name)
			continue
		}
		p.eclipse(*found[s.name], r.zone)
	}
	return nil
}

func runSeasons(args []string, out io.Writer, now time.Time) error {
	c := newCommand("seasons", "Equinoxes and solstices of a year.")
	year := c.fs.Int("year", 0, "year (defaults to the year of -date)")
	if err := c.parse(args); err != nil {
		return err
	}
	r, err := c.resolve(now)
	if err != nil {
		return err
	}
	y := *year
	if y == 0 {
		y = r.at.Year()
	}
	s := skyglide.SeasonsFor(y)

	if c.json {
		return writeJSON(out, s)
	}
	p := newPrinter(out)
	p.title("Seasons of %d (%s)", y, r.zone)
	p.seasons(s, r.zone)
	return nil
}

func runApsides(args []string, out io.Writer, now time.Time) error {
	c := newCommand("apsides", "Next lunar perigee and apogee.")
	if err := c.parse(args); err != nil {
		return err
	}
	r, err := c.resolve(now)
	if err != nil {
		return err
	}
	a := skyglide.NextPerigeeApogee(r.at)

	if c.json {
		return writeJSON(out, a)
	}
	p := newPrinter(out)
	p.title("Lunar apsides after %s", r.at.Format(timeLayout))
	p.apsides(a)
	return nil
}

func runReport(args []string, out io.Writer, now time.Time) error {
	c := newCommand("report", "Everything about the sky of one observer at one instant.")
	if err := c.parse(args); err != nil {
		return err
	}
	r, err := c.resolve(now)
	if err != nil {
		return err
	}
	rep, err := skyglide.ReportFor(r.coords, r.at, r.offset)
	if err != nil {
		return err
	}

	if c.json {
		return writeJSON(out, rep)
	}
	p := newPrinter(out)
	p.title("Sky report for %s", rep.Time.Format(timeLayout))
	p.header(r)
	p.blank()
	p.position("Sun", rep.Sun)
	p.blank()
	p.position("Moon", rep.Moon)
	p.blank()
	p.title("Sun")
	p.sunTimes(rep.SunTimes)
	p.row("Daylight", "%.2f h", rep.Daylight)
	p.blank()
	p.title("Moon")
	p.riseSet(rep.MoonRiseSet, "both")
	p.phase(rep.MoonPhase)
	p.blank()
	p.title("Next phases")
	p.phases(rep.NextPhases)
	p.blank()
	p.title("Lunar apsides")
	p.apsides(rep.Apsides)
	p.blank()
	p.title("Seasons of %d", rep.Seasons.Year)
	p.seasons(rep.Seasons, r.zone)
	for _, e := range []*skyglide.Eclipse{rep.PreviousSolarEclipse, rep.NextSolarEclipse, rep.PreviousLunarEclipse, rep.NextLunarEclipse} {
		if e == nil {
			continue
		}
		p.blank()
		p.eclipse(*e, r.zone)
	}
	return nil
}
