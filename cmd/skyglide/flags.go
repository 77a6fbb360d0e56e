package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/thurmanmarka/skyglide"
	"github.com/thurmanmarka/skyglide/internal/config"
	"github.com/thurmanmarka/skyglide/internal/localtime"
	"github.com/thurmanmarka/skyglide/internal/logging"
)

// offsetFlag is a UTC offset in hours that remembers whether it was given.
type offsetFlag struct {
	hours float64
	set   bool
}

func (o *offsetFlag) String() string {
	if !o.set {
		return ""
	}
	return strconv.FormatFloat(o.hours, 'f', -1, 64)
}

func (o *offsetFlag) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Wrapf(err, "offset %q", s)
	}
	o.hours, o.set = v, true
	return nil
}

// command carries the flags every subcommand shares.
type command struct {
	fs *flag.FlagSet

	lat, lon, elev float64
	date, clock    string
	tz             string
	offset         offsetFlag
	body           string
	json           bool
	config         string
	observer       string
	logLevel       string
}

func newCommand(name, summary string) *command {
	c := &command{fs: flag.NewFlagSet(name, flag.ExitOnError)}
	fs := c.fs

	fs.Float64Var(&c.lat, "lat", 0, "latitude in degrees (north positive)")
	fs.Float64Var(&c.lon, "lon", 0, "longitude in degrees (east positive, west negative)")
	fs.Float64Var(&c.elev, "elev", 0, "observer elevation in meters")
	fs.StringVar(&c.date, "date", "", "date in YYYY-MM-DD (defaults to today in the chosen zone)")
	fs.StringVar(&c.clock, "time", "", "time as HH:MM[:SS], 'YYYY-MM-DDTHH:MM' or RFC3339 (defaults to now)")
	fs.StringVar(&c.tz, "tz", "Local", "IANA time zone name (e.g. America/Phoenix)")
	fs.Var(&c.offset, "offset", "fixed UTC offset in hours, overrides -tz")
	fs.StringVar(&c.body, "body", "sun", "celestial body: sun or moon")
	fs.BoolVar(&c.json, "json", false, "output result as JSON")
	fs.StringVar(&c.config, "config", "", "TOML configuration file")
	fs.StringVar(&c.observer, "observer", "", "observer name from the configuration file")
	fs.StringVar(&c.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: skyglide %s [flags]\n\n%s\n\nFlags:\n", name, summary)
		fs.PrintDefaults()
	}
	return c
}

func (c *command) parse(args []string) error {
	return c.fs.Parse(args)
}

func (c *command) isSet(name string) bool {
	found := false
	c.fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// request is a resolved observer, instant and zone.
type request struct {
	name   string
	coords skyglide.Coordinates
	at     time.Time
	zone   *time.Location
	offset float64 // hours east of UTC at at
	cfg    config.Config
}

// resolve loads the configuration, installs the logger and works out who
// is observing, where and when. Flags given on the command line win over
// the configuration file.
func (c *command) resolve(now time.Time) (request, error) {
	cfg := config.Default()
	if c.config != "" {
		var err error
		if cfg, err = config.Load(c.config); err != nil {
			return request{}, err
		}
	}

	level := c.logLevel
	if c.config != "" && !c.isSet("log-level") {
		level = cfg.LogLevel
	}
	skyglide.SetLogger(logging.New(os.Stderr, logging.ParseLevel(level), cfg.LogJSON))
	log := logging.Default()

	r := request{
		cfg:    cfg,
		coords: skyglide.Coordinates{Lat: c.lat, Lon: c.lon, Elevation: c.elev},
	}

	var zone *time.Location
	switch {
	case c.observer != "" && c.config == "":
		return request{}, errors.New("-observer needs -config")
	case c.config != "" && len(cfg.Observers) > 0:
		ob := cfg.Observers[0]
		if c.observer != "" {
			var ok bool
			if ob, ok = cfg.Lookup(c.observer); !ok {
				return request{}, errors.Errorf("no observer %q in %s", c.observer, c.config)
			}
		}
		r.name = ob.Name
		if !c.isSet("lat") {
			r.coords.Lat = ob.Latitude
		}
		if !c.isSet("lon") {
			r.coords.Lon = ob.Longitude
		}
		if !c.isSet("elev") {
			r.coords.Elevation = ob.Elevation
		}
		if !c.isSet("tz") {
			zone = localtime.Zone(ob.UTCOffset)
		}
	}

	if c.offset.set {
		zone = localtime.Zone(c.offset.hours)
	} else if zone == nil {
		var err error
		if zone, err = loadZone(c.tz); err != nil {
			return request{}, err
		}
	}

	if err := r.coords.Validate(); err != nil {
		return request{}, err
	}
	if r.coords.Lat == 0 && r.coords.Lon == 0 {
		log.Warn("lat=0 lon=0 (Gulf of Guinea); use -lat and -lon to set a real location")
	}

	at, err := parseInstant(c.date, c.clock, zone, now)
	if err != nil {
		return request{}, err
	}
	_, off := at.Zone()
	r.at, r.zone, r.offset = at, zone, float64(off)/3600

	log.Debug("resolved request", "observer", r.name, "lat", r.coords.Lat, "lon", r.coords.Lon,
		"time", r.at.Format(time.RFC3339), "offset", r.offset)
	return r, nil
}

func loadZone(name string) (*time.Location, error) {
	switch name {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid time zone %q", name)
	}
	return loc, nil
}

// parseInstant combines -date and -time in zone. A full timestamp in clock
// wins over date; an empty date is today and an empty clock is midnight, or
// now when neither is given.
func parseInstant(date, clock string, zone *time.Location, now time.Time) (time.Time, error) {
	now = now.In(zone)
	if clock != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"} {
			if t, err := time.ParseInLocation(layout, clock, zone); err == nil {
				return t.In(zone), nil
			}
		}
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, zone)
	if date != "" {
		d, err := time.ParseInLocation("2006-01-02", date, zone)
		if err != nil {
			return time.Time{}, errors.Wrapf(err, "invalid -date %q", date)
		}
		day = d
	}

	if clock == "" {
		if date == "" {
			return now, nil
		}
		return day, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.ParseInLocation(layout, clock, zone); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, zone), nil
		}
	}
	return time.Time{}, errors.Errorf("invalid -time %q", clock)
}
