// Command skyglide-profiler compares skyglide rise/set or twilight times
// against a reference CSV (date,rise,set in local time) and prints error
// statistics.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/thurmanmarka/skyglide"
	"github.com/thurmanmarka/skyglide/internal/localtime"
	"github.com/thurmanmarka/skyglide/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "skyglide-profiler: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("skyglide-profiler", flag.ContinueOnError)
	var (
		lat      = fs.Float64("lat", 0, "latitude in degrees (north positive)")
		lon      = fs.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
		elev     = fs.Float64("elev", 0, "observer elevation in meters")
		tzName   = fs.String("tz", "UTC", "IANA time zone name of the reference times (e.g. America/Phoenix)")
		offset   = fs.Float64("offset", 0, "fixed UTC offset in hours, used when -tz is empty")
		bodyS    = fs.String("body", "sun", "celestial body: sun or moon")
		year     = fs.Int("year", 0, "year of the reference data (optional, used for sanity checks)")
		refCSV   = fs.String("refcsv", "", "path to reference CSV file (date,rise,set)")
		verbose  = fs.Bool("verbose", false, "print per-day errors instead of only the summary")
		twilight = fs.String("twilight", "", "twilight kind: civil, nautical, astronomical (Sun only)")
		outCSV   = fs.String("outcsv", "", "optional path to write per-row error CSV")
		logLevel = fs.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	skyglide.SetLogger(logging.Stderr(logging.ParseLevel(*logLevel)))
	log := logging.Default()

	if *refCSV == "" {
		return errors.New("missing -refcsv (path to reference CSV)")
	}

	loc := localtime.Zone(*offset)
	if *tzName != "" {
		var err error
		if loc, err = time.LoadLocation(*tzName); err != nil {
			return errors.Wrapf(err, "failed to load timezone %q", *tzName)
		}
	}

	body, err := skyglide.ParseBody(*bodyS)
	if err != nil {
		return err
	}
	coords := skyglide.Coordinates{Lat: *lat, Lon: *lon, Elevation: *elev}
	if err := coords.Validate(); err != nil {
		return err
	}
	if *lat == 0 && *lon == 0 {
		log.Warn("lat=0 lon=0 (Gulf of Guinea); did you mean to set -lat/-lon?")
	}

	p := &profile{body: body, coords: coords, loc: loc}
	if *twilight != "" {
		if body != skyglide.Sun {
			return errors.New("twilight mode only supported for -body sun")
		}
		kind, err := skyglide.ParseTwilight(*twilight)
		if err != nil {
			return err
		}
		p.twilight = &kind
	}

	f, err := os.Open(*refCSV)
	if err != nil {
		return errors.Wrapf(err, "failed to open refcsv %q", *refCSV)
	}
	defer f.Close()

	refs, skipped, err := readReference(f, loc)
	if err != nil {
		return err
	}

	var w *csv.Writer
	if *outCSV != "" {
		of, err := os.Create(*outCSV)
		if err != nil {
			return errors.Wrapf(err, "failed to create outcsv %q", *outCSV)
		}
		defer of.Close()
		w = csv.NewWriter(of)
		if err := w.Write(csvHeader); err != nil {
			return errors.Wrap(err, "failed to write outcsv header")
		}
	}

	for _, ref := range refs {
		if *year != 0 && ref.date.Year() != *year {
			log.Warn("date outside year", "line", ref.line, "date", ref.date.Format("2006-01-02"), "year", *year)
		}
		res, err := p.compare(ref)
		if err != nil {
			log.Warn("row failed", "error", err)
			continue
		}
		if *verbose {
			fmt.Fprintf(out, "%s %s: rise err=%.2f min (got=%s ref=%s), set err=%.2f min (got=%s ref=%s)\n",
				ref.date.Format("2006-01-02"), p.mode(),
				res.rise, clock(res.got.Rise.In(loc), res.got.HasRise), clock(ref.rise, ref.hasRise),
				res.set, clock(res.got.Set.In(loc), res.got.HasSet), clock(ref.set, ref.hasSet))
		}
		if w != nil {
			if err := w.Write(p.record(res)); err != nil {
				return errors.Wrap(err, "failed to write outcsv")
			}
		}
	}
	if w != nil {
		w.Flush()
		if err := w.Error(); err != nil {
			return errors.Wrap(err, "failed to flush outcsv")
		}
	}

	p.summary(out, len(refs)-p.failed, skipped)
	return nil
}

func clock(t time.Time, ok bool) string {
	if !ok {
		return "--:--"
	}
	return t.Format("15:04")
}
