// Command skyglide prints Sun and Moon rise and set times, twilight, Moon
// phases, eclipses and seasons, and can serve them as prometheus metrics.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "skyglide: %v\n", err)
		os.Exit(1)
	}
}

type subcommand func(args []string, out io.Writer, now time.Time) error

var subcommands = map[string]subcommand{
	"riseset":  runRiseSet,
	"phase":    runPhase,
	"position": runPosition,
	"twilight": runTwilight,
	"eclipse":  runEclipse,
	"seasons":  runSeasons,
	"apsides":  runApsides,
	"report":   runReport,
	"serve":    runServe,
}

// run dispatches args. With no arguments, or flags first, it runs the
// rise/set mode, which was the only mode of earlier releases.
func run(args []string, out io.Writer, now time.Time) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return runRiseSet(args, out, now)
	}
	if args[0] == "help" {
		usage(out)
		return nil
	}
	cmd, ok := subcommands[args[0]]
	if !ok {
		usage(os.Stderr)
		return errors.Errorf("unknown subcommand %q", args[0])
	}
	return cmd(args[1:], out, now)
}

func usage(w io.Writer) {
	fmt.Fprint(w, `skyglide - sun and moon almanac

Usage:
  skyglide [flags]             # Sun/Moon rise/set (default mode)
  skyglide riseset [flags]     # same, explicitly
  skyglide phase [flags]       # Moon phase / illumination
  skyglide position [flags]    # altitude and azimuth
  skyglide twilight [flags]    # twilight, golden and blue hour
  skyglide eclipse [flags]     # next or previous eclipses
  skyglide seasons [flags]     # equinoxes and solstices
  skyglide apsides [flags]     # lunar perigee and apogee
  skyglide report [flags]      # all of the above
  skyglide serve [flags]       # prometheus exporter

Common flags:
  -lat -lon -elev   observer location
  -date -time       instant (defaults to now)
  -tz -offset       zone name or fixed UTC offset in hours
  -config -observer TOML file and the observer to use from it
  -json             JSON output
  -log-level        debug, info, warn or error

Run "skyglide <subcommand> -h" for the flags of a subcommand.
`)
}
