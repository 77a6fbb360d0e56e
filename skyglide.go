// Package skyglide computes where the Sun and Moon are for an observer on
// the Earth and when things happen to them: rise and set, twilight, golden
// and blue hour, lunar phase, seasons, lunar apsides, and the local
// circumstances of solar and lunar eclipses.
//
// Functions that take a calendar date read the day from the date's own
// location and return times in that location. Functions that take an
// instant work in UTC and return UTC unless they say otherwise.
//
// Coordinates are validated here; everything below this package assumes
// in-range input.
package skyglide

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/thurmanmarka/skyglide/internal/horizon"
	"github.com/thurmanmarka/skyglide/internal/localtime"
	"github.com/thurmanmarka/skyglide/internal/logging"
	"github.com/thurmanmarka/skyglide/internal/metrics"
	"github.com/thurmanmarka/skyglide/internal/moon"
	"github.com/thurmanmarka/skyglide/internal/solver"
	"github.com/thurmanmarka/skyglide/internal/sun"
	"github.com/thurmanmarka/skyglide/internal/timeutil"
)

// Body represents a celestial body.
type Body int

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	default:
		return "unknown"
	}
}

func (b Body) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// ParseBody maps "sun" or "moon" to a Body.
func ParseBody(s string) (Body, error) {
	switch strings.ToLower(s) {
	case "sun":
		return Sun, nil
	case "moon":
		return Moon, nil
	}
	return 0, errors.Wrapf(ErrUnknownBody, "%q", s)
}

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat       float64 // degrees, north positive
	Lon       float64 // degrees, east positive (west negative, e.g. -105 for 105°W)
	Elevation float64 // meters above sea level
}

// Validate reports whether the coordinates are on the globe.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return errors.Wrapf(ErrInvalidLatitude, "%v", c.Lat)
	}
	if math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return errors.Wrapf(ErrInvalidLongitude, "%v", c.Lon)
	}
	return nil
}

func (c Coordinates) observer() horizon.Observer {
	return horizon.Observer{Lat: c.Lat, Lon: c.Lon, Elevation: c.Elevation}
}

var (
	// ErrInvalidLatitude is returned for a latitude outside [-90, 90].
	ErrInvalidLatitude = errors.New("latitude out of range [-90, 90]")

	// ErrInvalidLongitude is returned for a longitude outside [-180, 180].
	ErrInvalidLongitude = errors.New("longitude out of range [-180, 180]")

	// ErrInvalidOffset is returned for a UTC offset outside [-12, 12] hours.
	ErrInvalidOffset = errors.New("utc offset out of range [-12, 12]")

	// ErrUnknownBody is returned for a Body other than Sun or Moon.
	ErrUnknownBody = errors.New("unknown body")

	// ErrUnknownTwilight is returned for an unknown TwilightKind.
	ErrUnknownTwilight = errors.New("unknown twilight kind")

	// ErrNoRiseNoSet is returned when a twilight or light window does not
	// occur on that date at that location.
	ErrNoRiseNoSet = errors.New("body does not rise or set on this date")
)

func validOffset(offset float64) error {
	if math.IsNaN(offset) || math.Abs(offset) > localtime.MaxOffset {
		return errors.Wrapf(ErrInvalidOffset, "%v", offset)
	}
	return nil
}

// Status is the day condition of a body: whether it rose, set, both, or
// neither.
type Status = solver.Status

const (
	RiseAndSet = solver.RiseAndSet
	UpAllDay   = solver.UpAllDay
	DownAllDay = solver.DownAllDay
	NoRise     = solver.NoRise
	NoSet      = solver.NoSet
)

// Position is the apparent place of a body for an observer.
type Position struct {
	Time             time.Time
	Altitude         float64 // degrees, refracted
	Azimuth          float64 // degrees, clockwise from north
	ParallacticAngle float64 // degrees
	RightAscension   float64 // degrees, topocentric for the Moon
	Declination      float64 // degrees, topocentric for the Moon
	Distance         float64 // km, geocentric
}

// PositionAt returns the apparent position of body for loc at t.
func PositionAt(body Body, loc Coordinates, t time.Time) (Position, error) {
	defer metrics.Track("position")()

	if err := loc.Validate(); err != nil {
		return Position{}, err
	}
	m := timeutil.NewMoment(t)
	obs := loc.observer()

	var eq horizon.Equatorial
	switch body {
	case Sun:
		eq = sun.Position(m)
	case Moon:
		eq = moon.Topocentric(obs, m)
	default:
		return Position{}, errors.Wrapf(ErrUnknownBody, "%d", int(body))
	}
	p := horizon.Project(eq, obs, m).Apparent()

	return Position{
		Time:             t,
		Altitude:         p.AltitudeDeg(),
		Azimuth:          p.AzimuthDeg(),
		ParallacticAngle: p.ParallacticDeg(),
		RightAscension:   timeutil.Rad2Deg(eq.RA),
		Declination:      timeutil.Rad2Deg(eq.Dec),
		Distance:         eq.Distance,
	}, nil
}

// SetLogger routes the package's diagnostics to l. A nil logger silences
// them, which is the default.
func SetLogger(l *slog.Logger) {
	logging.SetDefault(l)
}
