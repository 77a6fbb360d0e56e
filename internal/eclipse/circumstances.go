package eclipse

import (
	"time"

	"github.com/thurmanmarka/skyglide/internal/timeutil"
)

// Visibility describes how a contact is seen from the observer.
type Visibility int

const (
	Visible Visibility = iota
	// AtRise marks a contact replaced by the rising of the eclipsed body.
	AtRise
	// AtSet marks a contact replaced by the setting of the eclipsed body.
	AtSet
	// BelowHorizon marks a contact that happens with the body set.
	BelowHorizon
	// NotApplicable marks a contact the eclipse does not have for the
	// observer, such as C2 of a partial eclipse.
	NotApplicable
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case AtRise:
		return "at rise"
	case AtSet:
		return "at set"
	case BelowHorizon:
		return "below horizon"
	default:
		return "n/a"
	}
}

func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Shown reports whether the contact can be observed.
func (v Visibility) Shown() bool {
	return v == Visible || v == AtRise || v == AtSet
}

// Circumstance is the state of an eclipse at one contact. Angles are in
// degrees; Azimuth is measured clockwise from north.
type Circumstance struct {
	T             float64   // hours from T0
	Time          time.Time // UTC unless moved with Details.In
	Altitude      float64
	Azimuth       float64
	PositionAngle float64
	Visibility    Visibility
}

// Contact indexes the contacts of an eclipse in time order. First to Fourth
// are C1..C4 of a solar eclipse and U1..U4 of a lunar one.
type Contact int

const (
	First Contact = iota
	Second
	Mid
	Third
	Fourth
	numContacts
)

func (c Contact) String() string {
	return [...]string{"C1", "C2", "Mid", "C3", "C4"}[c]
}

// Label names c for a solar or lunar eclipse.
func (c Contact) Label(lunar bool) string {
	if lunar {
		return [...]string{"U1", "U2", "Mid", "U3", "U4"}[c]
	}
	return c.String()
}

// Details are the local circumstances of one eclipse.
type Details struct {
	Lunar bool
	Kind  Kind // as seen by the observer
	// Global is the eclipse type anywhere on the Earth.
	Global Kind

	// Contacts are indexed by Contact. For lunar eclipses they are the
	// umbral contacts U1..U4 around greatest eclipse.
	Contacts [numContacts]Circumstance
	// Central is set when the observer sees Second and Third, possibly at
	// rise or set. When the eclipse is visible but not central both are
	// zero and tagged NotApplicable.
	Central bool
	// Penumbral contacts of lunar eclipses.
	P1, P4 *Circumstance

	// Magnitude is the fraction of the Sun's (Moon's) diameter covered at
	// Mid; during totality or annularity it is the Moon/Sun size ratio.
	Magnitude float64
	// Ratio is the apparent Moon/Sun diameter ratio at Mid (solar only).
	Ratio float64
	// PenumbralMagnitude of a lunar eclipse at greatest eclipse.
	PenumbralMagnitude float64
	// Coverage is the fraction of the solar disc area covered at Mid.
	Coverage float64
	// Duration of totality or annularity. For a partial lunar eclipse it is
	// the length of the umbral phase.
	Duration time.Duration

	Visible bool

	// Newton iterations spent locating Mid and the residual of the last step.
	Iterations int
	Residual   float64
}

// Contact returns the circumstance of c.
func (d Details) Contact(c Contact) Circumstance { return d.Contacts[c] }

// In returns d with every contact time in loc.
func (d Details) In(loc *time.Location) Details {
	for i := range d.Contacts {
		if !d.Contacts[i].Time.IsZero() {
			d.Contacts[i].Time = d.Contacts[i].Time.In(loc)
		}
	}
	for _, p := range []**Circumstance{&d.P1, &d.P4} {
		if *p != nil {
			c := **p
			c.Time = c.Time.In(loc)
			*p = &c
		}
	}
	return d
}

// Date returns the UTC calendar day of Mid.
func (d Details) Date() time.Time {
	return timeutil.StartOfDay(d.Contacts[Mid].Time)
}

// Start returns the first observable instant.
func (d Details) Start() time.Time { return d.Contacts[First].Time }

// End returns the last observable instant.
func (d Details) End() time.Time { return d.Contacts[Fourth].Time }

func hasCentral(d *Details) bool {
	return d.Contacts[Second].Visibility != NotApplicable && d.Contacts[Third].Visibility != NotApplicable
}

func centralDuration(d *Details) time.Duration {
	if !hasCentral(d) {
		return 0
	}
	return d.Contacts[Third].Time.Sub(d.Contacts[Second].Time).Round(time.Second)
}

func wrapDeg(a float64) float64 {
	return timeutil.Normalize360(a / rad)
}
