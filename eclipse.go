package skyglide

import (
	"time"

	"github.com/thurmanmarka/skyglide/internal/eclipse"
	"github.com/thurmanmarka/skyglide/internal/horizon"
	"github.com/thurmanmarka/skyglide/internal/metrics"
)

// Eclipse is the local circumstances of a solar or lunar eclipse as seen
// from one observer. Contacts that happen with the body below the horizon
// are replaced by its rising or setting.
type Eclipse = eclipse.Details

// EclipseKind classifies an eclipse.
type EclipseKind = eclipse.Kind

const (
	EclipseNone    = eclipse.None
	EclipsePartial = eclipse.Partial
	EclipseAnnular = eclipse.Annular
	EclipseTotal   = eclipse.Total
)

// Contact names a contact point of an eclipse.
type Contact = eclipse.Contact

const (
	FirstContact  = eclipse.First
	SecondContact = eclipse.Second
	MidEclipse    = eclipse.Mid
	ThirdContact  = eclipse.Third
	FourthContact = eclipse.Fourth
)

// Circumstance is the state of an eclipse at one contact.
type Circumstance = eclipse.Circumstance

// Visibility tags a contact as seen from the observer.
type Visibility = eclipse.Visibility

const (
	Visible       = eclipse.Visible
	AtRise        = eclipse.AtRise
	AtSet         = eclipse.AtSet
	BelowHorizon  = eclipse.BelowHorizon
	NotApplicable = eclipse.NotApplicable
)

// ErrNoEclipse is returned when no eclipse visible from the location
// exists between 2000 and 2100 in the requested direction.
var ErrNoEclipse = eclipse.ErrOutOfRange

// NextSolarEclipse returns the first solar eclipse visible from loc whose
// local maximum is after t.
func NextSolarEclipse(loc Coordinates, t time.Time) (Eclipse, error) {
	return findEclipse("solar_eclipse", loc, t, eclipse.NextSolar)
}

// PreviousSolarEclipse returns the last solar eclipse visible from loc
// whose local maximum is before t.
func PreviousSolarEclipse(loc Coordinates, t time.Time) (Eclipse, error) {
	return findEclipse("solar_eclipse", loc, t, eclipse.PreviousSolar)
}

// NextLunarEclipse returns the first umbral lunar eclipse visible from loc
// whose local maximum is after t.
func NextLunarEclipse(loc Coordinates, t time.Time) (Eclipse, error) {
	return findEclipse("lunar_eclipse", loc, t, eclipse.NextLunar)
}

// PreviousLunarEclipse returns the last umbral lunar eclipse visible from
// loc whose local maximum is before t.
func PreviousLunarEclipse(loc Coordinates, t time.Time) (Eclipse, error) {
	return findEclipse("lunar_eclipse", loc, t, eclipse.PreviousLunar)
}

func findEclipse(op string, loc Coordinates, t time.Time, find func(horizon.Observer, time.Time) (eclipse.Details, error)) (Eclipse, error) {
	defer metrics.Track(op)()

	if err := loc.Validate(); err != nil {
		return Eclipse{}, err
	}
	return find(loc.observer(), t)
}
