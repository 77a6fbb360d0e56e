package eclipse

import (
	"time"

	"github.com/pkg/errors"

	"github.com/thurmanmarka/skyglide/internal/horizon"
)

// ErrOutOfRange is returned when no eclipse visible from the observer
// exists in the table in the requested direction.
var ErrOutOfRange = errors.New("eclipse: no visible eclipse within table range")

// Direction selects the search direction of Find.
type Direction int

const (
	Forward Direction = iota
	Backward
)

type candidate interface {
	mid() time.Time
}

func (e SolarElements) mid() time.Time {
	t, _ := e.Greatest()
	return e.Instant(t)
}

func (e LunarElements) mid() time.Time {
	t, _ := e.Greatest()
	return e.Instant(t)
}

// NextSolar returns the first solar eclipse visible from obs whose local
// maximum is after t.
func NextSolar(obs horizon.Observer, t time.Time) (Details, error) {
	return findSolar(obs, t, Forward)
}

// PreviousSolar returns the last solar eclipse visible from obs whose local
// maximum is before t.
func PreviousSolar(obs horizon.Observer, t time.Time) (Details, error) {
	return findSolar(obs, t, Backward)
}

// NextLunar returns the first lunar eclipse visible from obs whose local
// maximum is after t.
func NextLunar(obs horizon.Observer, t time.Time) (Details, error) {
	return findLunar(obs, t, Forward)
}

// PreviousLunar returns the last lunar eclipse visible from obs whose local
// maximum is before t.
func PreviousLunar(obs horizon.Observer, t time.Time) (Details, error) {
	return findLunar(obs, t, Backward)
}

func findSolar(obs horizon.Observer, t time.Time, dir Direction) (Details, error) {
	table := SolarTable()
	return find(table, t, dir, func(i int) Details { return table[i].Solar(obs) })
}

func findLunar(obs horizon.Observer, t time.Time, dir Direction) (Details, error) {
	table := LunarTable()
	return find(table, t, dir, func(i int) Details { return table[i].Lunar(obs) })
}

// find walks the table from t in dir and returns the first visible eclipse
// on the right side of t.
func find[E candidate](table []E, t time.Time, dir Direction, local func(int) Details) (Details, error) {
	// Rows within a day of t are checked against the local maximum; the
	// rest are ordered by their greatest eclipse.
	const slack = 24 * time.Hour

	if dir == Forward {
		for i, e := range table {
			if e.mid().Before(t.Add(-slack)) {
				continue
			}
			if d := local(i); d.Visible && d.Contacts[Mid].Time.After(t) {
				return d, nil
			}
		}
		return Details{}, ErrOutOfRange
	}

	for i := len(table) - 1; i >= 0; i-- {
		if table[i].mid().After(t.Add(slack)) {
			continue
		}
		if d := local(i); d.Visible && d.Contacts[Mid].Time.Before(t) {
			return d, nil
		}
	}
	return Details{}, ErrOutOfRange
}
