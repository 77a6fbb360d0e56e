package solver

import (
	"time"
)

// AltitudeFunc returns altitude in degrees at time t.
type AltitudeFunc func(t time.Time) float64

// EventType is the direction of a threshold crossing.
type EventType int

const (
	// CrossingUp is a rise: altitude increasing through the threshold.
	CrossingUp EventType = iota
	// CrossingDown is a set.
	CrossingDown
)

func (e EventType) String() string {
	if e == CrossingUp {
		return "rise"
	}
	return "set"
}

// crosses reports whether going from a to b (both relative to the
// threshold) is a crossing in direction e.
func (e EventType) crosses(a, b float64) bool {
	if e == CrossingUp {
		return a < 0 && b >= 0
	}
	return a > 0 && b <= 0
}

// Result is the outcome of a crossing search.
type Result struct {
	Time time.Time
	OK   bool
}

// FindAltitudeEvent samples [start, end] at steps evenly spaced instants,
// ends included, and bisects the first interval that crosses target in
// direction dir down to tol.
func FindAltitudeEvent(f AltitudeFunc, start, end time.Time, target float64, dir EventType, steps int, tol time.Duration) Result {
	if !start.Before(end) {
		return Result{}
	}
	steps = max(steps, 2)
	step := end.Sub(start) / time.Duration(steps-1)

	lo, hLo := start, f(start)-target
	for i := 1; i < steps; i++ {
		hi := start.Add(time.Duration(i) * step)
		if i == steps-1 {
			hi = end
		}
		hHi := f(hi) - target
		if dir.crosses(hLo, hHi) {
			return Result{Time: Bisect(f, lo, hi, target, dir, tol), OK: true}
		}
		lo, hLo = hi, hHi
	}
	return Result{}
}

// Bisect narrows [lo, hi], which must bracket a crossing in direction dir,
// until it is shorter than tol and returns its midpoint.
func Bisect(f AltitudeFunc, lo, hi time.Time, target float64, dir EventType, tol time.Duration) time.Time {
	hLo := f(lo) - target
	for hi.Sub(lo) > tol {
		mid := lo.Add(hi.Sub(lo) / 2)
		hMid := f(mid) - target
		if dir.crosses(hLo, hMid) {
			hi = mid
		} else {
			lo, hLo = mid, hMid
		}
	}
	return lo.Add(hi.Sub(lo) / 2)
}
