package eclipse

// horizonCase names which contacts happen with the eclipsed body below the
// horizon. Contacts not listed are above it.
type horizonCase int

const (
	allAbove horizonCase = iota
	allBelow
	belowC1       // rises between C1 and the next contact
	belowC1C2     // rises during totality/annularity before Mid
	belowC1ToMid  // rises after Mid, before C3
	belowC1ToC3   // rises after the central phase ended
	belowC4       // sets between the last visible contact and C4
	belowC3C4     // sets after Mid, before C3
	belowMidToC4  // sets during the central phase, before Mid
	belowC2ToC4   // sets before the central phase began
	unhandledCase // horizon crossed more than once
)

// edgeFinder locates the rising or setting of the eclipsed body between a
// contact below the horizon and one above it.
type edgeFinder func(below, above Circumstance) Circumstance

// classify maps the below-horizon flags of the five contacts of a central
// eclipse to a case.
func classify(below [numContacts]bool) horizonCase {
	switch below {
	case [numContacts]bool{false, false, false, false, false}:
		return allAbove
	case [numContacts]bool{true, true, true, true, true}:
		return allBelow
	case [numContacts]bool{true, false, false, false, false}:
		return belowC1
	case [numContacts]bool{true, true, false, false, false}:
		return belowC1C2
	case [numContacts]bool{true, true, true, false, false}:
		return belowC1ToMid
	case [numContacts]bool{true, true, true, true, false}:
		return belowC1ToC3
	case [numContacts]bool{false, false, false, false, true}:
		return belowC4
	case [numContacts]bool{false, false, false, true, true}:
		return belowC3C4
	case [numContacts]bool{false, false, true, true, true}:
		return belowMidToC4
	case [numContacts]bool{false, true, true, true, true}:
		return belowC2ToC4
	}
	return unhandledCase
}

// classifyPartial does the same for an eclipse without C2 and C3.
func classifyPartial(below [numContacts]bool) horizonCase {
	switch [3]bool{below[First], below[Mid], below[Fourth]} {
	case [3]bool{false, false, false}:
		return allAbove
	case [3]bool{true, true, true}:
		return allBelow
	case [3]bool{true, false, false}:
		return belowC1
	case [3]bool{true, true, false}:
		return belowC1ToMid
	case [3]bool{false, false, true}:
		return belowC4
	case [3]bool{false, true, true}:
		return belowMidToC4
	}
	return unhandledCase
}

// clip replaces contacts that happen below the horizon with the rising or
// setting of the body, sets d.Visible and returns the case applied. central
// reports whether C2 and C3 are meaningful on entry.
func clip(d *Details, central bool, rise, set edgeFinder) horizonCase {
	c := &d.Contacts
	var below [numContacts]bool
	for i := range c {
		below[i] = c[i].Visibility == BelowHorizon
	}

	hc := classifyPartial(below)
	if central {
		hc = classify(below)
	}

	atRise := func(from, to Contact, cs ...Contact) {
		r := rise(c[from], c[to])
		r.Visibility = AtRise
		for _, k := range cs {
			c[k] = r
		}
	}
	atSet := func(from, to Contact, cs ...Contact) {
		s := set(c[from], c[to])
		s.Visibility = AtSet
		for _, k := range cs {
			c[k] = s
		}
	}
	dropCentral := func() {
		c[Second] = Circumstance{Visibility: NotApplicable}
		c[Third] = Circumstance{Visibility: NotApplicable}
	}

	switch hc {
	case belowC1:
		next := Mid
		if central {
			next = Second
		}
		atRise(First, next, First)
	case belowC1C2:
		atRise(Second, Mid, First, Second)
	case belowC1ToMid:
		if central {
			atRise(Mid, Third, First, Second, Mid)
		} else {
			atRise(Mid, Fourth, First, Mid)
		}
	case belowC1ToC3:
		atRise(Third, Fourth, First, Mid)
		dropCentral()
	case belowC4:
		prev := Mid
		if central {
			prev = Third
		}
		atSet(Fourth, prev, Fourth)
	case belowC3C4:
		atSet(Third, Mid, Third, Fourth)
	case belowMidToC4:
		if central {
			atSet(Mid, Second, Mid, Third, Fourth)
		} else {
			atSet(Mid, First, Mid, Fourth)
		}
	case belowC2ToC4:
		atSet(Second, First, Mid, Fourth)
		dropCentral()
	}
	d.Visible = hc != allBelow && hc != unhandledCase
	d.Central = d.Visible && hasCentral(d)
	return hc
}
