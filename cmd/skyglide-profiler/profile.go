package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/thurmanmarka/skyglide"
	"github.com/thurmanmarka/skyglide/internal/logging"
)

// stats accumulates errors in minutes. NaN samples are ignored.
type stats struct {
	count int
	sum   float64
	abs   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}
	s.sum += v
	s.abs += math.Abs(v)
	s.count++
}

// mean is the signed bias.
func (s *stats) mean() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// meanAbs is the average magnitude of the error.
func (s *stats) meanAbs() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.abs / float64(s.count)
}

// signedMinutes is a - b in minutes, NaN when either is missing.
func signedMinutes(a time.Time, okA bool, b time.Time, okB bool) float64 {
	if !okA || !okB {
		return math.NaN()
	}
	return a.Sub(b).Minutes()
}

// reference is one row of the reference CSV:
//
//	date,rise,set
//	2025-01-01,07:32,17:12
//
// Times are local HH:MM[:SS]; an empty field or "-" means no event.
type reference struct {
	line    int
	date    time.Time
	rise    time.Time
	set     time.Time
	hasRise bool
	hasSet  bool
}

// readReference parses the CSV in r. Malformed rows are logged and counted
// as skipped. A header row starting with "date" is ignored.
func readReference(r io.Reader, loc *time.Location) ([]reference, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to read CSV")
	}
	if len(records) == 0 {
		return nil, 0, errors.New("empty CSV file")
	}

	log := logging.Default()
	start := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		start = 1
	}

	var refs []reference
	skipped := 0
	for i := start; i < len(records); i++ {
		row := records[i]
		line := i + 1
		if len(row) < 3 {
			log.Warn("row skipped: expected date,rise,set", "line", line, "columns", len(row))
			skipped++
			continue
		}
		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(row[0]), loc)
		if err != nil {
			log.Warn("row skipped: invalid date", "line", line, "date", row[0], "error", err)
			skipped++
			continue
		}
		ref := reference{line: line, date: date}
		if ref.rise, ref.hasRise, err = parseClock(date, row[1]); err != nil {
			log.Warn("row skipped: invalid rise", "line", line, "rise", row[1], "error", err)
			skipped++
			continue
		}
		if ref.set, ref.hasSet, err = parseClock(date, row[2]); err != nil {
			log.Warn("row skipped: invalid set", "line", line, "set", row[2], "error", err)
			skipped++
			continue
		}
		refs = append(refs, ref)
	}
	return refs, skipped, nil
}

// parseClock combines an HH:MM or HH:MM:SS clock with date.
func parseClock(date time.Time, s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return time.Time{}, false, nil
	}
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	c, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), c.Second(), 0, date.Location()), true, nil
}

// profile compares a body (or a twilight kind) against reference rows.
type profile struct {
	body     skyglide.Body
	twilight *skyglide.TwilightKind
	coords   skyglide.Coordinates
	loc      *time.Location

	rise, set stats
	failed    int
	// mismatch counts rows where one side has an event the other lacks.
	mismatch int
}

func (p *profile) mode() string {
	if p.twilight != nil {
		return fmt.Sprintf("SUN (%s TWILIGHT)", strings.ToUpper(p.twilight.String()))
	}
	return strings.ToUpper(p.body.String())
}

// result is the comparison of one day.
type result struct {
	ref       reference
	got       skyglide.RiseSet
	rise, set float64 // signed minutes, ours minus reference
	// never is set when the twilight altitude is not crossed at all.
	never bool
	phase *skyglide.MoonPhase
}

func (p *profile) compare(ref reference) (result, error) {
	var (
		rs    skyglide.RiseSet
		err   error
		never bool
	)
	if p.twilight != nil {
		rs, err = skyglide.TwilightFor(p.coords, ref.date, *p.twilight)
		if errors.Is(err, skyglide.ErrNoRiseNoSet) {
			rs, err, never = skyglide.RiseSet{}, nil, true
		}
	} else {
		rs, err = skyglide.RiseSetFor(p.body, p.coords, ref.date)
	}
	if err != nil {
		p.failed++
		return result{}, errors.Wrapf(err, "line %d", ref.line)
	}

	res := result{
		ref:   ref,
		got:   rs,
		rise:  signedMinutes(rs.Rise, rs.HasRise, ref.rise, ref.hasRise),
		set:   signedMinutes(rs.Set, rs.HasSet, ref.set, ref.hasSet),
		never: never,
	}
	if rs.HasRise != ref.hasRise || rs.HasSet != ref.hasSet {
		p.mismatch++
	}
	p.rise.add(res.rise)
	p.set.add(res.set)

	if p.body == skyglide.Moon && p.twilight == nil {
		noon := time.Date(ref.date.Year(), ref.date.Month(), ref.date.Day(), 12, 0, 0, 0, p.loc)
		if mp, err := skyglide.MoonPhaseAt(noon); err == nil {
			res.phase = &mp
		}
	}
	return res, nil
}

var csvHeader = []string{
	"date", "body", "mode", "status",
	"rise_err", "set_err", "rise_signed", "set_signed",
	"phase_fraction", "phase_name", "phase_elongation", "phase_waxing",
}

func (p *profile) record(r result) []string {
	num := func(v float64) string {
		if math.IsNaN(v) {
			return ""
		}
		return fmt.Sprintf("%.6f", v)
	}
	status := r.got.Status.String()
	if r.never {
		status = "never"
	}
	rec := []string{
		r.ref.date.Format("2006-01-02"),
		strings.ToUpper(p.body.String()),
		p.mode(),
		status,
		num(math.Abs(r.rise)),
		num(math.Abs(r.set)),
		num(r.rise),
		num(r.set),
		"", "", "", "",
	}
	if r.phase != nil {
		rec[8] = fmt.Sprintf("%.6f", r.phase.Fraction)
		rec[9] = r.phase.Name
		rec[10] = fmt.Sprintf("%.3f", r.phase.Elongation)
		rec[11] = "waning"
		if r.phase.Waxing {
			rec[11] = "waxing"
		}
	}
	return rec
}

func (p *profile) summary(w io.Writer, rows, skipped int) {
	fmt.Fprintln(w, "=== skyglide profiler summary ===")
	fmt.Fprintf(w, "Mode:    %s\n", p.mode())
	fmt.Fprintf(w, "Lat/Lon: %.4f / %.4f\n", p.coords.Lat, p.coords.Lon)
	fmt.Fprintf(w, "TZ:      %s\n", p.loc)
	fmt.Fprintf(w, "Rows:    %d (processed), %d skipped, %d failed\n", rows, skipped, p.failed)
	if p.mismatch > 0 {
		fmt.Fprintf(w, "Rows where only one side has an event: %d\n", p.mismatch)
	}

	if p.rise.count == 0 && p.set.count == 0 {
		fmt.Fprintln(w, "No valid rows to compute stats.")
		return
	}
	for _, s := range []struct {
		name string
		st   *stats
	}{{"Rise", &p.rise}, {"Set", &p.set}} {
		fmt.Fprintf(w, "\n%s error (minutes, ours - ref):\n", s.name)
		fmt.Fprintf(w, "  count:    %d\n", s.st.count)
		fmt.Fprintf(w, "  min:      %.3f\n", s.st.min)
		fmt.Fprintf(w, "  max:      %.3f\n", s.st.max)
		fmt.Fprintf(w, "  mean:     %.3f\n", s.st.mean())
		fmt.Fprintf(w, "  mean abs: %.3f\n", s.st.meanAbs())
	}
}
