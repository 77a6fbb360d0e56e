package main

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thurmanmarka/skyglide"
)

var phoenixZone = time.FixedZone("MST", -7*3600)

const phoenixCSV = `date,rise,set
# sunrise and sunset, Phoenix AZ
2025-11-28,07:11,17:21
2025-11-30,07:13,17:21
2025-11-31,07:14,17:21
2025-12-01,07:14
2025-12-02,7h15,17:21
`

func TestReadReference(t *testing.T) {
	refs, skipped, err := readReference(strings.NewReader(phoenixCSV), phoenixZone)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 || skipped != 3 {
		t.Fatalf("got %d rows, %d skipped", len(refs), skipped)
	}
	want := time.Date(2025, time.November, 30, 7, 13, 0, 0, phoenixZone)
	if !refs[1].rise.Equal(want) || !refs[1].hasRise || !refs[1].hasSet {
		t.Errorf("row = %+v", refs[1])
	}

	refs, _, err = readReference(strings.NewReader("2025-06-21,-,23:59:30\n"), phoenixZone)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 1 || refs[0].hasRise || !refs[0].hasSet || refs[0].set.Second() != 30 {
		t.Errorf("rows = %+v", refs)
	}

	if _, _, err := readReference(strings.NewReader(""), phoenixZone); err == nil {
		t.Error("empty CSV accepted")
	}
}

func TestStats(t *testing.T) {
	var s stats
	if !math.IsNaN(s.mean()) || !math.IsNaN(s.meanAbs()) {
		t.Error("empty stats have a mean")
	}
	for _, v := range []float64{-2, math.NaN(), 1, 4} {
		s.add(v)
	}
	if s.count != 3 || s.min != -2 || s.max != 4 {
		t.Errorf("stats = %+v", s)
	}
	if s.mean() != 1 || math.Abs(s.meanAbs()-7.0/3) > 1e-12 {
		t.Errorf("mean %v, mean abs %v", s.mean(), s.meanAbs())
	}
}

func TestCompare(t *testing.T) {
	refs, _, err := readReference(strings.NewReader(phoenixCSV), phoenixZone)
	if err != nil {
		t.Fatal(err)
	}
	p := &profile{body: skyglide.Sun, coords: skyglide.Coordinates{Lat: 33.4484, Lon: -112.0740}, loc: phoenixZone}
	for _, ref := range refs {
		res, err := p.compare(ref)
		if err != nil {
			t.Fatal(err)
		}
		if rec := p.record(res); len(rec) != len(csvHeader) || rec[3] != "rise-and-set" {
			t.Errorf("record = %q", rec)
		}
	}
	if p.rise.count != 2 || p.set.count != 2 || p.mismatch != 0 {
		t.Fatalf("profile = %+v", p)
	}
	if p.rise.meanAbs() > 4 || p.set.meanAbs() > 4 {
		t.Errorf("mean abs error rise %.2f set %.2f min", p.rise.meanAbs(), p.set.meanAbs())
	}
}

func TestCompareTwilightNever(t *testing.T) {
	kind := skyglide.TwilightAstronomical
	p := &profile{body: skyglide.Sun, twilight: &kind, coords: skyglide.Coordinates{Lat: 69.6492, Lon: 18.9553}, loc: time.UTC}
	ref := reference{date: time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)}
	res, err := p.compare(ref)
	if err != nil {
		t.Fatal(err)
	}
	if !res.never || p.rise.count != 0 {
		t.Errorf("result = %+v", res)
	}
	if rec := p.record(res); rec[3] != "never" || rec[2] != "SUN (ASTRONOMICAL TWILIGHT)" {
		t.Errorf("record = %q", rec)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.csv")
	out := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(ref, []byte(phoenixCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	args := []string{"-lat", "33.4484", "-lon", "-112.0740", "-tz", "", "-offset", "-7", "-refcsv", ref, "-outcsv", out, "-log-level", "error"}
	if err := run(args, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Rows:    2 (processed), 3 skipped, 0 failed") {
		t.Errorf("summary:\n%s", buf.String())
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 || recs[0][0] != "date" || recs[1][0] != "2025-11-28" {
		t.Errorf("outcsv = %q", recs)
	}

	if err := run([]string{"-lat", "10"}, &buf); err == nil {
		t.Error("missing -refcsv accepted")
	}
	if err := run([]string{"-lat", "10", "-refcsv", ref, "-body", "moon", "-twilight", "civil"}, &buf); err == nil {
		t.Error("moon twilight accepted")
	}
}
