package main

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thurmanmarka/skyglide/internal/config"
	"github.com/thurmanmarka/skyglide/internal/metrics"
)

var now = time.Date(2025, time.November, 30, 18, 0, 0, 0, time.UTC)

func TestParseInstant(t *testing.T) {
	mst := time.FixedZone("MST", -7*3600)
	cases := []struct {
		date, clock string
		want        time.Time
	}{
		{"", "", now.In(mst)},
		{"2025-06-21", "", time.Date(2025, time.June, 21, 0, 0, 0, 0, mst)},
		{"2025-06-21", "05:30", time.Date(2025, time.June, 21, 5, 30, 0, 0, mst)},
		{"", "05:30:15", time.Date(2025, time.November, 30, 5, 30, 15, 0, mst)},
		{"2020-01-01", "2025-06-21T05:30", time.Date(2025, time.June, 21, 5, 30, 0, 0, mst)},
		{"", "2025-06-21T12:30:00Z", time.Date(2025, time.June, 21, 5, 30, 0, 0, mst)},
	}
	for _, c := range cases {
		got, err := parseInstant(c.date, c.clock, mst, now)
		if err != nil {
			t.Errorf("parseInstant(%q, %q): %v", c.date, c.clock, err)
			continue
		}
		if !got.Equal(c.want) || got.Location() != mst {
			t.Errorf("parseInstant(%q, %q) = %v, want %v", c.date, c.clock, got, c.want)
		}
	}

	for _, bad := range [][2]string{{"2025-13-01", ""}, {"", "25:99"}, {"tomorrow", ""}} {
		if _, err := parseInstant(bad[0], bad[1], mst, now); err == nil {
			t.Errorf("parseInstant(%q, %q) succeeded", bad[0], bad[1])
		}
	}
}

func TestOffsetFlag(t *testing.T) {
	var o offsetFlag
	if o.String() != "" || o.set {
		t.Fatal("zero offsetFlag reports a value")
	}
	if err := o.Set("5.5"); err != nil {
		t.Fatal(err)
	}
	if !o.set || o.hours != 5.5 || o.String() != "5.5" {
		t.Errorf("offsetFlag = %+v", o)
	}
	if err := o.Set("east"); err == nil {
		t.Error("non-numeric offset accepted")
	}
}

func TestRunRiseSetJSON(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"-lat", "33.4484", "-lon", "-112.0740", "-date", "2025-11-30", "-offset", "-7", "-json"}
	if err := run(args, &buf, now); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Body     string     `json:"body"`
		Date     string     `json:"date"`
		Rise     *time.Time `json:"rise"`
		Set      *time.Time `json:"set"`
		Status   string     `json:"status"`
		Daylight *float64   `json:"daylight_hours"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %s: %v", buf.String(), err)
	}
	if got.Body != "sun" || got.Date != "2025-11-30" || got.Status != "rise-and-set" {
		t.Errorf("body=%q date=%q status=%q", got.Body, got.Date, got.Status)
	}
	if got.Rise == nil || got.Set == nil || got.Daylight == nil {
		t.Fatalf("missing fields in %s", buf.String())
	}
	wantRise := time.Date(2025, time.November, 30, 14, 13, 0, 0, time.UTC)
	if d := math.Abs(got.Rise.Sub(wantRise).Minutes()); d > 4 {
		t.Errorf("rise = %v, want ~%v", got.Rise, wantRise)
	}
	if *got.Daylight < 9.5 || *got.Daylight > 10.5 {
		t.Errorf("daylight = %.2f", *got.Daylight)
	}
}

func TestRunRiseSetEventFilter(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"riseset", "-lat", "33.4484", "-lon", "-112.0740", "-date", "2025-11-30", "-offset", "-7", "-event", "set"}
	if err := run(args, &buf, now); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "Rise") || !strings.Contains(out, "Set") {
		t.Errorf("output:\n%s", out)
	}
	if !strings.Contains(out, "2025-11-30 17:") {
		t.Errorf("sunset not printed in local time:\n%s", out)
	}
}

func TestRunReport(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"report", "-lat", "32.7767", "-lon", "-96.797", "-time", "2024-04-08T13:00", "-offset", "-5"}
	if err := run(args, &buf, now); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Sky report for 2024-04-08 13:00:00 -05:00", "Solar eclipse of 2024-04-08 (total", "Solar noon", "Perigee"} {
		if !strings.Contains(out, want) {
			t.Errorf("report lacks %q:\n%s", want, out)
		}
	}
}

func TestRunConfigObserver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skyglide.toml")
	cfg := `
log_level = "warn"

[[observer]]
name = "equator"
latitude = 0.0
longitude = 10.0

[[observer]]
name = "phoenix"
latitude = 33.4484
longitude = -112.074
elevation = 331.0
utc_offset = -7.0
`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	args := []string{"position", "-config", path, "-observer", "phoenix", "-time", "2025-11-30T12:00", "-json"}
	if err := run(args, &buf, now); err != nil {
		t.Fatal(err)
	}
	var got map[string]struct {
		Time     time.Time
		Altitude float64
		Azimuth  float64
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %s: %v", buf.String(), err)
	}
	sun, ok := got["sun"]
	if !ok || len(got) != 2 {
		t.Fatalf("positions = %v", got)
	}
	if want := time.Date(2025, time.November, 30, 19, 0, 0, 0, time.UTC); !sun.Time.Equal(want) {
		t.Errorf("time = %v, want %v", sun.Time, want)
	}
	if sun.Altitude < 30 || sun.Altitude > 40 || sun.Azimuth < 160 || sun.Azimuth > 200 {
		t.Errorf("sun at alt %.1f az %.1f, want near the meridian", sun.Altitude, sun.Azimuth)
	}

	if err := run([]string{"position", "-config", path, "-observer", "nowhere"}, &buf, now); err == nil {
		t.Error("unknown observer accepted")
	}
}

func TestRunErrors(t *testing.T) {
	var buf bytes.Buffer
	cases := [][]string{
		{"almanac"},
		{"-lat", "91"},
		{"-lat", "10", "-body", "mars"},
		{"-lat", "10", "-event", "noon"},
		{"eclipse", "-lat", "10", "-kind", "hybrid"},
		{"position", "-observer", "phoenix"},
	}
	for _, args := range cases {
		if err := run(args, &buf, now); err == nil {
			t.Errorf("run(%q) succeeded", args)
		}
	}
}

func TestRefreshExportsGauges(t *testing.T) {
	refresh([]config.Observer{{Name: "phx", Latitude: 33.4484, Longitude: -112.074}}, now)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`skyglide_altitude_degrees{body="sun",observer="phx"}`,
		`skyglide_azimuth_degrees{body="moon",observer="phx"}`,
		`skyglide_next_event_timestamp_seconds{body="sun",event="rise",observer="phx"}`,
		`skyglide_moon_illumination_ratio`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape lacks %s", want)
		}
	}
}
