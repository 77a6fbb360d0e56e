package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTrack(t *testing.T) {
	before := testutil.ToFloat64(computationsTotal.WithLabelValues("test-op"))
	done := Track("test-op")
	done()
	if got := testutil.ToFloat64(computationsTotal.WithLabelValues("test-op")); got != before+1 {
		t.Errorf("computations = %v, want %v", got, before+1)
	}
}

func TestSetPosition(t *testing.T) {
	SetPosition("home", "sun", 12.5, 181)
	if got := testutil.ToFloat64(altitudeDegrees.WithLabelValues("home", "sun")); got != 12.5 {
		t.Errorf("altitude = %v, want 12.5", got)
	}
	if got := testutil.ToFloat64(azimuthDegrees.WithLabelValues("home", "sun")); got != 181 {
		t.Errorf("azimuth = %v, want 181", got)
	}
}

func TestSetNextEvent(t *testing.T) {
	at := time.Date(2025, time.March, 14, 6, 58, 0, 0, time.UTC)
	SetNextEvent("home", "moon", "rise", &at)
	if got := testutil.ToFloat64(nextEventTimestamp.WithLabelValues("home", "moon", "rise")); got != float64(at.Unix()) {
		t.Errorf("next rise = %v, want %v", got, at.Unix())
	}

	SetNextEvent("home", "moon", "rise", nil)
	if n := testutil.CollectAndCount(nextEventTimestamp); n != 0 {
		t.Errorf("series after delete = %d, want 0", n)
	}
}

func TestHandler(t *testing.T) {
	SetIllumination(0.42)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Result().Body)

	for _, want := range []string{
		"skyglide_moon_illumination_ratio 0.42",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}
