// Package metrics exposes computation counters and the current sky state
// of configured observers as Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	computationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyglide_computations_total",
			Help: "Total number of computations by operation.",
		},
		[]string{"operation"},
	)

	computationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skyglide_computation_duration_seconds",
			Help:    "Computation duration in seconds.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		},
		[]string{"operation"},
	)

	altitudeDegrees = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "skyglide_altitude_degrees",
			Help: "Apparent altitude of the body above the horizon.",
		},
		[]string{"observer", "body"},
	)

	azimuthDegrees = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "skyglide_azimuth_degrees",
			Help: "Azimuth of the body, clockwise from north.",
		},
		[]string{"observer", "body"},
	)

	moonIllumination = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "skyglide_moon_illumination_ratio",
		Help: "Illuminated fraction of the Moon's disc.",
	})

	nextEventTimestamp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "skyglide_next_event_timestamp_seconds",
			Help: "Unix time of the next rise or set of the body.",
		},
		[]string{"observer", "body", "event"},
	)
)

func init() {
	registry.MustRegister(computationsTotal)
	registry.MustRegister(computationSeconds)
	registry.MustRegister(altitudeDegrees)
	registry.MustRegister(azimuthDegrees)
	registry.MustRegister(moonIllumination)
	registry.MustRegister(nextEventTimestamp)
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Track counts one computation of op and returns a func that records its
// duration when called.
//
//	defer metrics.Track("riseset")()
func Track(op string) func() {
	start := time.Now()
	computationsTotal.WithLabelValues(op).Inc()
	return func() {
		computationSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

// SetPosition records the horizon position of body for observer.
func SetPosition(observer, body string, altitude, azimuth float64) {
	altitudeDegrees.WithLabelValues(observer, body).Set(altitude)
	azimuthDegrees.WithLabelValues(observer, body).Set(azimuth)
}

// SetIllumination records the Moon's illuminated fraction.
func SetIllumination(fraction float64) {
	moonIllumination.Set(fraction)
}

// SetNextEvent records the time of the next event of body. A nil t removes
// the series, so a body that does not rise drops out of the scrape.
func SetNextEvent(observer, body, event string, t *time.Time) {
	if t == nil {
		nextEventTimestamp.DeleteLabelValues(observer, body, event)
		return
	}
	nextEventTimestamp.WithLabelValues(observer, body, event).Set(float64(t.Unix()))
}
