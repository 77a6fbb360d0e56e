package main

import (
	"context"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/thurmanmarka/skyglide"
	"github.com/thurmanmarka/skyglide/internal/config"
	"github.com/thurmanmarka/skyglide/internal/logging"
	"github.com/thurmanmarka/skyglide/internal/metrics"
)

func runServe(args []string, _ io.Writer, now time.Time) error {
	c := newCommand("serve", "Serve Sun and Moon positions and upcoming events as prometheus metrics.")
	listen := c.fs.String("listen", "", "address to serve /metrics on (default from -config, else :9797)")
	interval := c.fs.Duration("interval", 0, "refresh interval (default from -config, else 1m)")
	if err := c.parse(args); err != nil {
		return err
	}
	r, err := c.resolve(now)
	if err != nil {
		return err
	}
	log := logging.Default()

	observers := r.cfg.Observers
	if len(observers) == 0 {
		observers = []config.Observer{{
			Name:      "default",
			Latitude:  r.coords.Lat,
			Longitude: r.coords.Lon,
			Elevation: r.coords.Elevation,
			UTCOffset: r.offset,
		}}
	}
	if *listen == "" {
		*listen = r.cfg.Serve.Listen
	}
	if *interval <= 0 {
		*interval = r.cfg.Serve.Interval()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go refreshLoop(ctx, observers, *interval)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: *listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		log.Info("starting exporter", "addr", *listen, "observers", len(observers), "interval", *interval)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}
	log.Info("shutting down exporter")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
}

func refreshLoop(ctx context.Context, observers []config.Observer, interval time.Duration) {
	refresh(observers, time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logging.Default().Debug("refresh loop shutting down")
			return
		case t := <-ticker.C:
			refresh(observers, t)
		}
	}
}

// refresh recomputes every gauge for now.
func refresh(observers []config.Observer, now time.Time) {
	log := logging.Default()

	if ph, err := skyglide.MoonPhaseAt(now); err == nil {
		metrics.SetIllumination(ph.Fraction)
	}

	for _, o := range observers {
		loc := skyglide.Coordinates{Lat: o.Latitude, Lon: o.Longitude, Elevation: o.Elevation}
		for _, body := range []skyglide.Body{skyglide.Sun, skyglide.Moon} {
			pos, err := skyglide.PositionAt(body, loc, now)
			if err != nil {
				log.Warn("position failed", "observer", o.Name, "body", body, "error", err)
				continue
			}
			metrics.SetPosition(o.Name, body.String(), pos.Altitude, pos.Azimuth)

			rs, err := skyglide.NextRiseSet(body, loc, now)
			if err != nil {
				log.Warn("next rise/set failed", "observer", o.Name, "body", body, "error", err)
				continue
			}
			metrics.SetNextEvent(o.Name, body.String(), "rise", optional(rs.Rise, rs.HasRise))
			metrics.SetNextEvent(o.Name, body.String(), "set", optional(rs.Set, rs.HasSet))
		}
	}
	log.Debug("metrics refreshed", "observers", len(observers), "at", now.Format(time.RFC3339))
}

func optional(t time.Time, ok bool) *time.Time {
	if !ok {
		return nil
	}
	return &t
}
