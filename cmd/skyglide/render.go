package main

import (
	"time"

	"github.com/thurmanmarka/skyglide"
)

func fmtTime(t time.Time, ok bool) string {
	if !ok {
		return "none"
	}
	return t.Format(timeLayout)
}

func (p *printer) riseSet(rs skyglide.RiseSet, event string) {
	if event != "set" {
		p.row("Rise", "%s", fmtTime(rs.Rise, rs.HasRise))
	}
	if event != "rise" {
		p.row("Set", "%s", fmtTime(rs.Set, rs.HasSet))
	}
	if rs.Status != skyglide.RiseAndSet {
		p.warn("%s", rs.Status)
	}
}

func (p *printer) position(name string, pos skyglide.Position) {
	p.title("%s position at %s", name, pos.Time.Format(timeLayout))
	p.row("Altitude", "%.3f°", pos.Altitude)
	p.row("Azimuth", "%.3f°", pos.Azimuth)
	p.row("Parallactic", "%.3f°", pos.ParallacticAngle)
	p.row("RA / Dec", "%.4f° / %.4f°", pos.RightAscension, pos.Declination)
	p.row("Distance", "%.0f km", pos.Distance)
	if pos.Altitude < 0 {
		p.note("below the horizon")
	}
}

func (p *printer) phase(ph skyglide.MoonPhase) {
	p.row("Name", "%s", ph.Name)
	p.row("Fraction", "%.3f (%.1f%% illuminated)", ph.Fraction, ph.Fraction*100)
	p.row("Phase", "%.3f", ph.Phase)
	p.row("Elongation", "%.2f°", ph.Elongation)
	p.row("Bright limb", "%.1f°", ph.Angle)
	if ph.Waxing {
		p.row("Trend", "Waxing (illumination increasing)")
	} else {
		p.row("Trend", "Waning (illumination decreasing)")
	}
}

func (p *printer) phases(ps skyglide.MoonPhases) {
	p.row("New", "%s", ps.New.Format(timeLayout))
	p.row("First quarter", "%s", ps.FirstQuarter.Format(timeLayout))
	p.row("Full", "%s", ps.Full.Format(timeLayout))
	p.row("Last quarter", "%s", ps.LastQuarter.Format(timeLayout))
}

func (p *printer) sunTimes(st skyglide.SunTimes) {
	p.row("Astro dawn", "%s", fmtTime(st.Astronomical.Rise, st.Astronomical.HasRise))
	p.row("Nautical dawn", "%s", fmtTime(st.Nautical.Rise, st.Nautical.HasRise))
	p.row("Civil dawn", "%s", fmtTime(st.Civil.Rise, st.Civil.HasRise))
	p.row("Sunrise", "%s", fmtTime(st.Sunrise.Rise, st.Sunrise.HasRise))
	p.row("Sunrise end", "%s", fmtTime(st.SunriseEnd.Rise, st.SunriseEnd.HasRise))
	p.row("Golden hour end", "%s", fmtTime(st.GoldenHour.Rise, st.GoldenHour.HasRise))
	p.row("Solar noon", "%s", st.SolarNoon.Format(timeLayout))
	p.row("Golden hour", "%s", fmtTime(st.GoldenHour.Set, st.GoldenHour.HasSet))
	p.row("Sunset start", "%s", fmtTime(st.SunriseEnd.Set, st.SunriseEnd.HasSet))
	p.row("Sunset", "%s", fmtTime(st.Sunrise.Set, st.Sunrise.HasSet))
	p.row("Civil dusk", "%s", fmtTime(st.Civil.Set, st.Civil.HasSet))
	p.row("Nautical dusk", "%s", fmtTime(st.Nautical.Set, st.Nautical.HasSet))
	p.row("Astro dusk", "%s", fmtTime(st.Astronomical.Set, st.Astronomical.HasSet))
	p.row("Nadir", "%s", st.Nadir.Format(timeLayout))
}

func (p *printer) window(name string, d skyglide.DaylightPhases) {
	if d.HasMorning {
		p.row(name+" (am)", "%s .. %s", d.Morning.Start.Format("15:04:05"), d.Morning.End.Format("15:04:05"))
	}
	if d.HasEvening {
		p.row(name+" (pm)", "%s .. %s", d.Evening.Start.Format("15:04:05"), d.Evening.End.Format("15:04:05"))
	}
}

func (p *printer) eclipse(e skyglide.Eclipse, tz *time.Location) {
	what := "Solar"
	if e.Lunar {
		what = "Lunar"
	}
	p.title("%s eclipse of %s (%s, %s globally)", what, e.Date().Format("2006-01-02"), e.Kind, e.Global)
	p.row("Magnitude", "%.4f", e.Magnitude)
	if e.Lunar {
		p.row("Penumbral mag", "%.4f", e.PenumbralMagnitude)
		if e.P1 != nil {
			p.row("P1", "%s  alt %.1f°", e.P1.Time.In(tz).Format(timeLayout), e.P1.Altitude)
		}
	} else {
		p.row("Obscuration", "%.1f%%", e.Coverage*100)
	}
	for c := skyglide.FirstContact; c <= skyglide.FourthContact; c++ {
		if (c == skyglide.SecondContact || c == skyglide.ThirdContact) && !e.Central {
			continue
		}
		ci := e.Contact(c)
		p.row(c.Label(e.Lunar), "%s  alt %5.1f°  az %5.1f°  %s",
			ci.Time.In(tz).Format(timeLayout), ci.Altitude, ci.Azimuth, ci.Visibility)
	}
	if e.Lunar && e.P4 != nil {
		p.row("P4", "%s  alt %.1f°", e.P4.Time.In(tz).Format(timeLayout), e.P4.Altitude)
	}
	if e.Duration > 0 {
		p.row("Duration", "%s", e.Duration)
	}
}

func (p *printer) seasons(s skyglide.Seasons, tz *time.Location) {
	p.row("March equinox", "%s", s.MarchEquinox.In(tz).Format(timeLayout))
	p.row("June solstice", "%s", s.JuneSolstice.In(tz).Format(timeLayout))
	p.row("Sept equinox", "%s", s.SeptemberEquinox.In(tz).Format(timeLayout))
	p.row("Dec solstice", "%s", s.DecemberSolstice.In(tz).Format(timeLayout))
	p.note("instants in dynamical time")
}

func (p *printer) apsides(a skyglide.Apsides) {
	p.row("Perigee", "%s  %.0f km", a.Perigee.Time.Format(timeLayout), a.Perigee.Distance)
	p.row("Apogee", "%s  %.0f km", a.Apogee.Time.Format(timeLayout), a.Apogee.Distance)
}
