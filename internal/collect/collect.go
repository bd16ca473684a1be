// Package collect assembles the per-run display snapshot. The four external
// fetches (weather, agenda, network, holiday reference) run concurrently,
// each under its own timeout, and each degrades to its fallback value on
// failure; the snapshot is always produced.
package collect

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/silasgubi/painel/internal/agenda"
	applog "github.com/silasgubi/painel/internal/log"
	"github.com/silasgubi/painel/internal/model"
)

// WeatherSource yields the one-line weather summary.
type WeatherSource interface {
	Fetch(ctx context.Context) (string, error)
}

// NetworkProber yields the link status; it owns its offline fallback.
type NetworkProber interface {
	Probe(ctx context.Context) model.NetworkStatus
}

// HolidayLookup resolves the holiday line for a date. It is local data with
// no failure mode of its own; an absent lookup maps to the unknown status.
type HolidayLookup interface {
	Status(today time.Time) model.HolidayStatus
}

// Sources bundles the snapshot inputs. Any nil member degrades to its
// fallback instead of being fetched.
type Sources struct {
	Weather WeatherSource
	Agenda  agenda.Source
	Network NetworkProber
	Holiday HolidayLookup
}

// Options tunes the collection run.
type Options struct {
	// FetchTimeout bounds the weather and agenda fetches.
	FetchTimeout time.Duration
	// ProbeTimeout bounds the network probe.
	ProbeTimeout time.Duration
}

var weekdayNames = [...]string{
	"Domingo",
	"Segunda-feira",
	"Terça-feira",
	"Quarta-feira",
	"Quinta-feira",
	"Sexta-feira",
	"Sábado",
}

// Collect builds the snapshot for the given instant. It never fails: every
// degraded source is visible in the snapshot, not in an error.
func Collect(ctx context.Context, now time.Time, src Sources, opts Options) model.Snapshot {
	log := applog.WithComponent("collect")

	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 15 * time.Second
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 60 * time.Second
	}

	snap := model.Snapshot{
		GeneratedAt:  now,
		DateLabel:    now.Format("02/01/2006"),
		TimeLabel:    now.Format("15:04"),
		WeekdayLabel: weekdayNames[int(now.Weekday())],
	}

	// The four fetches are independent; each goroutine writes its own
	// snapshot field and always returns nil so one failure never cancels
	// the others.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		snap.Holiday = model.HolidayStatus{Kind: model.HolidayUnknown}
		if src.Holiday == nil {
			return nil
		}
		snap.Holiday = src.Holiday.Status(now)
		return nil
	})

	g.Go(func() error {
		if src.Weather == nil {
			return nil
		}
		fctx, cancel := context.WithTimeout(gctx, opts.FetchTimeout)
		defer cancel()

		text, err := src.Weather.Fetch(fctx)
		if err != nil {
			log.Warn().Err(err).Msg("weather fetch failed, using fallback")
			return nil
		}
		snap.Weather = model.WeatherStatus{Text: text, Available: true}
		return nil
	})

	g.Go(func() error {
		if src.Agenda == nil {
			snap.Agenda = model.AgendaStatus{Failed: true}
			return nil
		}
		fctx, cancel := context.WithTimeout(gctx, opts.FetchTimeout)
		defer cancel()

		from, to := agenda.DayWindow(now)
		events, err := src.Agenda.Events(fctx, from, to)
		if err != nil {
			log.Warn().Err(err).Str("source", src.Agenda.Name()).Msg("agenda fetch failed, using fallback")
			snap.Agenda = model.AgendaStatus{Failed: true}
			return nil
		}
		snap.Agenda = model.AgendaStatus{Items: agenda.Lines(events)}
		return nil
	})

	g.Go(func() error {
		if src.Network == nil {
			snap.Network = model.NetworkStatus{Kind: model.NetworkOffline}
			return nil
		}
		fctx, cancel := context.WithTimeout(gctx, opts.ProbeTimeout)
		defer cancel()

		snap.Network = src.Network.Probe(fctx)
		return nil
	})

	// Goroutines only ever return nil; Wait is a join point.
	_ = g.Wait()

	log.Info().
		Bool("weather_ok", snap.Weather.Available).
		Bool("agenda_ok", !snap.Agenda.Failed).
		Int("agenda_items", len(snap.Agenda.Items)).
		Bool("network_ok", snap.Network.Kind == model.NetworkMeasured).
		Msg("snapshot collected")

	return snap
}
