// Package agenda defines the calendar-provider contract and shapes events
// into the display lines shown on the panel.
package agenda

import (
	"context"
	"sort"
	"time"

	"github.com/silasgubi/painel/internal/model"
)

// UntitledLabel replaces a missing event title.
const UntitledLabel = "Sem título"

// Source is a calendar provider. Events returns single-instance-expanded
// events with starts inside [from, to], in no particular order.
type Source interface {
	Name() string
	Events(ctx context.Context, from, to time.Time) ([]model.Event, error)
}

// DayWindow returns the half-open agenda window [now, end of now's day] in
// now's location.
func DayWindow(now time.Time) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	return now, end
}

// Lines sorts events by start time ascending and shapes each into a display
// item: timed events get an HH:MM label, all-day events keep their raw date
// string, and missing titles fall back to UntitledLabel.
func Lines(events []model.Event) []model.AgendaItem {
	sorted := make([]model.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	items := make([]model.AgendaItem, 0, len(sorted))
	for _, ev := range sorted {
		label := ev.Start.Format("15:04")
		if ev.AllDay {
			label = ev.RawDate
			if label == "" {
				label = ev.Start.Format("2006-01-02")
			}
		}
		title := ev.Title
		if title == "" {
			title = UntitledLabel
		}
		items = append(items, model.AgendaItem{TimeLabel: label, Title: title})
	}
	return items
}
