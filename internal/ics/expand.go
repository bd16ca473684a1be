package ics

import (
	"time"

	"github.com/teambition/rrule-go"

	applog "github.com/silasgubi/painel/internal/log"
	"github.com/silasgubi/painel/internal/model"
)

// maxOccurrencesPerEvent caps recurrence expansion; a one-day window can
// never legitimately hold more.
const maxOccurrencesPerEvent = 100

// expandWindow turns parsed events into concrete occurrences overlapping
// [from, to], normalized to loc. Non-recurring events pass through a range
// check; recurring ones go through rrule with EXDATE applied.
func expandWindow(events []parsedEvent, from, to time.Time, loc *time.Location) []model.Event {
	out := make([]model.Event, 0, len(events))

	for _, ev := range events {
		if ev.rawRRule == "" {
			if overlaps(ev.start, ev.end, from, to) {
				out = append(out, makeEvent(ev, ev.start, loc))
			}
			continue
		}
		out = append(out, expandRecurring(ev, from, to, loc)...)
	}

	return out
}

func expandRecurring(ev parsedEvent, from, to time.Time, loc *time.Location) []model.Event {
	log := applog.WithComponent("ics")

	r, err := rrule.StrToRRule(ev.rawRRule)
	if err != nil {
		log.Warn().Err(err).Str("uid", ev.uid).Str("rrule", ev.rawRRule).Msg("unparsable RRULE, skipping event")
		return nil
	}
	r.DTStart(ev.start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.exDates {
		set.ExDate(ex.In(ev.start.Location()))
	}

	// Between operates in the event's own zone; widen the window start by
	// the event duration so in-progress occurrences are still found.
	dur := ev.end.Sub(ev.start)
	rangeStart := from.Add(-dur).In(ev.start.Location())
	rangeEnd := to.In(ev.start.Location())

	starts := set.Between(rangeStart, rangeEnd, true)
	if len(starts) > maxOccurrencesPerEvent {
		starts = starts[:maxOccurrencesPerEvent]
	}

	out := make([]model.Event, 0, len(starts))
	for _, start := range starts {
		end := start.Add(dur)
		if !overlaps(start, end, from, to) {
			continue
		}
		out = append(out, makeEvent(ev, start, loc))
	}
	return out
}

func makeEvent(ev parsedEvent, start time.Time, loc *time.Location) model.Event {
	local := start.In(loc)
	out := model.Event{
		SourceID: ev.sourceID,
		UID:      ev.uid,
		Title:    ev.summary,
		AllDay:   ev.allDay,
		Start:    local,
	}
	if ev.allDay {
		out.RawDate = local.Format("2006-01-02")
	}
	return out
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aEnd.Before(bStart) {
		return false
	}
	if bEnd.Before(aStart) {
		return false
	}
	return true
}
