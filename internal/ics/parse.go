package ics

import (
	"bytes"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	applog "github.com/silasgubi/painel/internal/log"
)

// parsedEvent is a VEVENT as read from the feed, before recurrence
// expansion. Only the fields the panel needs are carried.
type parsedEvent struct {
	sourceID string
	uid      string

	summary string

	start  time.Time
	end    time.Time
	allDay bool

	rawRRule string
	exDates  []time.Time
}

// parseCalendar parses an ICS payload into parsedEvents. Individual broken
// VEVENTs are skipped with a log line; only a payload that fails to parse at
// all is an error.
func parseCalendar(sourceID string, body []byte) ([]parsedEvent, error) {
	log := applog.WithComponent("ics")

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]parsedEvent, 0)
	for _, ve := range cal.Events() {
		ev, ok := parseVEvent(sourceID, ve)
		if !ok {
			log.Warn().Str("id", sourceID).Msg("skipping malformed VEVENT")
			continue
		}
		events = append(events, ev)
	}

	log.Debug().Str("id", sourceID).Int("event_count", len(events)).Msg("feed parsed")
	return events, nil
}

func parseVEvent(sourceID string, ve *ical.VEvent) (parsedEvent, bool) {
	var out parsedEvent
	out.sourceID = sourceID

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, false
	}
	out.uid = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.summary = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, false
	}
	end, err := ve.GetEndAt()
	if err != nil {
		// DTEND is optional; default to the start.
		end = start
	}
	out.start = start
	out.end = end

	// All-day detection: VALUE=DATE parameter or a date-only DTSTART value.
	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
		if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			out.allDay = true
		}
		if !strings.Contains(p.Value, "T") {
			out.allDay = true
		}
	}

	// An all-day event covers its whole day even when the feed omits DTEND.
	if out.allDay && !out.end.After(out.start) {
		out.end = out.start.Add(24 * time.Hour)
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.rawRRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part); err == nil {
				out.exDates = append(out.exDates, t)
			}
		}
	}

	return out, true
}

// parseICSTime parses the basic ICS date/date-time forms used by EXDATE.
func parseICSTime(v string) (time.Time, error) {
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, time.Local)
	}
	return time.ParseInLocation("20060102", v, time.Local)
}
