// Package gcal is the Google Calendar agenda provider. It bootstraps a
// read-only service from a service-account credential and queries one
// calendar for the day window.
package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	applog "github.com/silasgubi/painel/internal/log"
	"github.com/silasgubi/painel/internal/model"
)

// CredentialFileName is the persisted copy of the service-account secret.
const CredentialFileName = "service_account.json"

// Client queries a single fixed calendar.
type Client struct {
	svc        *calendar.Service
	calendarID string
}

// Bootstrap persists the service-account JSON under stateDir and builds a
// read-only calendar client from it. The secret comes from the environment
// and is the one dependency the panel cannot degrade around: an empty or
// malformed blob is an error the caller treats as fatal.
func Bootstrap(ctx context.Context, secret []byte, stateDir, calendarID string) (*Client, error) {
	if len(secret) == 0 {
		return nil, errors.New("gcal: credential secret is empty")
	}
	if !json.Valid(secret) {
		return nil, errors.New("gcal: credential secret is not valid JSON")
	}
	if calendarID == "" {
		return nil, errors.New("gcal: calendar ID is empty")
	}

	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return nil, fmt.Errorf("gcal: create state dir: %w", err)
	}
	credPath := filepath.Join(stateDir, CredentialFileName)
	if err := os.WriteFile(credPath, secret, 0o600); err != nil {
		return nil, fmt.Errorf("gcal: persist credential: %w", err)
	}

	svc, err := calendar.NewService(ctx,
		option.WithCredentialsFile(credPath),
		option.WithScopes(calendar.CalendarReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("gcal: build calendar service: %w", err)
	}

	log := applog.WithComponent("gcal")
	log.Info().
		Str("calendar_id", calendarID).
		Str("credential_path", credPath).
		Msg("calendar client ready")

	return &Client{svc: svc, calendarID: calendarID}, nil
}

// Name implements agenda.Source.
func (c *Client) Name() string {
	return "google:" + c.calendarID
}

// Events queries the calendar for single-instance-expanded events inside
// [from, to], ordered by start time by the service.
func (c *Client) Events(ctx context.Context, from, to time.Time) ([]model.Event, error) {
	res, err := c.svc.Events.List(c.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("gcal: list events: %w", err)
	}
	return convertEvents(c.calendarID, res.Items, from.Location()), nil
}

// convertEvents maps API items into the normalized event shape. An item with
// a date-time start is a timed event; one with only a date is all-day. Items
// with neither are dropped as malformed.
func convertEvents(calendarID string, items []*calendar.Event, loc *time.Location) []model.Event {
	log := applog.WithComponent("gcal")

	out := make([]model.Event, 0, len(items))
	for _, it := range items {
		if it == nil || it.Start == nil {
			continue
		}

		ev := model.Event{
			SourceID: calendarID,
			UID:      it.Id,
			Title:    it.Summary,
		}

		switch {
		case it.Start.DateTime != "":
			start, err := time.Parse(time.RFC3339, it.Start.DateTime)
			if err != nil {
				log.Warn().Err(err).Str("uid", it.Id).Msg("unparsable event start, skipping")
				continue
			}
			ev.Start = start.In(loc)
		case it.Start.Date != "":
			start, err := time.ParseInLocation("2006-01-02", it.Start.Date, loc)
			if err != nil {
				log.Warn().Err(err).Str("uid", it.Id).Msg("unparsable all-day date, skipping")
				continue
			}
			ev.AllDay = true
			ev.Start = start
			ev.RawDate = it.Start.Date
		default:
			continue
		}

		out = append(out, ev)
	}
	return out
}
