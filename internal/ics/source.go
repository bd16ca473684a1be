// Package ics is the ICS-subscription agenda provider: it fetches one
// iCalendar feed, parses its VEVENTs and expands recurrences into the
// requested day window. It needs no credentials, which makes it the panel's
// alternative to the Google provider.
package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	applog "github.com/silasgubi/painel/internal/log"
	"github.com/silasgubi/painel/internal/model"
)

// maxFeedBytes caps the feed read; personal calendar feeds are far smaller.
const maxFeedBytes = 8 << 20

// Source is a single ICS subscription.
type Source struct {
	id     string
	url    string
	client *http.Client
}

// NewSource creates a Source with a bounded HTTP client.
func NewSource(id, url string, timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if id == "" {
		id = url
	}
	return &Source{
		id:     id,
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Name implements agenda.Source.
func (s *Source) Name() string {
	return "ics:" + s.id
}

// Events fetches the feed and returns the expanded occurrences that overlap
// [from, to], normalized to from's location.
func (s *Source) Events(ctx context.Context, from, to time.Time) ([]model.Event, error) {
	body, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	parsed, err := parseCalendar(s.id, body)
	if err != nil {
		return nil, err
	}

	return expandWindow(parsed, from, to, from.Location()), nil
}

func (s *Source) fetch(ctx context.Context) ([]byte, error) {
	log := applog.WithComponent("ics")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ics: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, errors.New("ics: empty feed body")
	}

	log.Debug().Str("id", s.id).Int("bytes", len(body)).Msg("feed fetched")
	return body, nil
}
