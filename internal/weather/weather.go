// Package weather fetches a one-line weather summary from a text endpoint
// such as wttr.in. The body is opaque: it is trimmed and length-capped but
// never parsed.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	applog "github.com/silasgubi/painel/internal/log"
)

// maxBodyBytes caps how much of the response is read; a summary line is a
// few dozen bytes, anything larger is a misbehaving endpoint.
const maxBodyBytes = 4096

// Fetcher issues the single outbound weather request.
type Fetcher struct {
	client *http.Client
	url    string
}

// NewFetcher creates a Fetcher for the given endpoint with a bounded client.
func NewFetcher(url string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// Fetch performs one GET and returns the trimmed summary text. Transport
// errors, timeouts and non-2xx statuses are returned as errors; the caller
// substitutes the unavailable sentinel.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	log := applog.WithComponent("weather")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("weather: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", errors.New("weather: empty response body")
	}

	log.Debug().Str("url", f.url).Int("bytes", len(body)).Msg("weather fetched")
	return text, nil
}
