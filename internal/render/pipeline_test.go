package render

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silasgubi/painel/internal/collect"
	"github.com/silasgubi/painel/internal/config"
	"github.com/silasgubi/painel/internal/model"
)

type stubWeather struct{ text string }

func (s stubWeather) Fetch(context.Context) (string, error) { return s.text, nil }

type stubAgenda struct{ events []model.Event }

func (s stubAgenda) Name() string { return "stub" }

func (s stubAgenda) Events(context.Context, time.Time, time.Time) ([]model.Event, error) {
	return s.events, nil
}

type stubProber struct{ status model.NetworkStatus }

func (s stubProber) Probe(context.Context) model.NetworkStatus { return s.status }

type stubHoliday struct{ status model.HolidayStatus }

func (s stubHoliday) Status(time.Time) model.HolidayStatus { return s.status }

// Full pipeline with every source stubbed to deterministic values: the
// rendered document must contain the expected lines verbatim, in order.
func TestCollectAndRenderEndToEnd(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	now := time.Date(2026, time.March, 10, 14, 30, 0, 0, loc)

	src := collect.Sources{
		Weather: stubWeather{text: "São Paulo: 🌧 +18°C"},
		Agenda: stubAgenda{events: []model.Event{
			{Title: "Standup", Start: time.Date(2026, time.March, 10, 15, 0, 0, 0, loc)},
			{Start: time.Date(2026, time.March, 10, 19, 30, 0, 0, loc)},
		}},
		Network: stubProber{status: model.NetworkStatus{Kind: model.NetworkMeasured, DownloadMbps: 95, UploadMbps: 12}},
		Holiday: stubHoliday{status: model.HolidayStatus{
			Kind: model.NextHoliday,
			Name: "Tiradentes",
			Date: time.Date(2026, time.April, 21, 0, 0, 0, 0, loc),
		}},
	}

	snap := collect.Collect(context.Background(), now, src, collect.Options{})
	catalog := Catalog(config.DefaultControls(), config.WebhookConfig{
		BaseURL: "https://maker.ifttt.com/trigger",
	}, "key")

	out, err := Render("Quarto", snap, catalog)
	require.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, "Terça-feira, 10/03/2026 14:30")
	assert.Contains(t, page, "São Paulo: 🌧 +18°C")
	assert.Contains(t, page, "15:00 - Standup")
	assert.Contains(t, page, "19:30 - Sem título")
	assert.Contains(t, page, "Velocidade: 95 ↓ / 12 ↑")
	assert.Contains(t, page, "Sem feriado · próximo: Tiradentes (21/04)")
}
