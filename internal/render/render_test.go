package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silasgubi/painel/internal/config"
	"github.com/silasgubi/painel/internal/model"
)

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		GeneratedAt:  time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC),
		DateLabel:    "10/03/2026",
		TimeLabel:    "14:30",
		WeekdayLabel: "Terça-feira",
		Weather:      model.WeatherStatus{Text: "São Paulo: ⛅ +24°C", Available: true},
		Agenda: model.AgendaStatus{Items: []model.AgendaItem{
			{TimeLabel: "09:00", Title: "Reunião"},
			{TimeLabel: "16:00", Title: "Dentista"},
		}},
		Network: model.NetworkStatus{Kind: model.NetworkMeasured, DownloadMbps: 120, UploadMbps: 40},
		Holiday: model.HolidayStatus{Kind: model.HolidayToday, Name: "Tiradentes"},
	}
}

func sampleCatalog() []model.Control {
	return Catalog(config.DefaultControls(), config.WebhookConfig{
		BaseURL: "https://maker.ifttt.com/trigger",
	}, "testkey")
}

func TestRenderIsDeterministic(t *testing.T) {
	snap := sampleSnapshot()
	catalog := sampleCatalog()

	a, err := Render("Quarto", snap, catalog)
	require.NoError(t, err)
	b, err := Render("Quarto", snap, catalog)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(a, b))
}

func TestRenderContainsSnapshotLines(t *testing.T) {
	out, err := Render("Quarto", sampleSnapshot(), sampleCatalog())
	require.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, "Terça-feira, 10/03/2026 14:30")
	assert.Contains(t, page, "São Paulo: ⛅ +24°C")
	assert.Contains(t, page, "Velocidade: 120 ↓ / 40 ↑")
	assert.Contains(t, page, "Feriado: Tiradentes")

	// Agenda lines in chronological order.
	first := bytes.Index(out, []byte("09:00 - Reunião"))
	second := bytes.Index(out, []byte("16:00 - Dentista"))
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestRenderGroupSections(t *testing.T) {
	out, err := Render("Quarto", sampleSnapshot(), sampleCatalog())
	require.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, "<h3>Luzes</h3>")
	assert.Contains(t, page, "<h3>Dispositivos</h3>")
	assert.Contains(t, page, "<h3>Cenas</h3>")
	assert.Contains(t, page, "ligar_luz_quarto/with/key/testkey")
	assert.Contains(t, page, "fa-snowflake")
}

func TestRenderEmptyAgendaSentinel(t *testing.T) {
	snap := sampleSnapshot()
	snap.Agenda = model.AgendaStatus{}

	out, err := Render("Quarto", snap, sampleCatalog())
	require.NoError(t, err)

	assert.Contains(t, string(out), NoCommitments)
	assert.NotContains(t, string(out), AgendaUnavailable)
}

func TestRenderFailedAgendaSentinel(t *testing.T) {
	snap := sampleSnapshot()
	snap.Agenda = model.AgendaStatus{Failed: true}

	out, err := Render("Quarto", snap, sampleCatalog())
	require.NoError(t, err)

	assert.Contains(t, string(out), AgendaUnavailable)
	assert.NotContains(t, string(out), NoCommitments)
}

func TestRenderAllSourcesDegraded(t *testing.T) {
	snap := model.Snapshot{
		DateLabel:    "10/03/2026",
		TimeLabel:    "14:30",
		WeekdayLabel: "Terça-feira",
		Agenda:       model.AgendaStatus{Failed: true},
	}

	out, err := Render("Quarto", snap, sampleCatalog())
	require.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, WeatherUnavailable)
	assert.Contains(t, page, AgendaUnavailable)
	assert.Contains(t, page, NetworkOffline)
	assert.Contains(t, page, HolidayUnknown)
	assert.Contains(t, page, "</html>")
}

func TestRenderEscapesExternalText(t *testing.T) {
	snap := sampleSnapshot()
	snap.Agenda = model.AgendaStatus{Items: []model.AgendaItem{
		{TimeLabel: "09:00", Title: `<script>alert("x")</script>`},
	}}
	snap.Weather = model.WeatherStatus{Text: `<img src=x onerror=alert(1)>`, Available: true}

	out, err := Render("Quarto", snap, sampleCatalog())
	require.NoError(t, err)
	page := string(out)

	assert.NotContains(t, page, `<script>alert("x")</script>`)
	assert.NotContains(t, page, `<img src=x`)
	assert.Contains(t, page, "&lt;script&gt;")
}

func TestHolidayLines(t *testing.T) {
	assert.Equal(t, "Feriado: Natal", holidayLine(model.HolidayStatus{Kind: model.HolidayToday, Name: "Natal"}))
	assert.Equal(t,
		"Sem feriado · próximo: Tiradentes (21/04)",
		holidayLine(model.HolidayStatus{
			Kind: model.NextHoliday,
			Name: "Tiradentes",
			Date: time.Date(2026, time.April, 21, 0, 0, 0, 0, time.UTC),
		}))
	assert.Equal(t, NoHolidayRemaining, holidayLine(model.HolidayStatus{Kind: model.NoneRemaining}))
	assert.Equal(t, HolidayUnknown, holidayLine(model.HolidayStatus{Kind: model.HolidayUnknown}))
}

func TestNetworkLines(t *testing.T) {
	assert.Equal(t, NetworkOffline, networkLine(model.NetworkStatus{Kind: model.NetworkOffline}))
	assert.Equal(t, "Velocidade: 120 ↓ / 40 ↑",
		networkLine(model.NetworkStatus{Kind: model.NetworkMeasured, DownloadMbps: 120, UploadMbps: 40}))
	assert.Equal(t, "Velocidade: 120 ↓ / 40 ↑ · 12 ms",
		networkLine(model.NetworkStatus{Kind: model.NetworkMeasured, DownloadMbps: 120, UploadMbps: 40, LatencyMs: 12}))
}
