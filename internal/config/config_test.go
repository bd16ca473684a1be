package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.Equal(t, "google", cfg.Agenda.Provider)
	assert.NotEmpty(t, cfg.Controls)
}

func TestNormalizeFillsDefaults(t *testing.T) {
	var cfg Config
	cfg.Normalize()

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "./index.html", cfg.OutputPath)
	assert.Equal(t, "*/15 * * * *", cfg.RefreshCron)
	assert.Equal(t, 15, cfg.FetchTimeoutSec)
	assert.Equal(t, 60, cfg.ProbeTimeoutSec)
	assert.Equal(t, "google", cfg.Agenda.Provider)
	assert.Equal(t, "primary", cfg.Agenda.Google.CalendarID)
	assert.Equal(t, "https://wttr.in/Sao+Paulo?format=3", cfg.Weather.URL)
	assert.NotEmpty(t, cfg.Controls)
}

func TestNormalizeRejectsUnknownProvider(t *testing.T) {
	cfg := Config{Agenda: AgendaConfig{Provider: "carrier-pigeon"}}
	cfg.Normalize()
	assert.Equal(t, "google", cfg.Agenda.Provider)
}

func TestValidateICSNeedsURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Agenda.Provider = "ics"
	cfg.Agenda.ICS.URL = ""
	assert.Error(t, cfg.Validate())

	cfg.Agenda.ICS.URL = "https://example.com/cal.ics"
	assert.NoError(t, cfg.Validate())
}

func TestValidateControls(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Controls = []ControlConfig{{ID: "x", Group: "garage", Action: "on", Event: "e"}}
	assert.Error(t, cfg.Validate())

	cfg.Controls = []ControlConfig{{ID: "x", Group: "lights", Action: "toggle", Event: "e"}}
	assert.Error(t, cfg.Validate())

	cfg.Controls = []ControlConfig{{ID: "x", Group: "lights", Action: "on"}}
	assert.Error(t, cfg.Validate())

	cfg.Controls = []ControlConfig{{ID: "x", Group: "lights", Action: "on", Event: "e"}}
	assert.NoError(t, cfg.Validate())
}

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "painel", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Quarto", cfg.Title)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	orig := DefaultConfig()
	orig.Title = "Sala"
	orig.Agenda.Provider = "ics"
	orig.Agenda.ICS.URL = "https://example.com/cal.ics"
	require.NoError(t, Save(path, orig))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sala", loaded.Title)
	assert.Equal(t, "ics", loaded.Agenda.Provider)
	assert.Equal(t, "https://example.com/cal.ics", loaded.Agenda.ICS.URL)
}

func TestLoadPartialConfigGetsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Escritório\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Escritório", cfg.Title)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.NotEmpty(t, cfg.Controls)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: [unclosed\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}
