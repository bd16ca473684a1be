package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GoogleConfig selects a Google Calendar agenda source.
type GoogleConfig struct {
	// CalendarID is the calendar to query (e.g. "primary").
	CalendarID string `yaml:"calendar_id" json:"calendar_id"`
	// CredentialsEnv names the environment variable holding the
	// service-account JSON blob.
	CredentialsEnv string `yaml:"credentials_env" json:"credentials_env"`
}

// ICSConfig selects an ICS-subscription agenda source.
type ICSConfig struct {
	URL string `yaml:"url" json:"url"`
	// ID is an internal identifier used for logging.
	ID string `yaml:"id" json:"id"`
}

// AgendaConfig selects and parameterizes the agenda provider.
type AgendaConfig struct {
	// Provider is "google" or "ics".
	Provider string       `yaml:"provider" json:"provider"`
	Google   GoogleConfig `yaml:"google" json:"google"`
	ICS      ICSConfig    `yaml:"ics" json:"ics"`
}

// WeatherConfig parameterizes the weather text fetch.
type WeatherConfig struct {
	// URL is a text-summary endpoint; the response body is used verbatim
	// after trimming.
	URL string `yaml:"url" json:"url"`
}

// NetworkConfig parameterizes the throughput/latency probe.
type NetworkConfig struct {
	// Enabled turns the probe off entirely (renders the offline sentinel).
	Enabled bool `yaml:"enabled" json:"enabled"`
	// PingHost, if set, is probed for ICMP latency after a successful
	// throughput run.
	PingHost string `yaml:"ping_host" json:"ping_host"`
}

// HolidayConfig selects the holiday reference calendar.
type HolidayConfig struct {
	Country     string `yaml:"country" json:"country"`
	Subdivision string `yaml:"subdivision" json:"subdivision"`
}

// ControlConfig is one webhook button on the panel. When URL is empty it is
// derived from the top-level webhook settings and Event.
type ControlConfig struct {
	ID     string `yaml:"id" json:"id"`
	Label  string `yaml:"label" json:"label"`
	Icon   string `yaml:"icon" json:"icon"`
	Group  string `yaml:"group" json:"group"`   // lights | devices | scenes
	Action string `yaml:"action" json:"action"` // on | off | scene
	Event  string `yaml:"event" json:"event"`
	URL    string `yaml:"url,omitempty" json:"url,omitempty"`
}

// WebhookConfig holds the IFTTT-style trigger settings shared by controls
// that do not carry an explicit URL. The final URL is
// <base_url>/<event>/with/key/<key>.
type WebhookConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	// KeyEnv names the environment variable holding the maker key.
	KeyEnv string `yaml:"key_env" json:"key_env"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for daemon mode.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for daemon mode.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone used for all display formatting.
	Timezone string `yaml:"timezone" json:"timezone"`

	// Title is the panel heading (e.g. the room name).
	Title string `yaml:"title" json:"title"`

	// OutputPath is where the rendered HTML document is written.
	OutputPath string `yaml:"output_path" json:"output_path"`

	// StateDir holds runtime artifacts (persisted credential, preview).
	StateDir string `yaml:"state_dir" json:"state_dir"`

	// RefreshCron is a cron-style schedule (e.g. "*/15 * * * *") used for
	// periodic regeneration in daemon mode.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// FetchTimeoutSec bounds the weather and agenda fetches.
	FetchTimeoutSec int `yaml:"fetch_timeout_sec" json:"fetch_timeout_sec"`

	// ProbeTimeoutSec bounds the network throughput probe.
	ProbeTimeoutSec int `yaml:"probe_timeout_sec" json:"probe_timeout_sec"`

	Agenda  AgendaConfig  `yaml:"agenda" json:"agenda"`
	Weather WeatherConfig `yaml:"weather" json:"weather"`
	Network NetworkConfig `yaml:"network" json:"network"`
	Holiday HolidayConfig `yaml:"holiday" json:"holiday"`

	Webhook  WebhookConfig   `yaml:"webhook" json:"webhook"`
	Controls []ControlConfig `yaml:"controls" json:"controls"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// daemon endpoints except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration mirroring the
// original bedroom panel.
func DefaultConfig() *Config {
	return &Config{
		Listen:          "127.0.0.1:8080",
		Timezone:        "America/Sao_Paulo",
		Title:           "Quarto",
		OutputPath:      "./index.html",
		StateDir:        "./var",
		RefreshCron:     "*/15 * * * *",
		FetchTimeoutSec: 15,
		ProbeTimeoutSec: 60,
		Agenda: AgendaConfig{
			Provider: "google",
			Google: GoogleConfig{
				CalendarID:     "primary",
				CredentialsEnv: "GOOGLE_CREDENTIALS",
			},
		},
		Weather: WeatherConfig{
			URL: "https://wttr.in/Sao+Paulo?format=3",
		},
		Network: NetworkConfig{
			Enabled: true,
		},
		Holiday: HolidayConfig{
			Country:     "BR",
			Subdivision: "SP",
		},
		Webhook: WebhookConfig{
			BaseURL: "https://maker.ifttt.com/trigger",
			KeyEnv:  "IFTTT_KEY",
		},
		Controls:  DefaultControls(),
		BasicAuth: nil,
	}
}

// DefaultControls is the built-in button catalog of the original panel.
func DefaultControls() []ControlConfig {
	return []ControlConfig{
		{ID: "luz-quarto-on", Label: "Luz do quarto", Icon: "fas fa-lightbulb", Group: "lights", Action: "on", Event: "ligar_luz_quarto"},
		{ID: "luz-quarto-off", Label: "Luz do quarto", Icon: "far fa-lightbulb", Group: "lights", Action: "off", Event: "desligar_luz_quarto"},
		{ID: "abajur-1-on", Label: "Abajur 1", Icon: "fas fa-bed", Group: "lights", Action: "on", Event: "ligar_abajur_1"},
		{ID: "abajur-1-off", Label: "Abajur 1", Icon: "far fa-bed", Group: "lights", Action: "off", Event: "desligar_abajur_1"},
		{ID: "abajur-2-on", Label: "Abajur 2", Icon: "fas fa-bed", Group: "lights", Action: "on", Event: "ligar_abajur_2"},
		{ID: "abajur-2-off", Label: "Abajur 2", Icon: "far fa-bed", Group: "lights", Action: "off", Event: "desligar_abajur_2"},
		{ID: "luz-cama-on", Label: "Luz da cama", Icon: "fas fa-lightbulb", Group: "lights", Action: "on", Event: "ligar_luz_cama"},
		{ID: "luz-cama-off", Label: "Luz da cama", Icon: "far fa-lightbulb", Group: "lights", Action: "off", Event: "desligar_luz_cama"},
		{ID: "tomada-ipad-on", Label: "Tomada iPad", Icon: "fas fa-plug", Group: "devices", Action: "on", Event: "ligar_tomada_ipad"},
		{ID: "tomada-ipad-off", Label: "Tomada iPad", Icon: "far fa-plug", Group: "devices", Action: "off", Event: "desligar_tomada_ipad"},
		{ID: "projetor-on", Label: "Projetor", Icon: "fas fa-video", Group: "devices", Action: "on", Event: "ligar_projetor"},
		{ID: "projetor-off", Label: "Projetor", Icon: "far fa-video", Group: "devices", Action: "off", Event: "desligar_projetor"},
		{ID: "ar-on", Label: "Ar-condicionado", Icon: "fas fa-snowflake", Group: "devices", Action: "on", Event: "ligar_ar"},
		{ID: "ar-off", Label: "Ar-condicionado", Icon: "far fa-snowflake", Group: "devices", Action: "off", Event: "desligar_ar"},
		{ID: "cena-vermelhas", Label: "Luzes vermelhas", Icon: "fas fa-heart", Group: "scenes", Action: "scene", Event: "cena_luzes_vermelhas"},
		{ID: "cena-grafite", Label: "Luzes grafite", Icon: "fas fa-square", Group: "scenes", Action: "scene", Event: "cena_luzes_grafite"},
		{ID: "cena-aconchegante", Label: "Aconchegante", Icon: "fas fa-home", Group: "scenes", Action: "scene", Event: "cena_aconchegante"},
		{ID: "cena-banheiro", Label: "Banheiro vermelho", Icon: "fas fa-bath", Group: "scenes", Action: "scene", Event: "cena_luzes_vermelhas_banheiro"},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Timezone == "" {
		c.Timezone = "America/Sao_Paulo"
	}
	if c.Title == "" {
		c.Title = "Quarto"
	}
	if c.OutputPath == "" {
		c.OutputPath = "./index.html"
	}
	if c.StateDir == "" {
		c.StateDir = "./var"
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "*/15 * * * *"
	}
	if c.FetchTimeoutSec <= 0 {
		c.FetchTimeoutSec = 15
	}
	if c.ProbeTimeoutSec <= 0 {
		c.ProbeTimeoutSec = 60
	}

	switch c.Agenda.Provider {
	case "google", "ics":
		// ok
	default:
		c.Agenda.Provider = "google"
	}
	if c.Agenda.Google.CalendarID == "" {
		c.Agenda.Google.CalendarID = "primary"
	}
	if c.Agenda.Google.CredentialsEnv == "" {
		c.Agenda.Google.CredentialsEnv = "GOOGLE_CREDENTIALS"
	}

	if c.Weather.URL == "" {
		c.Weather.URL = "https://wttr.in/Sao+Paulo?format=3"
	}
	if c.Holiday.Country == "" {
		c.Holiday.Country = "BR"
	}
	if c.Webhook.BaseURL == "" {
		c.Webhook.BaseURL = "https://maker.ifttt.com/trigger"
	}
	if c.Webhook.KeyEnv == "" {
		c.Webhook.KeyEnv = "IFTTT_KEY"
	}
	if c.Controls == nil {
		c.Controls = DefaultControls()
	}
}

// Validate reports configuration errors that cannot be repaired by
// Normalize. These are fatal at startup.
func (c *Config) Validate() error {
	if c.Agenda.Provider == "ics" && c.Agenda.ICS.URL == "" {
		return errors.New("agenda provider is ics but ics.url is empty")
	}
	for i, ctl := range c.Controls {
		switch ctl.Group {
		case "lights", "devices", "scenes":
		default:
			return fmt.Errorf("controls[%d] (%s): unknown group %q", i, ctl.ID, ctl.Group)
		}
		switch ctl.Action {
		case "on", "off", "scene":
		default:
			return fmt.Errorf("controls[%d] (%s): unknown action %q", i, ctl.ID, ctl.Action)
		}
		if ctl.URL == "" && ctl.Event == "" {
			return fmt.Errorf("controls[%d] (%s): needs either url or event", i, ctl.ID)
		}
	}
	return nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist: create parent directory if needed, write a
//     default config with 0600 perms, and return the default config.
//   - If the file exists: read YAML, unmarshal, normalize defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path atomically with
// 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".painel-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
