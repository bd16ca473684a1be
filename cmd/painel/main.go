package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/silasgubi/painel/internal/capture"
	"github.com/silasgubi/painel/internal/collect"
	"github.com/silasgubi/painel/internal/config"
	"github.com/silasgubi/painel/internal/gcal"
	"github.com/silasgubi/painel/internal/holiday"
	"github.com/silasgubi/painel/internal/ics"
	applog "github.com/silasgubi/painel/internal/log"
	"github.com/silasgubi/painel/internal/model"
	"github.com/silasgubi/painel/internal/netprobe"
	"github.com/silasgubi/painel/internal/render"
	"github.com/silasgubi/painel/internal/weather"
	"github.com/silasgubi/painel/internal/web"
	"github.com/silasgubi/painel/internal/writer"
)

type flagConfig struct {
	configPath string
	listen     string
	once       bool
	capturePNG bool
}

func main() {
	applog.Configure(applog.Config{Service: "painel"})
	log := applog.WithComponent("main")

	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		log.Error().Err(err).Str("config_path", flags.configPath).Msg("failed to load config")
		os.Exit(1)
	}
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if err := conf.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid config")
		os.Exit(1)
	}

	log.Info().
		Str("listen", conf.Listen).
		Str("timezone", conf.Timezone).
		Str("output_path", conf.OutputPath).
		Str("refresh", conf.RefreshCron).
		Str("agenda_provider", conf.Agenda.Provider).
		Bool("once", flags.once).
		Msg("effective config")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("signal received, shutting down")
		cancel()
	}()

	app, err := newApp(ctx, conf)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}

	if flags.once {
		if err := app.generate(ctx); err != nil {
			log.Error().Err(err).Msg("generation failed")
			os.Exit(1)
		}
		if flags.capturePNG {
			if err := app.capturePreview(ctx); err != nil {
				log.Error().Err(err).Msg("preview capture failed")
				os.Exit(1)
			}
		}
		return
	}

	app.runDaemon(ctx, flags.capturePNG)
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/painel/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Run one collect+render+write cycle and exit")
	flag.BoolVar(&cfg.capturePNG, "capture", false, "Also capture a PNG preview of the rendered page")

	flag.Parse()

	return cfg
}

// app wires the configured sources, catalog and servers for one process.
type app struct {
	cfg     *config.Config
	loc     *time.Location
	sources collect.Sources
	catalog []model.Control
	webSrv  *web.Server
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := applog.WithComponent("main")

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.Timezone).Msg("unknown timezone, falling back to local")
		loc = time.Local
	}

	src := collect.Sources{
		Weather: weather.NewFetcher(cfg.Weather.URL, time.Duration(cfg.FetchTimeoutSec)*time.Second),
	}

	switch cfg.Agenda.Provider {
	case "google":
		secret := os.Getenv(cfg.Agenda.Google.CredentialsEnv)
		if secret == "" {
			return nil, fmt.Errorf("calendar credential env %s is not set", cfg.Agenda.Google.CredentialsEnv)
		}
		client, err := gcal.Bootstrap(ctx, []byte(secret), cfg.StateDir, cfg.Agenda.Google.CalendarID)
		if err != nil {
			return nil, err
		}
		src.Agenda = client
	case "ics":
		src.Agenda = ics.NewSource(cfg.Agenda.ICS.ID, cfg.Agenda.ICS.URL, time.Duration(cfg.FetchTimeoutSec)*time.Second)
	}

	if cfg.Network.Enabled {
		src.Network = netprobe.NewProber(cfg.Network.PingHost)
	}

	if cal, err := holiday.New(cfg.Holiday.Country, cfg.Holiday.Subdivision); err != nil {
		log.Warn().Err(err).Msg("holiday calendar unavailable")
	} else {
		src.Holiday = cal
	}

	key := os.Getenv(cfg.Webhook.KeyEnv)
	if key == "" {
		log.Warn().Str("env", cfg.Webhook.KeyEnv).Msg("webhook key not set, derived control URLs will be inert")
	}

	return &app{
		cfg:     cfg,
		loc:     loc,
		sources: src,
		catalog: render.Catalog(cfg.Controls, cfg.Webhook, key),
	}, nil
}

// generate runs one collect → render → write cycle.
func (a *app) generate(ctx context.Context) error {
	now := time.Now().In(a.loc)

	snap := collect.Collect(ctx, now, a.sources, collect.Options{
		FetchTimeout: time.Duration(a.cfg.FetchTimeoutSec) * time.Second,
		ProbeTimeout: time.Duration(a.cfg.ProbeTimeoutSec) * time.Second,
	})

	page, err := render.Render(a.cfg.Title, snap, a.catalog)
	if err != nil {
		return err
	}

	if err := writer.Write(a.cfg.OutputPath, page); err != nil {
		return err
	}

	if a.webSrv != nil {
		a.webSrv.SetSnapshot(snap)
	}
	return nil
}

// capturePreview screenshots the written document into the state dir.
func (a *app) capturePreview(ctx context.Context) error {
	abs, err := filepath.Abs(a.cfg.OutputPath)
	if err != nil {
		return err
	}
	return capture.PanelPNG(ctx, capture.Options{
		URL:        "file://" + abs,
		OutputPath: filepath.Join(a.cfg.StateDir, "preview.png"),
	})
}

// runDaemon regenerates on the configured cron schedule and serves the page
// over HTTP until the context is canceled.
func (a *app) runDaemon(ctx context.Context, capturePNG bool) {
	log := applog.WithComponent("main")

	a.webSrv = web.NewServer(a.cfg)

	regenerate := func() {
		if err := a.generate(ctx); err != nil {
			log.Error().Err(err).Msg("scheduled generation failed")
			return
		}
		if capturePNG {
			if err := a.capturePreview(ctx); err != nil {
				log.Error().Err(err).Msg("preview capture failed")
			}
		}
	}

	// First page before the first tick.
	regenerate()

	// A slow external service must skip a tick, not stack runs.
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(a.cfg.RefreshCron, regenerate); err != nil {
		log.Error().Err(err).Str("refresh", a.cfg.RefreshCron).Msg("invalid refresh schedule")
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	srv := &http.Server{
		Addr:              a.cfg.Listen,
		Handler:           a.webSrv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("listen", "http://"+a.cfg.Listen).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}
	log.Info().Msg("painel exiting")
}
