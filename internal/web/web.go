// Package web serves the generated panel in daemon mode: the page itself at
// the root, a health endpoint, and the last snapshot as JSON.
package web

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/silasgubi/painel/internal/config"
	applog "github.com/silasgubi/painel/internal/log"
	"github.com/silasgubi/painel/internal/model"
)

// Server exposes the rendered page and the snapshot API.
type Server struct {
	cfg *config.Config
	mux *http.ServeMux

	mu       sync.RWMutex
	lastSnap *model.Snapshot
	lastAt   time.Time
}

// NewServer constructs a Server around the given configuration.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// SetSnapshot records the latest collected snapshot for /api/snapshot.
func (s *Server) SetSnapshot(snap model.Snapshot) {
	s.mu.Lock()
	s.lastSnap = &snap
	s.lastAt = time.Now()
	s.mu.Unlock()
}

// Handler returns the underlying http.Handler, wrapped with basic auth when
// configured.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		log := applog.WithComponent("web")
		log.Info().Str("listen", s.cfg.Listen).Msg("HTTP basic auth enabled")
		return s.basicAuthMiddleware(h)
	}
	return h
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Empty username or password counts as disabled.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Painel", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/snapshot", s.handleSnapshot)
	s.mux.HandleFunc("/", s.handlePage)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handlePage serves the generated document from the output path.
// http.ServeFile maps a missing file to 404, which is correct before the
// first generation completes.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.cfg.OutputPath)
}

// snapshotResponse is the JSON shape of /api/snapshot.
type snapshotResponse struct {
	GeneratedAt  time.Time           `json:"generated_at"`
	WeekdayLabel string              `json:"weekday"`
	DateLabel    string              `json:"date"`
	TimeLabel    string              `json:"time"`
	Weather      model.WeatherStatus `json:"weather"`
	Agenda       model.AgendaStatus  `json:"agenda"`
	Network      model.NetworkStatus `json:"network"`
	Holiday      model.HolidayStatus `json:"holiday"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	snap := s.lastSnap
	at := s.lastAt
	s.mu.RUnlock()

	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "no snapshot collected yet")
		return
	}

	writeJSON(w, http.StatusOK, snapshotResponse{
		GeneratedAt:  snap.GeneratedAt,
		WeekdayLabel: snap.WeekdayLabel,
		DateLabel:    snap.DateLabel,
		TimeLabel:    snap.TimeLabel,
		Weather:      snap.Weather,
		Agenda:       snap.Agenda,
		Network:      snap.Network,
		Holiday:      snap.Holiday,
		UpdatedAt:    at,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log := applog.WithComponent("web")
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
