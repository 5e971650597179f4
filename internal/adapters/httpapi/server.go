package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hoistlabs/hostgate/internal/domain"
	"github.com/hoistlabs/hostgate/internal/metrics"
	"github.com/hoistlabs/hostgate/internal/ports"
	"github.com/hoistlabs/hostgate/internal/proxy"
	"github.com/hoistlabs/hostgate/pkg/embed"
	"github.com/hoistlabs/hostgate/pkg/resolve"
)

// upstreamStreamPath is the research engine's WebSocket endpoint, appended
// to the resolved backend base URL.
const upstreamStreamPath = "/ws"

// Config holds the static parts of the HTTP surface.
type Config struct {
	// AppURL is the hosted application the embed loader points at.
	AppURL string

	// Build is the deployment's baked-in backend configuration, consulted
	// by endpoint resolution after overrides.
	Build resolve.BuildConfig
}

// Server exposes the gateway's HTTP surface: the embed loader script,
// endpoint resolution, override management, the WebSocket proxy, health and
// metrics.
type Server struct {
	cfg       Config
	overrides ports.OverrideRepository
	ws        *proxy.Proxy
	logger    ports.Logger

	// Cached override snapshot. Requests read this; the override API and
	// the file watcher refresh it.
	mu       sync.RWMutex
	override domain.Override
}

// NewServer creates the HTTP surface. Call LoadOverride before serving to
// prime the snapshot from disk.
func NewServer(cfg Config, overrides ports.OverrideRepository, ws *proxy.Proxy, logger ports.Logger) *Server {
	return &Server{
		cfg:       cfg,
		overrides: overrides,
		ws:        ws,
		logger:    logger,
	}
}

// LoadOverride refreshes the in-memory override snapshot from the
// repository. Safe for concurrent use; the watcher plugin calls this when
// the backing file changes out-of-band.
func (s *Server) LoadOverride(ctx context.Context) error {
	override, err := s.overrides.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.override = override
	s.mu.Unlock()

	if !override.IsEmpty() {
		s.logger.Info("override loaded", ports.String("url", override.URL))
	}
	return nil
}

func (s *Server) snapshot() domain.Override {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.override
}

// Handler builds the chi router for the gateway.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/embed.js", s.handleEmbedScript)
	r.Get("/ws", s.handleStream)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleConfig)
		r.Put("/override", s.handleSetOverride)
		r.Delete("/override", s.handleClearOverride)
	})

	return r
}

// environment assembles the resolution snapshot for a request. The UI may
// report its own page host via ?host=; absent that, the gateway's serving
// host stands in.
func (s *Server) environment(r *http.Request) resolve.Environment {
	query := r.URL.Query()

	host := query.Get("host")
	if host == "" {
		host = r.Host
	}

	storage := map[string]string{}
	if override := s.snapshot(); !override.IsEmpty() {
		storage[resolve.OverrideKey] = override.URL
	}

	return resolve.Environment{
		Host:    host,
		Query:   query,
		Storage: storage,
		Build:   s.cfg.Build,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleEmbedScript(w http.ResponseWriter, r *http.Request) {
	loader := embed.Loader{
		AppURL: s.cfg.AppURL,
		APIURL: s.snapshot().URL,
	}

	script, err := loader.Script()
	if err != nil {
		s.logger.Error("embed script render failed", ports.Err(err))
		http.Error(w, "embed loader unavailable", http.StatusInternalServerError)
		return
	}

	metrics.EmbedServes.Inc()

	// Overrides must take effect on the next page load, so the script is
	// never cacheable.
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	w.Write([]byte(script))
}

// configResponse is the endpoint-resolution answer handed to the UI.
type configResponse struct {
	Endpoint string `json:"endpoint"`
	Source   string `json:"source"`
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	purpose := resolve.Purpose(r.URL.Query().Get("purpose"))

	endpoint, source := resolve.ResolveSource(s.environment(r), purpose)
	metrics.Resolutions.WithLabelValues(string(source)).Inc()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(configResponse{Endpoint: endpoint, Source: string(source)}); err != nil {
		s.logger.Error("config encode failed", ports.Err(err))
	}
}

// overrideRequest is the body of PUT /api/override.
type overrideRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleSetOverride(w http.ResponseWriter, r *http.Request) {
	var body overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !validOverrideURL(body.URL) {
		http.Error(w, domain.ErrInvalidOverride.Error(), http.StatusBadRequest)
		return
	}

	override := domain.Override{
		URL:   body.URL,
		SetAt: time.Now().UTC(),
		SetBy: "api",
	}
	if err := s.overrides.Save(r.Context(), override); err != nil {
		s.logger.Error("override save failed", ports.Err(err))
		http.Error(w, "override not persisted", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.override = override
	s.mu.Unlock()

	s.logger.Info("override set", ports.String("url", override.URL))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearOverride(w http.ResponseWriter, r *http.Request) {
	if err := s.overrides.Clear(r.Context()); err != nil {
		s.logger.Error("override clear failed", ports.Err(err))
		http.Error(w, "override not cleared", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.override = domain.Override{}
	s.mu.Unlock()

	s.logger.Info("override cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	purpose := resolve.Purpose(r.URL.Query().Get("purpose"))

	endpoint, source := resolve.ResolveSource(s.environment(r), purpose)
	metrics.Resolutions.WithLabelValues(string(source)).Inc()

	upstream := resolve.WebSocketBase(endpoint) + upstreamStreamPath
	s.ws.Handle(w, r, upstream)
}

// validOverrideURL accepts absolute http(s) URLs only.
func validOverrideURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
