package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"wifi_locator/core-go/internal/discovery"
	"wifi_locator/core-go/internal/metrics"
)

type scanner interface {
	Discover(ctx context.Context, req discovery.Request) discovery.Result
	Adapters() []discovery.AdapterInfo
	Ready() bool
	GOOS() string
}

type Handler struct {
	log     zerolog.Logger
	scans   scanner
	metrics *metrics.Metrics
	// scanRuntime is the longest scan the service may run.
	scanRuntime time.Duration
}

// requestSlack covers JSON encoding and logging after the scan deadline.
const requestSlack = 10 * time.Second

func NewHandler(log zerolog.Logger, svc *discovery.Service, m *metrics.Metrics) *Handler {
	h := &Handler{log: log, metrics: m}
	if svc != nil {
		h.scans = svc
		h.scanRuntime = svc.MaxRuntime()
	}
	return h
}

func (h *Handler) requestTimeout() time.Duration {
	if h.scanRuntime <= 0 {
		return time.Minute
	}
	return h.scanRuntime + requestSlack
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// The scan enforces its own deadline; the router only backstops it.
	r.Use(middleware.Timeout(h.requestTimeout()))
	r.Use(h.accessLog)

	// Health
	r.Get("/healthz", h.handleHealthz)
	r.Get("/readyz", h.handleReadyZ)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	// API
	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Post("/scan", h.handleScan)
			r.Get("/adapters", h.handleListAdapters)
		})
	})

	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		h.metrics.ObserveHTTPRequest(r.Method, route, ww.Status(), duration)

		h.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Int64("duration_ms", duration.Milliseconds()).
			Msg("http_request")
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, msg string, details map[string]any) {
	resp := map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
		},
	}
	if details != nil {
		resp["error"].(map[string]any)["details"] = details
	}
	h.writeJSON(w, status, resp)
}

func decodeJSONStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("unexpected extra data after JSON body")
		}
		return err
	}
	return nil
}

func (h *Handler) ensureScanner(w http.ResponseWriter) bool {
	if h.scans == nil {
		h.writeError(w, http.StatusServiceUnavailable, "scanner_unavailable", "scanner not configured", nil)
		return false
	}
	return true
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleReadyZ(w http.ResponseWriter, r *http.Request) {
	if !h.ensureScanner(w) {
		return
	}
	if !h.scans.Ready() {
		h.writeError(w, http.StatusServiceUnavailable, "no_adapters", "no enabled adapter applies to this platform", map[string]any{"goos": h.scans.GOOS()})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"ready": true})
}

type scanRequest struct {
	Building string   `json:"building"`
	Room     string   `json:"room"`
	Preset   string   `json:"preset,omitempty"`
	Only     []string `json:"only,omitempty"`
}

func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}
	if !discovery.IsKnownPreset(req.Preset) {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "unknown scan preset", map[string]any{
			"preset":  req.Preset,
			"allowed": []string{discovery.ScanPresetFast, discovery.ScanPresetNormal, discovery.ScanPresetDeep},
		})
		return
	}
	if unknown := discovery.ValidateAdapterNames(req.Only); len(unknown) > 0 {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "unknown adapters", map[string]any{"adapters": unknown})
		return
	}

	if !h.ensureScanner(w) {
		return
	}

	res := h.scans.Discover(r.Context(), discovery.Request{
		Location: discovery.Location{Building: req.Building, Room: req.Room},
		Preset:   req.Preset,
		Only:     req.Only,
	})

	// Exhaustion is a normal outcome; the diagnostic is the payload.
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleListAdapters(w http.ResponseWriter, r *http.Request) {
	if !h.ensureScanner(w) {
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"goos":     h.scans.GOOS(),
		"adapters": h.scans.Adapters(),
	})
}
