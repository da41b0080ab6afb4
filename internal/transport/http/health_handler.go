package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler serves liveness, readiness and version endpoints.
type HealthHandler struct {
	version   string
	startedAt time.Time
	logger    *slog.Logger

	// readiness gates; each reports whether a subsystem can serve
	checks map[string]func() bool
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startedAt: time.Now(),
		logger:    logger.With(slog.String("handler", "health")),
		checks:    make(map[string]func() bool),
	}
}

// AddReadinessCheck registers a named readiness gate.
func (h *HealthHandler) AddReadinessCheck(name string, check func() bool) {
	h.checks[name] = check
}

// Ping handles GET /api/ping.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"message": "pong"})
}

// HealthCheck handles GET /api/health.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "healthy",
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// LivenessCheck handles GET /api/health/live.
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "alive"})
}

// ReadinessCheck handles GET /api/health/ready.
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	results := make(map[string]bool, len(h.checks))
	ready := true
	for name, check := range h.checks {
		ok := check()
		results[name] = ok
		ready = ready && ok
	}

	status := "ready"
	if !ready {
		status = "not_ready"
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, map[string]interface{}{
		"status": status,
		"checks": results,
	})
}

// Version handles GET /api/version.
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"version": h.version})
}
