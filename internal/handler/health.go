package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

// Pinger is a dependency that can report its reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status string            `json:"status"` // ok, degraded
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler reports process and dependency health
type HealthHandler struct {
	required map[string]Pinger
	optional map[string]Pinger
	timeout  time.Duration
}

// NewHealthHandler creates a health handler. A failing required
// dependency answers 503; a failing optional one only marks the
// status degraded.
func NewHealthHandler(required, optional map[string]Pinger) *HealthHandler {
	return &HealthHandler{required: required, optional: optional, timeout: 2 * time.Second}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := HealthStatus{Status: "ok", Checks: map[string]string{}}
	code := http.StatusOK

	for _, name := range sortedNames(h.required) {
		if err := h.required[name].Ping(ctx); err != nil {
			slog.Warn("health check failed", slog.String("dependency", name), slog.String("error", err.Error()))
			status.Checks[name] = "unavailable"
			status.Status = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[name] = "ok"
	}
	for _, name := range sortedNames(h.optional) {
		if err := h.optional[name].Ping(ctx); err != nil {
			slog.Warn("health check failed", slog.String("dependency", name), slog.String("error", err.Error()))
			status.Checks[name] = "unavailable"
			if code == http.StatusOK {
				status.Status = "degraded"
			}
			continue
		}
		status.Checks[name] = "ok"
	}

	WriteJSON(w, code, status)
}

func sortedNames(m map[string]Pinger) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
