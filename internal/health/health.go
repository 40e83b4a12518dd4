// Package health provides the liveness and readiness endpoints of the
// periovox admin server.
//
//   - /healthz — liveness probe; always returns 200 OK.
//   - /readyz  — readiness probe; returns 200 only when every registered
//     check passes (e.g. the charting session and interpreter are built).
//
// Responses are JSON objects with a top-level "status" field ("ok" or
// "fail") and a "checks" map with one entry per named check.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

// checkTimeout bounds a single readiness check.
const checkTimeout = 5 * time.Second

// Check probes one dependency. It must return nil when healthy and respect
// context cancellation.
type Check func(ctx context.Context) error

// Handler serves the health endpoints. The check set is fixed at
// construction time; Handler is safe for concurrent use.
type Handler struct {
	checks map[string]Check
}

// New creates a [Handler] evaluating the given named checks on each /readyz
// request. Checks run sequentially in name order.
func New(checks map[string]Check) *Handler {
	copied := make(map[string]Check, len(checks))
	for name, c := range checks {
		copied[name] = c
	}
	return &Handler{checks: copied}
}

// Healthz is the liveness probe: a process that can serve HTTP is alive.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response{Status: "ok"})
}

// Readyz is the readiness probe: 200 only when every check passes.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	res := response{Status: "ok", Checks: make(map[string]string, len(names))}
	status := http.StatusOK

	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := h.checks[name](ctx)
		cancel()

		if err != nil {
			res.Checks[name] = "fail: " + err.Error()
			res.Status = "fail"
			status = http.StatusServiceUnavailable
		} else {
			res.Checks[name] = "ok"
		}
	}

	writeJSON(w, status, res)
}

// Register adds the /healthz and /readyz routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// response is the JSON body for both endpoints.
type response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// writeJSON encodes v with the given status code. On encoding failure it
// falls back to a plain 500 response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
	}
}
