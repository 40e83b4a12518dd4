package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/periovox/periovox/internal/health"
	"github.com/periovox/periovox/internal/observe"
)

// buildServer assembles the admin HTTP server: Prometheus metrics, health
// probes, and a read-only JSON snapshot of the chart for debugging. All
// routes run through the observe middleware (span + request metrics).
func (a *App) buildServer(addr string) *http.Server {
	mux := http.NewServeMux()

	mux.Handle("GET /metrics", promhttp.Handler())

	h := health.New(map[string]health.Check{
		"chart": func(context.Context) error {
			if a.chart == nil {
				return fmt.Errorf("chart session not initialised")
			}
			return nil
		},
		"interpreter": func(context.Context) error {
			if a.parser == nil || a.normalizer == nil {
				return fmt.Errorf("dictation interpreter not initialised")
			}
			return nil
		},
	})
	h.Register(mux)

	mux.HandleFunc("GET /chart", a.handleChartSnapshot)
	mux.HandleFunc("GET /chart/{tooth}", a.handleToothSnapshot)

	return &http.Server{
		Addr:              addr,
		Handler:           observe.Middleware(a.metrics)(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// handleChartSnapshot returns every tooth record, ordered by Universal
// number, plus the session state.
func (a *App) handleChartSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"current_tooth":  a.chart.Current(),
		"active_surface": a.chart.ActiveSurface(),
		"teeth":          a.chart.Snapshot(),
	})
}

// handleToothSnapshot returns a single tooth record by Universal number.
func (a *App) handleToothSnapshot(w http.ResponseWriter, r *http.Request) {
	var id int
	if _, err := fmt.Sscanf(r.PathValue("tooth"), "%d", &id); err != nil {
		http.Error(w, "tooth must be a number", http.StatusBadRequest)
		return
	}
	rec, err := a.chart.Tooth(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}
