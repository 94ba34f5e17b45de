package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/statgridgo/internal/dag"
	"github.com/specialistvlad/statgridgo/internal/feed"
	"github.com/specialistvlad/statgridgo/internal/registry"
)

// Snapshot is the immutable view served on /stats.
type Snapshot struct {
	Stats   map[string]float64 `json:"stats"`
	Edges   int                `json:"edges"`
	Changes int                `json:"changes"`

	topology *dag.Graph
}

// StatView is the single-stat view served on /stats/{name}.
type StatView struct {
	Name         string   `json:"name"`
	Value        float64  `json:"value"`
	Dependencies []string `json:"dependencies"`
	Dependents   []string `json:"dependents"`
}

func newSnapshot(reg *registry.Connections, topo *dag.Graph, rec *feed.Recorder) *Snapshot {
	return &Snapshot{
		Stats:    reg.Values(),
		Edges:    reg.EdgeCount(),
		Changes:  rec.Count(),
		topology: topo,
	}
}

// healthHandler answers liveness checks.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// statsHandler serves the snapshot taken after all mutations were applied.
func (a *App) statsHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Stats endpoint hit.", "remote_addr", r.RemoteAddr)
	snap := a.snapshot.Load()
	if snap == nil {
		http.Error(w, "graph not ready", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		a.logger.Error("Failed to encode stats snapshot.", "error", err)
	}
}

// statHandler serves one stat with its declared neighbours.
func (a *App) statHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	a.logger.Debug("Stat endpoint hit.", "remote_addr", r.RemoteAddr, "stat", name)
	snap := a.snapshot.Load()
	if snap == nil {
		http.Error(w, "graph not ready", http.StatusServiceUnavailable)
		return
	}
	value, ok := snap.Stats[name]
	if !ok {
		http.Error(w, fmt.Sprintf("stat %q not found", name), http.StatusNotFound)
		return
	}

	view := StatView{Name: name, Value: value, Dependencies: []string{}, Dependents: []string{}}
	if deps, err := snap.topology.Dependencies(name); err == nil {
		view.Dependencies = deps
	}
	if dependents, err := snap.topology.Dependents(name); err == nil {
		view.Dependents = dependents
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		a.logger.Error("Failed to encode stat view.", "error", err)
	}
}

func (a *App) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/stats", a.statsHandler)
	mux.HandleFunc("GET /stats/{name}", a.statHandler)
	return mux
}

// startHealthcheckServer binds the configured port and serves in the
// background. Bind errors are returned to the caller.
func (a *App) startHealthcheckServer(ctx context.Context) error {
	a.logger.Debug("Configuring health check server.")
	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)

	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("health check server: %w", err)
	}
	a.httpServer = &http.Server{
		Handler:           a.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
	return nil
}

func (a *App) closeHealthCheckServer(ctx context.Context) error {
	if a.httpServer == nil {
		a.logger.Debug("Health check server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	a.logger.Info("🩺 Shutting down health check server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Health check server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("Health check server shut down gracefully.")
	return nil
}
