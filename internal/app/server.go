package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the HTTP routes: health, metrics and read-only lookups
// into the last built store.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /containers", a.containersHandler)
	mux.HandleFunc("GET /groups/{name}", a.groupHandler)
	mux.HandleFunc("GET /items/{name}", a.itemHandler)
	return mux
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	if a.store == nil {
		http.Error(w, "store not built", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) containersHandler(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		http.Error(w, "store not built", http.StatusServiceUnavailable)
		return
	}
	out := containerList{Stats: a.store.Stats(), Containers: []groupView{}}
	for _, c := range a.store.Containers() {
		out.Containers = append(out.Containers, newGroupView(c))
	}
	a.writeJSON(w, out)
}

func (a *App) groupHandler(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		http.Error(w, "store not built", http.StatusServiceUnavailable)
		return
	}
	name := r.PathValue("name")
	g, ok := a.store.Group(name)
	if !ok {
		http.Error(w, fmt.Sprintf("group %q not found", name), http.StatusNotFound)
		return
	}
	a.writeJSON(w, newGroupView(g))
}

func (a *App) itemHandler(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		http.Error(w, "store not built", http.StatusServiceUnavailable)
		return
	}
	name := r.PathValue("name")
	it, ok := a.store.Item(name)
	if !ok {
		http.Error(w, fmt.Sprintf("item %q not found", name), http.StatusNotFound)
		return
	}
	a.writeJSON(w, newItemView(it))
}

func (a *App) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("Writing JSON response failed.", "error", err)
	}
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down.
func (a *App) serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("health check server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	a.logger.Info("🩺 Shutting down health check server...")
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("health check server shutdown failed: %w", err)
	}
	a.logger.Debug("Health check server shut down gracefully.")
	return nil
}
