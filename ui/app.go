package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sixsigma/adapters/stats/engine"
	"sixsigma/app"
	"sixsigma/domain/core"
	"sixsigma/internal"
)

// App is a lightweight chi-based read API over stored analysis
// snapshots and the sigma conversion tables. The full gin Server owns
// the compute endpoints; this surface is for dashboards that only read.
type App struct {
	router  *chi.Mux
	engine  *engine.QualityEngine
	service *app.AnalysisService
	logger  *internal.Logger
}

// AppConfig holds read-API configuration.
type AppConfig struct {
	Port string
}

// NewApp creates the read-only API application.
func NewApp(eng *engine.QualityEngine, service *app.AnalysisService, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	a := &App{
		router:  chi.NewRouter(),
		engine:  eng,
		service: service,
		logger:  logger,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

func (a *App) setupRoutes() {
	a.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/conversion-table", a.handleConversionTable)
		r.Get("/snapshots", a.handleListSnapshots)
		r.Get("/snapshots/{id}", a.handleGetSnapshot)
	})
}

// Start begins serving on the configured port.
func (a *App) Start(config AppConfig) error {
	addr := ":" + config.Port
	a.logger.Info("read API listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the chi mux for tests.
func (a *App) Router() *chi.Mux {
	return a.router
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("failed to encode response: %v", err)
	}
}

func (a *App) handleConversionTable(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows": a.engine.Converter.ConversionTable(),
	})
}

func (a *App) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := a.service.ListSnapshots(r.Context(), r.URL.Query().Get("dataset"), 50)
	if err != nil {
		a.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": snapshots,
		"count":     len(snapshots),
	})
}

func (a *App) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseSnapshotID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	snapshot, err := a.service.GetSnapshot(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			a.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		a.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	a.writeJSON(w, http.StatusOK, snapshot)
}
