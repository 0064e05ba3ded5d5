package daemon

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"curator/internal/api"
	"curator/internal/logging"
)

// newAPIServer builds the daemon HTTP server around the service layer.
func newAPIServer(bind string, service *api.Service, logger *slog.Logger, healthy func() bool) *http.Server {
	return &http.Server{
		Addr:         bind,
		Handler:      newHandler(service, logger, healthy),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}
}

type handler struct {
	service *api.Service
	logger  *slog.Logger
	healthy func() bool
}

func newHandler(service *api.Service, logger *slog.Logger, healthy func() bool) http.Handler {
	h := &handler{
		service: service,
		logger:  logging.NewComponentLogger(logger, "http"),
		healthy: healthy,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("POST /api/scan", h.handleScan)
	mux.HandleFunc("GET /api/suggestions", h.handleList)
	mux.HandleFunc("GET /api/suggestions/{id}", h.handleGet)
	mux.HandleFunc("POST /api/suggestions/{id}/apply", h.handleApply)
	mux.HandleFunc("POST /api/suggestions/clear-applied", h.handleClearApplied)
	mux.HandleFunc("GET /api/stats", h.handleStats)
	return mux
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if h.healthy != nil && !h.healthy() {
		status = "stopping"
		code = http.StatusServiceUnavailable
	}
	h.writeJSON(w, code, map[string]any{
		"status": status,
		"dryRun": h.service.DryRun(),
	})
}

func (h *handler) handleScan(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Scan(r.Context())
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleList(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.service.List(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (h *handler) handleGet(w http.ResponseWriter, r *http.Request) {
	suggestion, err := h.service.Describe(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	h.writeJSON(w, http.StatusOK, suggestion)
}

func (h *handler) handleApply(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Apply(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleClearApplied(w http.ResponseWriter, r *http.Request) {
	cleared, err := h.service.ClearApplied(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"cleared": cleared})
}

func (h *handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func statusFor(err error) int {
	if errors.Is(err, api.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode response", logging.Error(err))
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
