package handlers

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
)

// HealthChecker reports the state of a backing store.
type HealthChecker interface {
	Health(ctx context.Context) (map[string]any, error)
}

// SystemHandlers serves health and static assets.
type SystemHandlers struct {
	db     HealthChecker
	assets fs.FS
}

// NewSystemHandlers creates the system handlers. Assets are served from dir
// when set, otherwise from embedded.
func NewSystemHandlers(db HealthChecker, embedded fs.FS, dir string) *SystemHandlers {
	assets := embedded
	if dir != "" {
		assets = os.DirFS(dir)
	}
	return &SystemHandlers{db: db, assets: assets}
}

// Mount registers /health and /assets/ on r.
func (h *SystemHandlers) Mount(r chi.Router) {
	r.Get("/health", h.Health)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(h.assets))))
}

// Health reports the session store's pool statistics.
func (h *SystemHandlers) Health(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.Health(r.Context())
	if err != nil {
		webLogger().WithContext(r.Context()).Error("Health check failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{"status": "unavailable", "error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"database": stats,
	})
}
