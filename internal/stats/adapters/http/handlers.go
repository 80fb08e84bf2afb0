package http

import (
	"net/http"

	"github.com/s-urunov-dev/bookstore/internal/auth"
	"github.com/s-urunov-dev/bookstore/internal/httpapi"
	"github.com/s-urunov-dev/bookstore/internal/stats/ports"
)

// Handler exposes the admin statistics endpoint.
type Handler struct {
	repo ports.StatsRepository
}

// NewHandler constructs a Handler.
func NewHandler(repo ports.StatsRepository) *Handler {
	return &Handler{repo: repo}
}

// Register binds the stats handler to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux, mw *auth.Middleware) {
	mux.Handle("/v1/stats", mw.RequireAdmin(http.HandlerFunc(h.getStats)))
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snapshot, err := h.repo.Snapshot(r.Context())
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, snapshot)
}
