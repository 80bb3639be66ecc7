package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

type dashboardService interface {
	Stats(ctx context.Context) (domain.ChannelStats, error)
	Videos(ctx context.Context, page, pageSize int) (view.Page[domain.ChannelVideo], error)
}

// DashboardHandler serves the channel owner's dashboard endpoints.
type DashboardHandler struct {
	svc dashboardService
	log *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(svc dashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: logger.With("handler", "dashboard")}
}

// Stats handles GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Videos handles GET /api/dashboard/videos.
func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	items, err := h.svc.Videos(r.Context(), page, pageSize)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
