package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

type subscriptionService interface {
	Toggle(ctx context.Context, channelID uuid.UUID) (bool, error)
	ListSubscribers(ctx context.Context, page, pageSize int) (view.Page[domain.OwnerSummary], error)
	ListSubscribedChannels(ctx context.Context, page, pageSize int) (view.Page[domain.OwnerSummary], error)
}

// SubscriptionHandler serves subscription endpoints.
type SubscriptionHandler struct {
	svc subscriptionService
	log *slog.Logger
}

// NewSubscriptionHandler creates a SubscriptionHandler.
func NewSubscriptionHandler(svc subscriptionService, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc, log: logger.With("handler", "subscription")}
}

// Toggle handles POST /api/channels/{channelId}/subscribe.
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathUUID(r, "channelId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	active, err := h.svc.Toggle(r.Context(), channelID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Active: active})
}

// ListSubscribers handles GET /api/users/me/subscribers.
func (h *SubscriptionHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	items, err := h.svc.ListSubscribers(r.Context(), page, pageSize)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ListSubscribedChannels handles GET /api/users/me/subscriptions.
func (h *SubscriptionHandler) ListSubscribedChannels(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	items, err := h.svc.ListSubscribedChannels(r.Context(), page, pageSize)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
