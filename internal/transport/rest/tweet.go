package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	tweetsvc "github.com/heartmarshall/viewtube-backend/internal/service/tweet"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

type tweetService interface {
	Create(ctx context.Context, in tweetsvc.CreateInput) (domain.Tweet, error)
	ListForUser(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (view.Page[domain.TweetView], error)
	Update(ctx context.Context, in tweetsvc.UpdateInput) (domain.Tweet, error)
	Delete(ctx context.Context, tweetID uuid.UUID) error
}

// TweetHandler serves channel tweet endpoints.
type TweetHandler struct {
	svc tweetService
	log *slog.Logger
}

// NewTweetHandler creates a TweetHandler.
func NewTweetHandler(svc tweetService, logger *slog.Logger) *TweetHandler {
	return &TweetHandler{svc: svc, log: logger.With("handler", "tweet")}
}

type tweetResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTweetResponse(t domain.Tweet) tweetResponse {
	return tweetResponse{
		ID:        t.ID.String(),
		OwnerID:   t.OwnerID.String(),
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
	}
}

// Create handles POST /api/tweets.
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.Create(r.Context(), tweetsvc.CreateInput{Content: req.Content})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTweetResponse(t))
}

// ListForUser handles GET /api/users/{userId}/tweets.
func (h *TweetHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	page, pageSize := pagination(r)
	items, err := h.svc.ListForUser(r.Context(), userID, page, pageSize)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Update handles PATCH /api/tweets/{tweetId}.
func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	tweetID, err := pathUUID(r, "tweetId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.Update(r.Context(), tweetsvc.UpdateInput{TweetID: tweetID, Content: req.Content})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTweetResponse(t))
}

// Delete handles DELETE /api/tweets/{tweetId}.
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tweetID, err := pathUUID(r, "tweetId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), tweetID); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
