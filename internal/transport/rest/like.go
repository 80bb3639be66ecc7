package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

type likeService interface {
	ToggleVideo(ctx context.Context, videoID uuid.UUID) (bool, error)
	ToggleComment(ctx context.Context, commentID uuid.UUID) (bool, error)
	ToggleTweet(ctx context.Context, tweetID uuid.UUID) (bool, error)
	ListLikedVideos(ctx context.Context, page, pageSize int) (view.Page[domain.LikedVideoView], error)
}

// LikeHandler serves like toggle and liked-video listing endpoints.
type LikeHandler struct {
	svc likeService
	log *slog.Logger
}

// NewLikeHandler creates a LikeHandler.
func NewLikeHandler(svc likeService, logger *slog.Logger) *LikeHandler {
	return &LikeHandler{svc: svc, log: logger.With("handler", "like")}
}

type toggleResponse struct {
	Active bool `json:"active"`
}

// ToggleVideo handles POST /api/videos/{videoId}/like.
func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "videoId", h.svc.ToggleVideo)
}

// ToggleComment handles POST /api/comments/{commentId}/like.
func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "commentId", h.svc.ToggleComment)
}

// ToggleTweet handles POST /api/tweets/{tweetId}/like.
func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "tweetId", h.svc.ToggleTweet)
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, param string, fn func(context.Context, uuid.UUID) (bool, error)) {
	id, err := pathUUID(r, param)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	active, err := fn(r.Context(), id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Active: active})
}

// ListLikedVideos handles GET /api/users/me/liked-videos.
func (h *LikeHandler) ListLikedVideos(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	items, err := h.svc.ListLikedVideos(r.Context(), page, pageSize)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
