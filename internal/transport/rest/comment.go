package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	commentsvc "github.com/heartmarshall/viewtube-backend/internal/service/comment"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

type commentService interface {
	ListForVideo(ctx context.Context, videoID uuid.UUID, page, pageSize int) (view.Page[domain.CommentView], error)
	Add(ctx context.Context, in commentsvc.AddInput) (domain.Comment, error)
	Update(ctx context.Context, in commentsvc.UpdateInput) (domain.Comment, error)
	Delete(ctx context.Context, commentID uuid.UUID) error
}

// CommentHandler serves comment endpoints.
type CommentHandler struct {
	svc commentService
	log *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(svc commentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: logger.With("handler", "comment")}
}

type commentResponse struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"videoId"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID.String(),
		VideoID:   c.VideoID.String(),
		OwnerID:   c.OwnerID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// ListForVideo handles GET /api/videos/{videoId}/comments.
func (h *CommentHandler) ListForVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathUUID(r, "videoId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	page, pageSize := pagination(r)
	items, err := h.svc.ListForVideo(r.Context(), videoID, page, pageSize)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Add handles POST /api/videos/{videoId}/comments.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathUUID(r, "videoId")
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

	c, err := h.svc.Add(r.Context(), commentsvc.AddInput{VideoID: videoID, Content: req.Content})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(c))
}

// Update handles PATCH /api/comments/{commentId}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathUUID(r, "commentId")
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

	c, err := h.svc.Update(r.Context(), commentsvc.UpdateInput{CommentID: commentID, Content: req.Content})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentResponse(c))
}

// Delete handles DELETE /api/comments/{commentId}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathUUID(r, "commentId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), commentID); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
