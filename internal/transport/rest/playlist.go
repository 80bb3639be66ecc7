package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/loader"
	playlistsvc "github.com/heartmarshall/viewtube-backend/internal/service/playlist"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

type playlistService interface {
	Get(ctx context.Context, playlistID uuid.UUID) (domain.Playlist, error)
	ListForUser(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (view.Page[domain.PlaylistSummary], error)
	Create(ctx context.Context, in playlistsvc.CreateInput) (domain.Playlist, error)
	Update(ctx context.Context, in playlistsvc.UpdateInput) (domain.Playlist, error)
	Delete(ctx context.Context, playlistID uuid.UUID) error
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
}

// PlaylistHandler serves playlist endpoints.
type PlaylistHandler struct {
	svc playlistService
	log *slog.Logger
}

// NewPlaylistHandler creates a PlaylistHandler.
func NewPlaylistHandler(svc playlistService, logger *slog.Logger) *PlaylistHandler {
	return &PlaylistHandler{svc: svc, log: logger.With("handler", "playlist")}
}

type playlistResponse struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toPlaylistResponse(p domain.Playlist) playlistResponse {
	return playlistResponse{
		ID:          p.ID.String(),
		OwnerID:     p.OwnerID.String(),
		Name:        p.Name,
		Description: p.Description,
	}
}

// Get handles GET /api/playlists/{playlistId}. The detail view expands the
// published member videos and the owner summary through the per-request
// loaders, then recomputes the aggregates over what actually expanded.
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathUUID(r, "playlistId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	ctx := r.Context()
	p, err := h.svc.Get(ctx, playlistID)
	if err != nil {
		handleError(ctx, h.log, w, err)
		return
	}

	loaders := loader.FromContext(ctx)
	videosThunk := loaders.MemberVideosByPlaylistID.Load(ctx, p.ID)
	ownerThunk := loaders.OwnerByID.Load(ctx, p.OwnerID)

	videos, err := videosThunk()
	if err != nil {
		handleError(ctx, h.log, w, err)
		return
	}
	owner, err := ownerThunk()
	if err != nil {
		handleError(ctx, h.log, w, err)
		return
	}

	pv := domain.PlaylistView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		TotalVideos: len(videos),
		Videos:      videos,
	}
	for _, v := range videos {
		pv.TotalViews += v.Views
	}
	if owner != nil {
		pv.Owner = *owner
	}

	writeJSON(w, http.StatusOK, pv)
}

// ListForUser handles GET /api/users/{userId}/playlists.
func (h *PlaylistHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
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

// Create handles POST /api/playlists.
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Create(r.Context(), playlistsvc.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlaylistResponse(p))
}

// Update handles PATCH /api/playlists/{playlistId}.
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathUUID(r, "playlistId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Update(r.Context(), playlistsvc.UpdateInput{
		PlaylistID:  playlistID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlaylistResponse(p))
}

// Delete handles DELETE /api/playlists/{playlistId}.
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathUUID(r, "playlistId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), playlistID); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddVideo handles POST /api/playlists/{playlistId}/videos/{videoId}.
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	h.memberOp(w, r, h.svc.AddVideo)
}

// RemoveVideo handles DELETE /api/playlists/{playlistId}/videos/{videoId}.
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	h.memberOp(w, r, h.svc.RemoveVideo)
}

func (h *PlaylistHandler) memberOp(w http.ResponseWriter, r *http.Request, fn func(context.Context, uuid.UUID, uuid.UUID) error) {
	playlistID, err := pathUUID(r, "playlistId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	videoID, err := pathUUID(r, "videoId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if err := fn(r.Context(), playlistID, videoID); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
