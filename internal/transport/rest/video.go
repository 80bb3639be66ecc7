package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	videosvc "github.com/heartmarshall/viewtube-backend/internal/service/video"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

type videoService interface {
	Publish(ctx context.Context, in videosvc.PublishInput) (domain.Video, error)
	List(ctx context.Context, in videosvc.ListInput) (view.Page[domain.VideoListItem], error)
	Get(ctx context.Context, videoID uuid.UUID) (domain.VideoView, error)
	Update(ctx context.Context, in videosvc.UpdateInput) (domain.Video, error)
	UpdateThumbnail(ctx context.Context, videoID uuid.UUID, thumb *videosvc.Upload) (domain.Video, error)
	TogglePublish(ctx context.Context, videoID uuid.UUID) (domain.Video, error)
	Delete(ctx context.Context, videoID uuid.UUID) error
}

// VideoHandler serves video endpoints.
type VideoHandler struct {
	svc videoService
	log *slog.Logger
}

// NewVideoHandler creates a VideoHandler.
func NewVideoHandler(svc videoService, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{svc: svc, log: logger.With("handler", "video")}
}

type videoResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toVideoResponse(v domain.Video) videoResponse {
	return videoResponse{
		ID:           v.ID.String(),
		OwnerID:      v.OwnerID.String(),
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoFile.URL,
		ThumbnailURL: v.Thumbnail.URL,
		Duration:     v.Duration,
		Views:        v.Views,
		IsPublished:  v.IsPublished,
		CreatedAt:    v.CreatedAt,
	}
}

// List handles GET /api/videos. Supports page, pageSize, search, sortBy,
// sortDesc and ownerId query parameters.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := pagination(r)

	in := videosvc.ListInput{
		Page:     page,
		PageSize: pageSize,
		Search:   q.Get("search"),
		SortBy:   q.Get("sortBy"),
	}
	in.SortDesc, _ = strconv.ParseBool(q.Get("sortDesc"))

	if raw := q.Get("ownerId"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			handleError(r.Context(), h.log, w, domain.NewValidationError("ownerId", "must be a UUID"))
			return
		}
		in.OwnerID = &ownerID
	}

	items, err := h.svc.List(r.Context(), in)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/videos/{videoId}.
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathUUID(r, "videoId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	v, err := h.svc.Get(r.Context(), videoID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Publish handles POST /api/videos. The body is multipart form data with
// title, description, duration fields and videoFile, thumbnail file parts.
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	in := videosvc.PublishInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	in.Duration, _ = strconv.ParseFloat(r.FormValue("duration"), 64)

	videoFile, cleanupVideo, err := videoFormUpload(r, "videoFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid video upload")
		return
	}
	defer cleanupVideo()
	in.VideoFile = videoFile

	thumb, cleanupThumb, err := videoFormUpload(r, "thumbnail")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid thumbnail upload")
		return
	}
	defer cleanupThumb()
	in.Thumbnail = thumb

	v, err := h.svc.Publish(r.Context(), in)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVideoResponse(v))
}

// Update handles PATCH /api/videos/{videoId}.
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathUUID(r, "videoId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.svc.Update(r.Context(), videosvc.UpdateInput{
		VideoID:     videoID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVideoResponse(v))
}

// UpdateThumbnail handles PATCH /api/videos/{videoId}/thumbnail with a
// multipart thumbnail file part.
func (h *VideoHandler) UpdateThumbnail(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathUUID(r, "videoId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	thumb, cleanup, err := videoFormUpload(r, "thumbnail")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid thumbnail upload")
		return
	}
	defer cleanup()

	v, err := h.svc.UpdateThumbnail(r.Context(), videoID, thumb)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVideoResponse(v))
}

// TogglePublish handles POST /api/videos/{videoId}/toggle-publish.
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathUUID(r, "videoId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	v, err := h.svc.TogglePublish(r.Context(), videoID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVideoResponse(v))
}

// Delete handles DELETE /api/videos/{videoId}.
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathUUID(r, "videoId")
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), videoID); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// videoFormUpload extracts a named file part as a video-service upload.
// A missing part returns nil; the service decides whether it was required.
func videoFormUpload(r *http.Request, field string) (*videosvc.Upload, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	return &videosvc.Upload{
		Filename:    header.Filename,
		ContentType: partContentType(header),
		Size:        header.Size,
		Content:     file,
	}, func() { file.Close() }, nil
}
