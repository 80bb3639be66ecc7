package video

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// Publish uploads the video file and thumbnail to media storage and creates
// the video record, published immediately. If a later step fails, objects
// already uploaded are removed best-effort so storage does not accumulate
// orphans.
func (s *Service) Publish(ctx context.Context, in PublishInput) (domain.Video, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Video{}, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return domain.Video{}, err
	}

	videoRef, err := s.media.Store(ctx, "videos", in.VideoFile.Filename, in.VideoFile.ContentType, in.VideoFile.Size, in.VideoFile.Content)
	if err != nil {
		return domain.Video{}, err
	}

	thumbRef, err := s.media.Store(ctx, "thumbnails", in.Thumbnail.Filename, in.Thumbnail.ContentType, in.Thumbnail.Size, in.Thumbnail.Content)
	if err != nil {
		s.removeObject(ctx, videoRef.StorageID)
		return domain.Video{}, err
	}

	created, err := s.videos.Create(ctx, domain.Video{
		ID:          uuid.New(),
		OwnerID:     userID,
		Title:       in.Title,
		Description: in.Description,
		VideoFile:   videoRef,
		Thumbnail:   thumbRef,
		Duration:    in.Duration,
		IsPublished: true,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.removeObject(ctx, videoRef.StorageID)
		s.removeObject(ctx, thumbRef.StorageID)
		return domain.Video{}, err
	}

	s.log.InfoContext(ctx, "video published",
		slog.String("video_id", created.ID.String()),
		slog.String("owner_id", userID.String()),
	)

	return created, nil
}

// removeObject removes a stored object, logging instead of failing: by this
// point the user-facing error is already decided.
func (s *Service) removeObject(ctx context.Context, storageID string) {
	if err := s.media.Remove(ctx, storageID); err != nil {
		s.log.ErrorContext(ctx, "remove orphaned media object",
			slog.String("storage_id", storageID),
			slog.String("error", err.Error()),
		)
	}
}
