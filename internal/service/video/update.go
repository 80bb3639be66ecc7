package video

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// Update replaces title and description. Owner only.
func (s *Service) Update(ctx context.Context, in UpdateInput) (domain.Video, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Video{}, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return domain.Video{}, err
	}

	if _, err := s.requireOwned(ctx, in.VideoID, userID); err != nil {
		return domain.Video{}, err
	}

	return s.videos.Update(ctx, in.VideoID, in.Title, in.Description)
}

// UpdateThumbnail uploads a replacement thumbnail and swaps the reference.
// The old object is removed after the swap succeeds.
func (s *Service) UpdateThumbnail(ctx context.Context, videoID uuid.UUID, thumb *Upload) (domain.Video, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Video{}, domain.ErrUnauthorized
	}

	if thumb == nil {
		return domain.Video{}, domain.NewValidationError("thumbnail", "required")
	}

	old, err := s.requireOwned(ctx, videoID, userID)
	if err != nil {
		return domain.Video{}, err
	}

	ref, err := s.media.Store(ctx, "thumbnails", thumb.Filename, thumb.ContentType, thumb.Size, thumb.Content)
	if err != nil {
		return domain.Video{}, err
	}

	updated, err := s.videos.UpdateThumbnail(ctx, videoID, ref)
	if err != nil {
		s.removeObject(ctx, ref.StorageID)
		return domain.Video{}, err
	}

	s.removeObject(ctx, old.Thumbnail.StorageID)

	return updated, nil
}
