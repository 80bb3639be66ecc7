package video

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// TogglePublish flips the publish flag. Owner only. The returned video
// carries the new state.
func (s *Service) TogglePublish(ctx context.Context, videoID uuid.UUID) (domain.Video, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Video{}, domain.ErrUnauthorized
	}

	v, err := s.requireOwned(ctx, videoID, userID)
	if err != nil {
		return domain.Video{}, err
	}

	return s.videos.SetPublished(ctx, videoID, !v.IsPublished)
}
