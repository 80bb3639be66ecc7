package video

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// Get returns the viewer-personalized detail view of a video. An unpublished
// video is visible to its owner only; everyone else gets not-found.
//
// An authenticated read counts as a watch: the view counter is bumped and
// the video lands in the viewer's watch history. Anonymous reads leave both
// untouched. The side effects run after the read and do not fail it; the
// returned Views is the pre-bump value.
func (s *Service) Get(ctx context.Context, videoID uuid.UUID) (domain.VideoView, error) {
	viewer := ctxutil.ViewerFromCtx(ctx)

	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return domain.VideoView{}, err
	}
	if !v.IsPublished && (viewer == nil || *viewer != v.OwnerID) {
		return domain.VideoView{}, domain.ErrNotFound
	}

	vv, err := s.videos.GetView(ctx, videoID, viewer)
	if err != nil {
		return domain.VideoView{}, err
	}

	if viewer != nil {
		if err := s.videos.IncrementViews(ctx, videoID); err != nil {
			s.log.ErrorContext(ctx, "increment views",
				slog.String("video_id", videoID.String()),
				slog.String("error", err.Error()),
			)
		}
		if err := s.history.RecordWatch(ctx, *viewer, videoID); err != nil {
			s.log.ErrorContext(ctx, "record watch history",
				slog.String("video_id", videoID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	return vv, nil
}
