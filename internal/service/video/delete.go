package video

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// Delete removes a video and everything that references it. Owner only.
//
// The sweep runs in one transaction so a reader never observes a partially
// deleted video. Order matters: likes on the video's comments go first (they
// reference both comments and users), then likes on the video, the comments
// themselves, playlist membership, watch history, and finally the row.
// Media objects are removed after commit; storage failure at that point is
// logged, not returned, since the video is already gone.
func (s *Service) Delete(ctx context.Context, videoID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	v, err := s.requireOwned(ctx, videoID, userID)
	if err != nil {
		return err
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		commentIDs, err := s.comments.ListIDsByVideo(txCtx, videoID)
		if err != nil {
			return fmt.Errorf("list comment ids: %w", err)
		}

		if err := s.likes.DeleteByComments(txCtx, commentIDs); err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}
		if err := s.likes.DeleteByTarget(txCtx, domain.LikeTargetVideo, videoID); err != nil {
			return fmt.Errorf("delete video likes: %w", err)
		}
		if err := s.comments.DeleteByVideo(txCtx, videoID); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := s.playlists.DeleteMembershipByVideo(txCtx, videoID); err != nil {
			return fmt.Errorf("delete playlist membership: %w", err)
		}
		if err := s.history.DeleteWatchEntriesByVideo(txCtx, videoID); err != nil {
			return fmt.Errorf("delete watch history: %w", err)
		}
		if err := s.videos.Delete(txCtx, videoID); err != nil {
			return fmt.Errorf("delete video: %w", err)
		}

		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.removeObject(ctx, v.VideoFile.StorageID)
	s.removeObject(ctx, v.Thumbnail.StorageID)

	s.log.InfoContext(ctx, "video deleted",
		slog.String("video_id", videoID.String()),
		slog.String("owner_id", userID.String()),
	)

	return nil
}
