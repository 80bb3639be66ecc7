package like

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// ToggleVideo flips the caller's like on a video. Returns true if the like
// is active after this call.
func (s *Service) ToggleVideo(ctx context.Context, videoID uuid.UUID) (bool, error) {
	return s.toggle(ctx, domain.LikeTargetVideo, videoID)
}

// ToggleComment flips the caller's like on a comment.
func (s *Service) ToggleComment(ctx context.Context, commentID uuid.UUID) (bool, error) {
	return s.toggle(ctx, domain.LikeTargetComment, commentID)
}

// ToggleTweet flips the caller's like on a tweet.
func (s *Service) ToggleTweet(ctx context.Context, tweetID uuid.UUID) (bool, error) {
	return s.toggle(ctx, domain.LikeTargetTweet, tweetID)
}

// toggle runs the atomic toggle protocol: try to create the edge; if it was
// already there, remove it. The partial unique index arbitrates concurrent
// calls, so two racing toggles resolve to one insert and one delete rather
// than a duplicate edge. The returned flag is the edge state produced by
// this call.
func (s *Service) toggle(ctx context.Context, kind domain.LikeTarget, targetID uuid.UUID) (bool, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrUnauthorized
	}

	if targetID == uuid.Nil {
		return false, domain.NewValidationError(string(kind)+"_id", "required")
	}

	if err := s.targetExists(ctx, kind, targetID); err != nil {
		return false, err
	}

	inserted, err := s.likes.InsertIfAbsent(ctx, userID, kind, targetID)
	if err != nil {
		return false, err
	}
	if inserted {
		return true, nil
	}

	// Edge already existed: this toggle turns it off. A concurrent delete
	// landing first leaves the edge inactive either way.
	if _, err := s.likes.DeleteEdge(ctx, userID, kind, targetID); err != nil {
		return false, err
	}
	return false, nil
}

// targetExists verifies the like target is a live row of the right kind.
func (s *Service) targetExists(ctx context.Context, kind domain.LikeTarget, targetID uuid.UUID) error {
	var err error
	switch kind {
	case domain.LikeTargetVideo:
		_, err = s.videos.GetByID(ctx, targetID)
	case domain.LikeTargetComment:
		_, err = s.comments.GetByID(ctx, targetID)
	case domain.LikeTargetTweet:
		_, err = s.tweets.GetByID(ctx, targetID)
	default:
		return domain.NewValidationError("target", "unknown kind")
	}
	return err
}
