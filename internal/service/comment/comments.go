package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// ListForVideo returns one page of a video's comments, newest first. The
// video must exist; comments on unpublished videos are visible to the owner
// only, matching video detail visibility.
func (s *Service) ListForVideo(ctx context.Context, videoID uuid.UUID, page, pageSize int) (view.Page[domain.CommentView], error) {
	viewer := ctxutil.ViewerFromCtx(ctx)

	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return view.Page[domain.CommentView]{}, err
	}
	if !v.IsPublished && (viewer == nil || *viewer != v.OwnerID) {
		return view.Page[domain.CommentView]{}, domain.ErrNotFound
	}

	req := view.PageRequest{Page: page, PageSize: pageSize}.Normalize(s.cfg.MaxPageSize)
	return s.comments.ListForVideo(ctx, videoID, viewer, req)
}

// Add attaches a new comment to a video.
func (s *Service) Add(ctx context.Context, in AddInput) (domain.Comment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Comment{}, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return domain.Comment{}, err
	}

	// Existence check up front for a clean not-found; the FK still guards
	// against a concurrent video deletion.
	if _, err := s.videos.GetByID(ctx, in.VideoID); err != nil {
		return domain.Comment{}, err
	}

	return s.comments.Create(ctx, domain.Comment{
		ID:        uuid.New(),
		VideoID:   in.VideoID,
		OwnerID:   userID,
		Content:   in.Content,
		CreatedAt: time.Now().UTC(),
	})
}

// Update edits a comment's content. Owner only.
func (s *Service) Update(ctx context.Context, in UpdateInput) (domain.Comment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Comment{}, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return domain.Comment{}, err
	}

	c, err := s.comments.GetByID(ctx, in.CommentID)
	if err != nil {
		return domain.Comment{}, err
	}
	if c.OwnerID != userID {
		return domain.Comment{}, domain.ErrForbidden
	}

	return s.comments.Update(ctx, in.CommentID, in.Content)
}

// Delete removes a comment and its likes in one transaction. Allowed for the
// comment's owner and for the owner of the video it sits on.
func (s *Service) Delete(ctx context.Context, commentID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if c.OwnerID != userID {
		v, err := s.videos.GetByID(ctx, c.VideoID)
		if err != nil {
			return err
		}
		if v.OwnerID != userID {
			return domain.ErrForbidden
		}
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.likes.DeleteByTarget(txCtx, domain.LikeTargetComment, commentID); err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}
		if err := s.comments.Delete(txCtx, commentID); err != nil {
			return fmt.Errorf("delete comment: %w", err)
		}
		return nil
	})
}
