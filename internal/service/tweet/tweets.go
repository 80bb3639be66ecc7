package tweet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// Create posts a new tweet on the caller's channel.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Tweet, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Tweet{}, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return domain.Tweet{}, err
	}

	return s.tweets.Create(ctx, domain.Tweet{
		ID:        uuid.New(),
		OwnerID:   userID,
		Content:   in.Content,
		CreatedAt: time.Now().UTC(),
	})
}

// ListForUser returns one page of a user's tweets, newest first, annotated
// with the caller's like flags.
func (s *Service) ListForUser(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (view.Page[domain.TweetView], error) {
	viewer := ctxutil.ViewerFromCtx(ctx)

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return view.Page[domain.TweetView]{}, err
	}

	req := view.PageRequest{Page: page, PageSize: pageSize}.Normalize(s.cfg.MaxPageSize)
	return s.tweets.ListForUser(ctx, ownerID, viewer, req)
}

// Update edits a tweet's content. Owner only.
func (s *Service) Update(ctx context.Context, in UpdateInput) (domain.Tweet, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Tweet{}, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return domain.Tweet{}, err
	}

	t, err := s.tweets.GetByID(ctx, in.TweetID)
	if err != nil {
		return domain.Tweet{}, err
	}
	if t.OwnerID != userID {
		return domain.Tweet{}, domain.ErrForbidden
	}

	return s.tweets.Update(ctx, in.TweetID, in.Content)
}

// Delete removes a tweet and its likes in one transaction. Owner only.
func (s *Service) Delete(ctx context.Context, tweetID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	t, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if t.OwnerID != userID {
		return domain.ErrForbidden
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.likes.DeleteByTarget(txCtx, domain.LikeTargetTweet, tweetID); err != nil {
			return fmt.Errorf("delete tweet likes: %w", err)
		}
		if err := s.tweets.Delete(txCtx, tweetID); err != nil {
			return fmt.Errorf("delete tweet: %w", err)
		}
		return nil
	})
}
