package subscription

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// Toggle flips the caller's subscription to a channel. Returns true if the
// subscription is active after this call. Subscribing to your own channel is
// rejected.
func (s *Service) Toggle(ctx context.Context, channelID uuid.UUID) (bool, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrUnauthorized
	}

	if channelID == uuid.Nil {
		return false, domain.NewValidationError("channel_id", "required")
	}
	if channelID == userID {
		return false, domain.NewValidationError("channel_id", "cannot subscribe to yourself")
	}

	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		return false, err
	}

	inserted, err := s.subs.InsertIfAbsent(ctx, userID, channelID)
	if err != nil {
		return false, err
	}
	if inserted {
		return true, nil
	}

	// Edge already existed: this toggle turns it off.
	if _, err := s.subs.DeleteEdge(ctx, userID, channelID); err != nil {
		return false, err
	}
	return false, nil
}

// ListSubscribers returns one page of users subscribed to the caller's
// channel.
func (s *Service) ListSubscribers(ctx context.Context, page, pageSize int) (view.Page[domain.OwnerSummary], error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return view.Page[domain.OwnerSummary]{}, domain.ErrUnauthorized
	}

	req := view.PageRequest{Page: page, PageSize: pageSize}.Normalize(s.cfg.MaxPageSize)
	return s.subs.ListSubscribers(ctx, userID, req)
}

// ListSubscribedChannels returns one page of channels the caller follows.
func (s *Service) ListSubscribedChannels(ctx context.Context, page, pageSize int) (view.Page[domain.OwnerSummary], error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return view.Page[domain.OwnerSummary]{}, domain.ErrUnauthorized
	}

	req := view.PageRequest{Page: page, PageSize: pageSize}.Normalize(s.cfg.MaxPageSize)
	return s.subs.ListSubscribedChannels(ctx, userID, req)
}
