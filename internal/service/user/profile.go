package user

import (
	"context"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// Me returns the caller's own account.
func (s *Service) Me(ctx context.Context) (domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.User{}, domain.ErrUnauthorized
	}
	return s.users.GetByID(ctx, userID)
}

// ChannelProfile returns a user's public profile by username, personalized
// with the caller's subscription edge when authenticated.
func (s *Service) ChannelProfile(ctx context.Context, username string) (domain.ChannelProfile, error) {
	if username == "" {
		return domain.ChannelProfile{}, domain.NewValidationError("username", "required")
	}

	viewer := ctxutil.ViewerFromCtx(ctx)
	return s.users.ChannelProfile(ctx, username, viewer)
}

// WatchHistory returns one page of the caller's watch history, most recently
// watched first.
func (s *Service) WatchHistory(ctx context.Context, page, pageSize int) (view.Page[domain.WatchHistoryItem], error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return view.Page[domain.WatchHistoryItem]{}, domain.ErrUnauthorized
	}

	req := view.PageRequest{Page: page, PageSize: pageSize}.Normalize(s.cfg.MaxPageSize)

	items, total, err := s.users.ListWatchHistory(ctx, userID, req.PageSize, req.Offset())
	if err != nil {
		return view.Page[domain.WatchHistoryItem]{}, err
	}
	return view.NewPage(items, req, total), nil
}
