package like

import (
	"context"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// ListLikedVideos returns one page of videos the caller has liked, most
// recently liked first.
func (s *Service) ListLikedVideos(ctx context.Context, page, pageSize int) (view.Page[domain.LikedVideoView], error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return view.Page[domain.LikedVideoView]{}, domain.ErrUnauthorized
	}

	req := view.PageRequest{Page: page, PageSize: pageSize}.Normalize(s.cfg.MaxPageSize)
	return s.likes.ListLikedVideos(ctx, userID, req)
}
