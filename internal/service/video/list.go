package video

import (
	"context"

	vrepo "github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/video"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

// List returns one page of published videos, optionally filtered by owner
// and search term. Unknown sort keys fall back to newest-first.
func (s *Service) List(ctx context.Context, in ListInput) (view.Page[domain.VideoListItem], error) {
	req := view.PageRequest{Page: in.Page, PageSize: in.PageSize}.Normalize(s.cfg.MaxPageSize)

	return s.videos.List(ctx, vrepo.Filter{
		OwnerID:       in.OwnerID,
		PublishedOnly: true,
		Search:        in.Search,
		SortBy:        in.SortBy,
		SortDesc:      in.SortDesc,
	}, req)
}
