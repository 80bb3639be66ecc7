// Package dashboard implements the channel owner's dashboard reads.
package dashboard

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/config"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

type videoRepo interface {
	ChannelStats(ctx context.Context, ownerID uuid.UUID) (domain.ChannelStats, error)
	ChannelVideos(ctx context.Context, ownerID uuid.UUID, req view.PageRequest) (view.Page[domain.ChannelVideo], error)
}

// Service implements the dashboard reads. Everything here is scoped to the
// authenticated caller's own channel.
type Service struct {
	log    *slog.Logger
	videos videoRepo
	cfg    config.PaginationConfig
}

// NewService creates a new Dashboard service.
func NewService(logger *slog.Logger, videos videoRepo, cfg config.PaginationConfig) *Service {
	return &Service{
		log:    logger.With("service", "dashboard"),
		videos: videos,
		cfg:    cfg,
	}
}

// Stats returns the caller's channel aggregates.
func (s *Service) Stats(ctx context.Context) (domain.ChannelStats, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ChannelStats{}, domain.ErrUnauthorized
	}
	return s.videos.ChannelStats(ctx, userID)
}

// Videos returns one page of the caller's own videos, unpublished included.
func (s *Service) Videos(ctx context.Context, page, pageSize int) (view.Page[domain.ChannelVideo], error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return view.Page[domain.ChannelVideo]{}, domain.ErrUnauthorized
	}

	req := view.PageRequest{Page: page, PageSize: pageSize}.Normalize(s.cfg.MaxPageSize)
	return s.videos.ChannelVideos(ctx, userID, req)
}
