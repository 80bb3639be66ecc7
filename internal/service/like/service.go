// Package like implements the like toggle and liked-video listing logic.
package like

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/config"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type likeRepo interface {
	InsertIfAbsent(ctx context.Context, actorID uuid.UUID, kind domain.LikeTarget, targetID uuid.UUID) (bool, error)
	DeleteEdge(ctx context.Context, actorID uuid.UUID, kind domain.LikeTarget, targetID uuid.UUID) (bool, error)
	ListLikedVideos(ctx context.Context, viewerID uuid.UUID, req view.PageRequest) (view.Page[domain.LikedVideoView], error)
}

type videoRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Video, error)
}

type commentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Comment, error)
}

type tweetRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Tweet, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the like business logic.
type Service struct {
	log      *slog.Logger
	likes    likeRepo
	videos   videoRepo
	comments commentRepo
	tweets   tweetRepo
	cfg      config.PaginationConfig
}

// NewService creates a new Like service.
func NewService(
	logger *slog.Logger,
	likes likeRepo,
	videos videoRepo,
	comments commentRepo,
	tweets tweetRepo,
	cfg config.PaginationConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "like"),
		likes:    likes,
		videos:   videos,
		comments: comments,
		tweets:   tweets,
		cfg:      cfg,
	}
}
