// Package comment implements comment business logic.
package comment

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

type commentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Comment, error)
	ListForVideo(ctx context.Context, videoID uuid.UUID, viewerID *uuid.UUID, req view.PageRequest) (view.Page[domain.CommentView], error)
	Create(ctx context.Context, c domain.Comment) (domain.Comment, error)
	Update(ctx context.Context, id uuid.UUID, content string) (domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type videoRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Video, error)
}

type likeRepo interface {
	DeleteByTarget(ctx context.Context, kind domain.LikeTarget, targetID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the comment business logic.
type Service struct {
	log      *slog.Logger
	comments commentRepo
	videos   videoRepo
	likes    likeRepo
	tx       txManager
	cfg      config.PaginationConfig
}

// NewService creates a new Comment service.
func NewService(
	logger *slog.Logger,
	comments commentRepo,
	videos videoRepo,
	likes likeRepo,
	tx txManager,
	cfg config.PaginationConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "comment"),
		comments: comments,
		videos:   videos,
		likes:    likes,
		tx:       tx,
		cfg:      cfg,
	}
}
