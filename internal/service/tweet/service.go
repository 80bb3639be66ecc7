// Package tweet implements the channel tweet business logic.
package tweet

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

type tweetRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Tweet, error)
	ListForUser(ctx context.Context, ownerID uuid.UUID, viewerID *uuid.UUID, req view.PageRequest) (view.Page[domain.TweetView], error)
	Create(ctx context.Context, t domain.Tweet) (domain.Tweet, error)
	Update(ctx context.Context, id uuid.UUID, content string) (domain.Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type likeRepo interface {
	DeleteByTarget(ctx context.Context, kind domain.LikeTarget, targetID uuid.UUID) error
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the tweet business logic.
type Service struct {
	log    *slog.Logger
	tweets tweetRepo
	likes  likeRepo
	users  userRepo
	tx     txManager
	cfg    config.PaginationConfig
}

// NewService creates a new Tweet service.
func NewService(
	logger *slog.Logger,
	tweets tweetRepo,
	likes likeRepo,
	users userRepo,
	tx txManager,
	cfg config.PaginationConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "tweet"),
		tweets: tweets,
		likes:  likes,
		users:  users,
		tx:     tx,
		cfg:    cfg,
	}
}
