// Package user implements account, profile and watch-history logic.
package user

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/config"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	ChannelProfile(ctx context.Context, username string, viewerID *uuid.UUID) (domain.ChannelProfile, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	ListWatchHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.WatchHistoryItem, int, error)
}

type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
}

type mediaStorage interface {
	Store(ctx context.Context, prefix, filename, contentType string, size int64, r io.Reader) (domain.MediaRef, error)
	Remove(ctx context.Context, storageID string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the user business logic.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tokens tokenIssuer
	media  mediaStorage
	cfg    config.PaginationConfig
}

// NewService creates a new User service.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tokens tokenIssuer,
	media mediaStorage,
	cfg config.PaginationConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "user"),
		users:  users,
		tokens: tokens,
		media:  media,
		cfg:    cfg,
	}
}
