// Package playlist implements the playlist business logic.
package playlist

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

type playlistRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Playlist, error)
	ListSummariesForUser(ctx context.Context, ownerID uuid.UUID, req view.PageRequest) (view.Page[domain.PlaylistSummary], error)
	Create(ctx context.Context, p domain.Playlist) (domain.Playlist, error)
	Update(ctx context.Context, id uuid.UUID, name, description string) (domain.Playlist, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
	DeleteMembers(ctx context.Context, playlistID uuid.UUID) error
}

type videoRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Video, error)
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

// Service implements the playlist business logic.
type Service struct {
	log       *slog.Logger
	playlists playlistRepo
	videos    videoRepo
	users     userRepo
	tx        txManager
	cfg       config.PaginationConfig
}

// NewService creates a new Playlist service.
func NewService(
	logger *slog.Logger,
	playlists playlistRepo,
	videos videoRepo,
	users userRepo,
	tx txManager,
	cfg config.PaginationConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "playlist"),
		playlists: playlists,
		videos:    videos,
		users:     users,
		tx:        tx,
		cfg:       cfg,
	}
}

// requireOwned loads the playlist and verifies the caller owns it.
func (s *Service) requireOwned(ctx context.Context, playlistID, userID uuid.UUID) (domain.Playlist, error) {
	p, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return domain.Playlist{}, err
	}
	if p.OwnerID != userID {
		return domain.Playlist{}, domain.ErrForbidden
	}
	return p, nil
}
