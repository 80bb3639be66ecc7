// Package video implements video lifecycle and listing business logic.
package video

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	vrepo "github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/video"
	"github.com/heartmarshall/viewtube-backend/internal/config"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type videoRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Video, error)
	List(ctx context.Context, f vrepo.Filter, req view.PageRequest) (view.Page[domain.VideoListItem], error)
	GetView(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (domain.VideoView, error)
	Create(ctx context.Context, v domain.Video) (domain.Video, error)
	Update(ctx context.Context, id uuid.UUID, title, description string) (domain.Video, error)
	UpdateThumbnail(ctx context.Context, id uuid.UUID, thumb domain.MediaRef) (domain.Video, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (domain.Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type commentRepo interface {
	ListIDsByVideo(ctx context.Context, videoID uuid.UUID) ([]uuid.UUID, error)
	DeleteByVideo(ctx context.Context, videoID uuid.UUID) error
}

type likeRepo interface {
	DeleteByTarget(ctx context.Context, kind domain.LikeTarget, targetID uuid.UUID) error
	DeleteByComments(ctx context.Context, commentIDs []uuid.UUID) error
}

type playlistRepo interface {
	DeleteMembershipByVideo(ctx context.Context, videoID uuid.UUID) error
}

type historyRepo interface {
	RecordWatch(ctx context.Context, userID, videoID uuid.UUID) error
	DeleteWatchEntriesByVideo(ctx context.Context, videoID uuid.UUID) error
}

type mediaStorage interface {
	Store(ctx context.Context, prefix, filename, contentType string, size int64, r io.Reader) (domain.MediaRef, error)
	Remove(ctx context.Context, storageID string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the video business logic.
type Service struct {
	log       *slog.Logger
	videos    videoRepo
	comments  commentRepo
	likes     likeRepo
	playlists playlistRepo
	history   historyRepo
	media     mediaStorage
	tx        txManager
	cfg       config.PaginationConfig
}

// NewService creates a new Video service.
func NewService(
	logger *slog.Logger,
	videos videoRepo,
	comments commentRepo,
	likes likeRepo,
	playlists playlistRepo,
	history historyRepo,
	media mediaStorage,
	tx txManager,
	cfg config.PaginationConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "video"),
		videos:    videos,
		comments:  comments,
		likes:     likes,
		playlists: playlists,
		history:   history,
		media:     media,
		tx:        tx,
		cfg:       cfg,
	}
}

// requireOwned loads a video and checks the caller owns it.
func (s *Service) requireOwned(ctx context.Context, videoID, userID uuid.UUID) (domain.Video, error) {
	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return domain.Video{}, err
	}
	if v.OwnerID != userID {
		return domain.Video{}, domain.ErrForbidden
	}
	return v, nil
}
