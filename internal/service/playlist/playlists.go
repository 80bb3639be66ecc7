package playlist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// Get returns a playlist's metadata. Playlists are public reads; the caller
// does not need to own one to see it. Member videos are expanded by the
// transport layer via batched loaders.
func (s *Service) Get(ctx context.Context, playlistID uuid.UUID) (domain.Playlist, error) {
	return s.playlists.GetByID(ctx, playlistID)
}

// ListForUser returns one page of a user's playlists with member aggregates.
func (s *Service) ListForUser(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (view.Page[domain.PlaylistSummary], error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return view.Page[domain.PlaylistSummary]{}, err
	}

	req := view.PageRequest{Page: page, PageSize: pageSize}.Normalize(s.cfg.MaxPageSize)
	return s.playlists.ListSummariesForUser(ctx, ownerID, req)
}

// Create makes a new empty playlist owned by the caller.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Playlist, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Playlist{}, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return domain.Playlist{}, err
	}

	return s.playlists.Create(ctx, domain.Playlist{
		ID:          uuid.New(),
		OwnerID:     userID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	})
}

// Update edits a playlist's name and description. Owner only.
func (s *Service) Update(ctx context.Context, in UpdateInput) (domain.Playlist, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Playlist{}, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return domain.Playlist{}, err
	}

	if _, err := s.requireOwned(ctx, in.PlaylistID, userID); err != nil {
		return domain.Playlist{}, err
	}

	return s.playlists.Update(ctx, in.PlaylistID, in.Name, in.Description)
}

// Delete removes a playlist and its membership rows in one transaction. The
// member videos themselves are untouched. Owner only.
func (s *Service) Delete(ctx context.Context, playlistID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if _, err := s.requireOwned(ctx, playlistID, userID); err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.playlists.DeleteMembers(txCtx, playlistID); err != nil {
			return fmt.Errorf("delete playlist members: %w", err)
		}
		if err := s.playlists.Delete(txCtx, playlistID); err != nil {
			return fmt.Errorf("delete playlist: %w", err)
		}
		return nil
	})
}

// AddVideo adds a video to the playlist's member set. Owner only. Adding a
// video that is already a member is a no-op, not an error.
func (s *Service) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if _, err := s.requireOwned(ctx, playlistID, userID); err != nil {
		return err
	}
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return err
	}

	added, err := s.playlists.AddVideo(ctx, playlistID, videoID)
	if err != nil {
		return err
	}
	if !added {
		s.log.DebugContext(ctx, "video already in playlist", "playlist_id", playlistID, "video_id", videoID)
	}
	return nil
}

// RemoveVideo removes a video from the playlist's member set. Owner only.
// Removing an absent member is a no-op.
func (s *Service) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if _, err := s.requireOwned(ctx, playlistID, userID); err != nil {
		return err
	}

	_, err := s.playlists.RemoveVideo(ctx, playlistID, videoID)
	return err
}
