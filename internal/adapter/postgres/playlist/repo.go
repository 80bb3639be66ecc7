// Package playlist implements the Playlist repository using PostgreSQL.
package playlist

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/viewtube-backend/internal/adapter/postgres"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

// Repo provides playlist persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new playlist repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const playlistColumns = `id, owner_id, name, description, created_at, updated_at`

const getPlaylistByIDSQL = `SELECT ` + playlistColumns + ` FROM playlists WHERE id = $1`

const createPlaylistSQL = `
INSERT INTO playlists (id, owner_id, name, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING ` + playlistColumns

const updatePlaylistSQL = `
UPDATE playlists SET name = $2, description = $3, updated_at = $4 WHERE id = $1
RETURNING ` + playlistColumns

const deletePlaylistSQL = `DELETE FROM playlists WHERE id = $1`

const addVideoSQL = `
INSERT INTO playlist_videos (playlist_id, video_id, added_at)
VALUES ($1, $2, $3)
ON CONFLICT (playlist_id, video_id) DO NOTHING`

const removeVideoSQL = `
DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`

const deleteMembersSQL = `DELETE FROM playlist_videos WHERE playlist_id = $1`

const deleteMembershipByVideoSQL = `DELETE FROM playlist_videos WHERE video_id = $1`

// memberVideosSQL is the flatten stage of the playlist detail view: one row
// per (playlist, published member video), ordered by insertion time. The
// service regroups the flat rows into playlists and recomputes aggregates
// over what actually expanded.
const memberVideosSQL = `
SELECT pv.playlist_id,
       v.id, v.title, v.description, v.video_url, v.thumbnail_url, v.duration, v.views, v.created_at
FROM playlist_videos pv
JOIN videos v ON v.id = pv.video_id
WHERE pv.playlist_id = ANY($1::uuid[]) AND v.is_published
ORDER BY pv.playlist_id, pv.added_at`

// MemberRow is one flattened (playlist, member video) pair.
type MemberRow struct {
	PlaylistID uuid.UUID
	Video      domain.PlaylistVideo
}

// GetByID returns a playlist by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Playlist, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPlaylist(q.QueryRow(ctx, getPlaylistByIDSQL, id))
	if err != nil {
		return domain.Playlist{}, postgres.MapError(err, "playlist", id)
	}
	return p, nil
}

// ListSummariesForUser returns one page of a user's playlists with member
// aggregates recomputed: count over published members, view sum over the
// same set. An empty playlist aggregates to zeros, not NULLs.
func (r *Repo) ListSummariesForUser(ctx context.Context, ownerID uuid.UUID, req view.PageRequest) (view.Page[domain.PlaylistSummary], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	members := "playlist_videos pv JOIN videos v ON v.id = pv.video_id AND v.is_published"

	p := view.NewPipeline("playlists p",
		"p.id", "p.name", "p.description", "p.updated_at",
	).
		Column(view.RelatedCount(members, "pv.playlist_id", "p.id"), "total_videos").
		Column(view.RelatedSum(members, "v.views", "pv.playlist_id", "p.id"), "total_views").
		Where(sq.Eq{"p.owner_id": ownerID}).
		DefaultSort("p.updated_at", true)

	page, err := view.FetchPage(ctx, q, p, req, func(rows pgx.Rows) (domain.PlaylistSummary, error) {
		var ps domain.PlaylistSummary
		err := rows.Scan(&ps.ID, &ps.Name, &ps.Description, &ps.UpdatedAt, &ps.TotalVideos, &ps.TotalViews)
		return ps, err
	})
	if err != nil {
		return view.Page[domain.PlaylistSummary]{}, fmt.Errorf("list playlists: %w", err)
	}
	return page, nil
}

// MemberVideosByPlaylistIDs returns the flattened published member videos
// for a batch of playlists (detail view and DataLoader backing query).
func (r *Repo) MemberVideosByPlaylistIDs(ctx context.Context, playlistIDs []uuid.UUID) ([]MemberRow, error) {
	if len(playlistIDs) == 0 {
		return []MemberRow{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, memberVideosSQL, playlistIDs)
	if err != nil {
		return nil, fmt.Errorf("list playlist members: %w", err)
	}
	defer rows.Close()

	var res []MemberRow
	for rows.Next() {
		var m MemberRow
		if err := rows.Scan(
			&m.PlaylistID,
			&m.Video.ID, &m.Video.Title, &m.Video.Description, &m.Video.VideoURL,
			&m.Video.ThumbnailURL, &m.Video.Duration, &m.Video.Views, &m.Video.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan playlist member: %w", err)
		}
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist members: %w", err)
	}

	if res == nil {
		res = []MemberRow{}
	}
	return res, nil
}

// Create inserts a new playlist.
func (r *Repo) Create(ctx context.Context, p domain.Playlist) (domain.Playlist, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	row := q.QueryRow(ctx, createPlaylistSQL, p.ID, p.OwnerID, p.Name, p.Description, now)

	created, err := scanPlaylist(row)
	if err != nil {
		return domain.Playlist{}, postgres.MapError(err, "playlist", p.ID)
	}
	return created, nil
}

// Update replaces name and description.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, name, description string) (domain.Playlist, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, updatePlaylistSQL, id, name, description, time.Now().UTC())
	p, err := scanPlaylist(row)
	if err != nil {
		return domain.Playlist{}, postgres.MapError(err, "playlist", id)
	}
	return p, nil
}

// Delete removes a playlist row. Membership rows are swept first by the
// owning service in the same transaction.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deletePlaylistSQL, id)
	if err != nil {
		return postgres.MapError(err, "playlist", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("playlist %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// AddVideo adds a video to the playlist's member set. Adding a member that
// is already present is a no-op, not an error. Returns true if the set grew.
func (r *Repo) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, addVideoSQL, playlistID, videoID, time.Now().UTC())
	if err != nil {
		return false, postgres.MapError(err, "playlist_video", videoID)
	}
	return tag.RowsAffected() == 1, nil
}

// RemoveVideo removes a video from the member set. Removing an absent member
// is a no-op. Returns true if the set shrank.
func (r *Repo) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, removeVideoSQL, playlistID, videoID)
	if err != nil {
		return false, postgres.MapError(err, "playlist_video", videoID)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteMembers removes all membership rows of one playlist (cascade sweep
// on playlist deletion).
func (r *Repo) DeleteMembers(ctx context.Context, playlistID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, deleteMembersSQL, playlistID); err != nil {
		return fmt.Errorf("delete playlist members: %w", err)
	}
	return nil
}

// DeleteMembershipByVideo removes a video from every playlist it belongs to
// (cascade sweep on video deletion).
func (r *Repo) DeleteMembershipByVideo(ctx context.Context, videoID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, deleteMembershipByVideoSQL, videoID); err != nil {
		return fmt.Errorf("delete playlist membership by video: %w", err)
	}
	return nil
}

func scanPlaylist(row pgx.Row) (domain.Playlist, error) {
	var p domain.Playlist
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Playlist{}, err
	}
	return p, nil
}
