// Package video implements the Video repository using PostgreSQL.
package video

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

// Repo provides video persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new video repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const videoColumns = `id, owner_id, title, description, video_url, video_storage_id, thumbnail_url, thumbnail_storage_id, duration, views, is_published, created_at, updated_at`

const getVideoByIDSQL = `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

const createVideoSQL = `
INSERT INTO videos (id, owner_id, title, description, video_url, video_storage_id, thumbnail_url, thumbnail_storage_id, duration, is_published, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
RETURNING ` + videoColumns

const updateVideoSQL = `
UPDATE videos
SET title = $2, description = $3, updated_at = $4
WHERE id = $1
RETURNING ` + videoColumns

const updateThumbnailSQL = `
UPDATE videos
SET thumbnail_url = $2, thumbnail_storage_id = $3, updated_at = $4
WHERE id = $1
RETURNING ` + videoColumns

const setPublishedSQL = `
UPDATE videos SET is_published = $2, updated_at = $3 WHERE id = $1
RETURNING ` + videoColumns

const deleteVideoSQL = `DELETE FROM videos WHERE id = $1`

const incrementViewsSQL = `UPDATE videos SET views = views + 1 WHERE id = $1`

// getVideoViewSQL is the personalized detail read: like count and the
// viewer's own like edge are folded in as subqueries, the owner's channel
// summary as a join plus subqueries. $2 is the viewer, NULL for anonymous.
const getVideoViewSQL = `
SELECT v.id, v.title, v.description, v.video_url, v.duration, v.views, v.created_at,
       (SELECT count(*) FROM likes l WHERE l.video_id = v.id),
       CASE WHEN $2::uuid IS NULL THEN FALSE
            ELSE EXISTS(SELECT 1 FROM likes l WHERE l.video_id = v.id AND l.liked_by = $2)
       END,
       u.id, u.username, u.full_name, u.avatar_url,
       (SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.id),
       CASE WHEN $2::uuid IS NULL THEN FALSE
            ELSE EXISTS(SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = $2)
       END
FROM videos v
JOIN users u ON u.id = v.owner_id
WHERE v.id = $1`

const channelStatsSQL = `
SELECT count(*),
       COALESCE(sum(v.views), 0),
       (SELECT count(*) FROM subscriptions s WHERE s.channel_id = $1),
       (SELECT count(*) FROM likes l JOIN videos lv ON lv.id = l.video_id WHERE lv.owner_id = $1)
FROM videos v
WHERE v.owner_id = $1`

// Filter narrows the public video listing. Zero values mean "no constraint";
// SortBy outside the allow-map falls back to newest-first.
type Filter struct {
	OwnerID       *uuid.UUID
	PublishedOnly bool
	Search        string
	SortBy        string
	SortDesc      bool
}

// listSortKeys is the allow-map from external sort keys to SQL columns.
var listSortKeys = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"duration":  "v.duration",
	"title":     "v.title",
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a video row by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Video, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	v, err := scanVideo(q.QueryRow(ctx, getVideoByIDSQL, id))
	if err != nil {
		return domain.Video{}, postgres.MapError(err, "video", id)
	}
	return v, nil
}

// List returns one page of the public video listing.
func (r *Repo) List(ctx context.Context, f Filter, req view.PageRequest) (view.Page[domain.VideoListItem], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p := view.NewPipeline("videos v",
		"v.id", "v.title", "v.description", "v.thumbnail_url", "v.duration", "v.views", "v.created_at",
		"u.id", "u.username", "u.full_name", "u.avatar_url",
	).
		LeftJoin("users u ON u.id = v.owner_id").
		Search(f.Search, "v.title", "v.description").
		SortKeys(listSortKeys).
		DefaultSort("v.created_at", true).
		OrderBy(f.SortBy, f.SortDesc)

	if f.PublishedOnly {
		p.Where(sq.Eq{"v.is_published": true})
	}
	if f.OwnerID != nil {
		p.Where(sq.Eq{"v.owner_id": *f.OwnerID})
	}

	page, err := view.FetchPage(ctx, q, p, req, scanVideoListItem)
	if err != nil {
		return view.Page[domain.VideoListItem]{}, fmt.Errorf("list videos: %w", err)
	}
	return page, nil
}

// GetView returns the viewer-personalized detail view of a video.
// viewerID may be nil for anonymous reads.
func (r *Repo) GetView(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (domain.VideoView, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var vv domain.VideoView
	err := q.QueryRow(ctx, getVideoViewSQL, id, viewerID).Scan(
		&vv.ID, &vv.Title, &vv.Description, &vv.VideoURL, &vv.Duration, &vv.Views, &vv.CreatedAt,
		&vv.LikesCount, &vv.IsLiked,
		&vv.Owner.ID, &vv.Owner.Username, &vv.Owner.FullName, &vv.Owner.AvatarURL,
		&vv.Owner.SubscribersCount, &vv.Owner.IsSubscribed,
	)
	if err != nil {
		return domain.VideoView{}, postgres.MapError(err, "video", id)
	}
	return vv, nil
}

// ChannelStats aggregates the dashboard numbers for a channel owner.
func (r *Repo) ChannelStats(ctx context.Context, ownerID uuid.UUID) (domain.ChannelStats, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var st domain.ChannelStats
	err := q.QueryRow(ctx, channelStatsSQL, ownerID).Scan(
		&st.TotalVideos, &st.TotalViews, &st.TotalSubscribers, &st.TotalLikes,
	)
	if err != nil {
		return domain.ChannelStats{}, fmt.Errorf("channel stats: %w", err)
	}
	return st, nil
}

// ChannelVideos returns one page of the owner's dashboard listing, including
// unpublished videos, with per-video like counts.
func (r *Repo) ChannelVideos(ctx context.Context, ownerID uuid.UUID, req view.PageRequest) (view.Page[domain.ChannelVideo], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p := view.NewPipeline("videos v",
		"v.id", "v.title", "v.thumbnail_url", "v.is_published", "v.views", "v.created_at",
	).
		Column(view.RelatedCount("likes l", "l.video_id", "v.id"), "likes_count").
		Where(sq.Eq{"v.owner_id": ownerID}).
		DefaultSort("v.created_at", true)

	page, err := view.FetchPage(ctx, q, p, req, func(rows pgx.Rows) (domain.ChannelVideo, error) {
		var cv domain.ChannelVideo
		err := rows.Scan(&cv.ID, &cv.Title, &cv.ThumbnailURL, &cv.IsPublished, &cv.Views, &cv.CreatedAt, &cv.LikesCount)
		return cv, err
	})
	if err != nil {
		return view.Page[domain.ChannelVideo]{}, fmt.Errorf("channel videos: %w", err)
	}
	return page, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new video row.
func (r *Repo) Create(ctx context.Context, v domain.Video) (domain.Video, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	row := q.QueryRow(ctx, createVideoSQL,
		v.ID, v.OwnerID, v.Title, v.Description,
		v.VideoFile.URL, v.VideoFile.StorageID,
		v.Thumbnail.URL, v.Thumbnail.StorageID,
		v.Duration, v.IsPublished, now,
	)

	created, err := scanVideo(row)
	if err != nil {
		return domain.Video{}, postgres.MapError(err, "video", v.ID)
	}
	return created, nil
}

// Update replaces title and description.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, title, description string) (domain.Video, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, updateVideoSQL, id, title, description, time.Now().UTC())
	v, err := scanVideo(row)
	if err != nil {
		return domain.Video{}, postgres.MapError(err, "video", id)
	}
	return v, nil
}

// UpdateThumbnail swaps the thumbnail media reference.
func (r *Repo) UpdateThumbnail(ctx context.Context, id uuid.UUID, thumb domain.MediaRef) (domain.Video, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, updateThumbnailSQL, id, thumb.URL, thumb.StorageID, time.Now().UTC())
	v, err := scanVideo(row)
	if err != nil {
		return domain.Video{}, postgres.MapError(err, "video", id)
	}
	return v, nil
}

// SetPublished flips the publish flag.
func (r *Repo) SetPublished(ctx context.Context, id uuid.UUID, published bool) (domain.Video, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, setPublishedSQL, id, published, time.Now().UTC())
	v, err := scanVideo(row)
	if err != nil {
		return domain.Video{}, postgres.MapError(err, "video", id)
	}
	return v, nil
}

// Delete removes the video row itself. Dependent rows (likes, comments,
// playlist membership, watch history) are swept by the owning service inside
// one transaction before this call.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteVideoSQL, id)
	if err != nil {
		return postgres.MapError(err, "video", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// IncrementViews bumps the view counter by one.
func (r *Repo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, incrementViewsSQL, id); err != nil {
		return postgres.MapError(err, "video", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanVideo(row pgx.Row) (domain.Video, error) {
	var v domain.Video
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description,
		&v.VideoFile.URL, &v.VideoFile.StorageID,
		&v.Thumbnail.URL, &v.Thumbnail.StorageID,
		&v.Duration, &v.Views, &v.IsPublished,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return domain.Video{}, err
	}
	return v, nil
}

func scanVideoListItem(rows pgx.Rows) (domain.VideoListItem, error) {
	var it domain.VideoListItem
	err := rows.Scan(
		&it.ID, &it.Title, &it.Description, &it.ThumbnailURL, &it.Duration, &it.Views, &it.CreatedAt,
		&it.Owner.ID, &it.Owner.Username, &it.Owner.FullName, &it.Owner.AvatarURL,
	)
	if err != nil {
		return domain.VideoListItem{}, err
	}
	return it, nil
}
