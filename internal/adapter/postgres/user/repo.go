// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/viewtube-backend/internal/adapter/postgres"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, email, username, full_name, avatar_url, avatar_storage_id, cover_url, password_hash, created_at, updated_at`

const getUserByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

const getUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

const createUserSQL = `
INSERT INTO users (id, email, username, full_name, avatar_url, avatar_storage_id, cover_url, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
RETURNING ` + userColumns

// channelProfileSQL assembles the viewer-personalized public profile in one
// query: subscriber counts from both directions of the subscriptions
// relation plus the viewer's own edge.
const channelProfileSQL = `
SELECT u.id, u.username, u.full_name, u.avatar_url, u.cover_url,
       (SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.id),
       (SELECT count(*) FROM subscriptions s WHERE s.subscriber_id = u.id),
       CASE WHEN $2::uuid IS NULL THEN FALSE
            ELSE EXISTS(SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = $2)
       END
FROM users u
WHERE u.username = $1`

const getSummariesByIDsSQL = `
SELECT id, username, full_name, avatar_url FROM users WHERE id = ANY($1::uuid[])`

const upsertWatchEntrySQL = `
INSERT INTO watch_history (user_id, video_id, watched_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = EXCLUDED.watched_at`

const countWatchHistorySQL = `SELECT count(*) FROM watch_history WHERE user_id = $1`

const listWatchHistorySQL = `
SELECT v.id, v.title, v.description, v.thumbnail_url, v.duration, v.views, v.created_at,
       u.id, u.username, u.full_name, u.avatar_url,
       wh.watched_at
FROM watch_history wh
JOIN videos v ON v.id = wh.video_id
JOIN users u ON u.id = v.owner_id
WHERE wh.user_id = $1
ORDER BY wh.watched_at DESC
LIMIT $2 OFFSET $3`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getUserByIDSQL, id))
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByEmail returns a user by email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getUserByEmailSQL, email))
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// ChannelProfile returns the viewer-personalized public profile for a
// username. viewerID may be nil for anonymous reads.
func (r *Repo) ChannelProfile(ctx context.Context, username string, viewerID *uuid.UUID) (domain.ChannelProfile, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.ChannelProfile
	err := q.QueryRow(ctx, channelProfileSQL, username, viewerID).Scan(
		&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.CoverURL,
		&p.SubscribersCount, &p.SubscribedToCount, &p.IsSubscribed,
	)
	if err != nil {
		return domain.ChannelProfile{}, postgres.MapError(err, "user", uuid.Nil)
	}
	return p, nil
}

// GetSummariesByIDs returns public summaries for a batch of user IDs
// (DataLoader backing query). Missing IDs are simply absent from the result.
func (r *Repo) GetSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.OwnerSummary, error) {
	if len(ids) == 0 {
		return []domain.OwnerSummary{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, getSummariesByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("get user summaries: %w", err)
	}
	defer rows.Close()

	var res []domain.OwnerSummary
	for rows.Next() {
		var s domain.OwnerSummary
		if err := rows.Scan(&s.ID, &s.Username, &s.FullName, &s.AvatarURL); err != nil {
			return nil, fmt.Errorf("scan user summary: %w", err)
		}
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user summaries: %w", err)
	}

	if res == nil {
		res = []domain.OwnerSummary{}
	}
	return res, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new user. Duplicate email or username results in
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	row := q.QueryRow(ctx, createUserSQL,
		u.ID, u.Email, u.Username, u.FullName,
		u.AvatarURL, u.AvatarStorageID, u.CoverURL, u.PasswordHash, now,
	)

	created, err := scanUser(row)
	if err != nil {
		return domain.User{}, postgres.MapError(err, "user", u.ID)
	}
	return created, nil
}

// ---------------------------------------------------------------------------
// Watch history
// ---------------------------------------------------------------------------

// RecordWatch appends a video to the user's watch history. A repeat view
// refreshes watched_at instead of producing a duplicate entry.
func (r *Repo) RecordWatch(ctx context.Context, userID, videoID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC()
	if _, err := q.Exec(ctx, upsertWatchEntrySQL, userID, videoID, now); err != nil {
		return postgres.MapError(err, "watch_history", videoID)
	}
	return nil
}

// ListWatchHistory returns the user's watch history, most recent first.
// Returns items and the total count of history entries.
func (r *Repo) ListWatchHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.WatchHistoryItem, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, countWatchHistorySQL, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count watch_history: %w", err)
	}

	rows, err := q.Query(ctx, listWatchHistorySQL, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list watch_history: %w", err)
	}
	defer rows.Close()

	var items []domain.WatchHistoryItem
	for rows.Next() {
		var it domain.WatchHistoryItem
		if err := rows.Scan(
			&it.Video.ID, &it.Video.Title, &it.Video.Description, &it.Video.ThumbnailURL,
			&it.Video.Duration, &it.Video.Views, &it.Video.CreatedAt,
			&it.Video.Owner.ID, &it.Video.Owner.Username, &it.Video.Owner.FullName, &it.Video.Owner.AvatarURL,
			&it.WatchedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan watch_history row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate watch_history: %w", err)
	}

	if items == nil {
		items = []domain.WatchHistoryItem{}
	}
	return items, total, nil
}

// DeleteWatchEntriesByVideo removes all history rows pointing at a video
// (cascade sweep on video deletion).
func (r *Repo) DeleteWatchEntriesByVideo(ctx context.Context, videoID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, `DELETE FROM watch_history WHERE video_id = $1`, videoID); err != nil {
		return fmt.Errorf("delete watch_history by video: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.FullName,
		&u.AvatarURL, &u.AvatarStorageID, &u.CoverURL, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
