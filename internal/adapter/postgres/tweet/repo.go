// Package tweet implements the Tweet repository using PostgreSQL.
package tweet

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

// Repo provides tweet persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tweet repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const tweetColumns = `id, owner_id, content, created_at, updated_at`

const getTweetByIDSQL = `SELECT ` + tweetColumns + ` FROM tweets WHERE id = $1`

const createTweetSQL = `
INSERT INTO tweets (id, owner_id, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
RETURNING ` + tweetColumns

const updateTweetSQL = `
UPDATE tweets SET content = $2, updated_at = $3 WHERE id = $1
RETURNING ` + tweetColumns

const deleteTweetSQL = `DELETE FROM tweets WHERE id = $1`

// GetByID returns a tweet by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Tweet, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTweet(q.QueryRow(ctx, getTweetByIDSQL, id))
	if err != nil {
		return domain.Tweet{}, postgres.MapError(err, "tweet", id)
	}
	return t, nil
}

// ListForUser returns one page of a user's tweets, newest first, with like
// counts and the viewer's like flag. viewerID may be nil.
func (r *Repo) ListForUser(ctx context.Context, ownerID uuid.UUID, viewerID *uuid.UUID, req view.PageRequest) (view.Page[domain.TweetView], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p := view.NewPipeline("tweets t",
		"t.id", "t.content", "t.created_at",
		"u.id", "u.username", "u.full_name", "u.avatar_url",
	).
		Column(view.RelatedCount("likes l", "l.tweet_id", "t.id"), "likes_count").
		Column(view.ViewerHasEdge("likes l", "l.tweet_id", "t.id", "l.liked_by", viewerID), "is_liked").
		LeftJoin("users u ON u.id = t.owner_id").
		Where(sq.Eq{"t.owner_id": ownerID}).
		DefaultSort("t.created_at", true)

	page, err := view.FetchPage(ctx, q, p, req, func(rows pgx.Rows) (domain.TweetView, error) {
		var tv domain.TweetView
		err := rows.Scan(
			&tv.ID, &tv.Content, &tv.CreatedAt,
			&tv.Owner.ID, &tv.Owner.Username, &tv.Owner.FullName, &tv.Owner.AvatarURL,
			&tv.LikesCount, &tv.IsLiked,
		)
		return tv, err
	})
	if err != nil {
		return view.Page[domain.TweetView]{}, fmt.Errorf("list tweets: %w", err)
	}
	return page, nil
}

// Create inserts a new tweet.
func (r *Repo) Create(ctx context.Context, t domain.Tweet) (domain.Tweet, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	row := q.QueryRow(ctx, createTweetSQL, t.ID, t.OwnerID, t.Content, now)

	created, err := scanTweet(row)
	if err != nil {
		return domain.Tweet{}, postgres.MapError(err, "tweet", t.ID)
	}
	return created, nil
}

// Update replaces the tweet content.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, content string) (domain.Tweet, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, updateTweetSQL, id, content, time.Now().UTC())
	t, err := scanTweet(row)
	if err != nil {
		return domain.Tweet{}, postgres.MapError(err, "tweet", id)
	}
	return t, nil
}

// Delete removes a tweet row. Its likes are swept by the owning service in
// the same transaction.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteTweetSQL, id)
	if err != nil {
		return postgres.MapError(err, "tweet", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tweet %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanTweet(row pgx.Row) (domain.Tweet, error) {
	var t domain.Tweet
	err := row.Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Tweet{}, err
	}
	return t, nil
}
