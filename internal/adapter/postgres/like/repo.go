// Package like implements the Like engagement-edge repository using
// PostgreSQL.
package like

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

// Repo provides like-edge persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new like repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// targetColumn maps a target kind to its edge column. Kinds are validated
// at the service boundary; an unknown kind here is a programming error.
func targetColumn(kind domain.LikeTarget) (string, error) {
	switch kind {
	case domain.LikeTargetVideo:
		return "video_id", nil
	case domain.LikeTargetComment:
		return "comment_id", nil
	case domain.LikeTargetTweet:
		return "tweet_id", nil
	}
	return "", fmt.Errorf("unknown like target %q", kind)
}

// InsertIfAbsent attempts to create the edge (actor, target). The partial
// unique index on (liked_by, target) arbitrates concurrent attempts: exactly
// one insert wins, the rest are absorbed by ON CONFLICT DO NOTHING.
// Returns true if this call created the edge.
func (r *Repo) InsertIfAbsent(ctx context.Context, actorID uuid.UUID, kind domain.LikeTarget, targetID uuid.UUID) (bool, error) {
	col, err := targetColumn(kind)
	if err != nil {
		return false, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql := fmt.Sprintf(`
INSERT INTO likes (id, liked_by, %s, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (liked_by, %s) WHERE %s IS NOT NULL DO NOTHING`, col, col, col)

	tag, err := q.Exec(ctx, sql, uuid.New(), actorID, targetID, time.Now().UTC())
	if err != nil {
		return false, postgres.MapError(err, "like", targetID)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteEdge removes the edge (actor, target) if present. Returns true if an
// edge was removed.
func (r *Repo) DeleteEdge(ctx context.Context, actorID uuid.UUID, kind domain.LikeTarget, targetID uuid.UUID) (bool, error) {
	col, err := targetColumn(kind)
	if err != nil {
		return false, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql := fmt.Sprintf(`DELETE FROM likes WHERE liked_by = $1 AND %s = $2`, col)
	tag, err := q.Exec(ctx, sql, actorID, targetID)
	if err != nil {
		return false, postgres.MapError(err, "like", targetID)
	}
	return tag.RowsAffected() == 1, nil
}

// ---------------------------------------------------------------------------
// Cascade sweeps
// ---------------------------------------------------------------------------

// DeleteByTarget removes all edges pointing at one target row.
func (r *Repo) DeleteByTarget(ctx context.Context, kind domain.LikeTarget, targetID uuid.UUID) error {
	col, err := targetColumn(kind)
	if err != nil {
		return err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql := fmt.Sprintf(`DELETE FROM likes WHERE %s = $1`, col)
	if _, err := q.Exec(ctx, sql, targetID); err != nil {
		return fmt.Errorf("delete likes by %s: %w", kind, err)
	}
	return nil
}

// DeleteByComments removes all edges pointing at any of the given comments.
// The video cascade uses it for the second hop: likes on a deleted video's
// comments.
func (r *Repo) DeleteByComments(ctx context.Context, commentIDs []uuid.UUID) error {
	if len(commentIDs) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, `DELETE FROM likes WHERE comment_id = ANY($1::uuid[])`, commentIDs); err != nil {
		return fmt.Errorf("delete likes by comments: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// ListLikedVideos returns one page of videos the viewer has liked, most
// recently liked first.
func (r *Repo) ListLikedVideos(ctx context.Context, viewerID uuid.UUID, req view.PageRequest) (view.Page[domain.LikedVideoView], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p := view.NewPipeline("likes l",
		"v.id", "v.title", "v.description", "v.video_url", "v.thumbnail_url",
		"v.duration", "v.views", "v.is_published", "v.created_at",
		"u.id", "u.username", "u.full_name", "u.avatar_url",
	).
		LeftJoin("videos v ON v.id = l.video_id").
		LeftJoin("users u ON u.id = v.owner_id").
		Where(sq.Eq{"l.liked_by": viewerID}).
		Where(sq.Expr("l.video_id IS NOT NULL")).
		DefaultSort("l.created_at", true)

	page, err := view.FetchPage(ctx, q, p, req, func(rows pgx.Rows) (domain.LikedVideoView, error) {
		var lv domain.LikedVideoView
		err := rows.Scan(
			&lv.ID, &lv.Title, &lv.Description, &lv.VideoURL, &lv.ThumbnailURL,
			&lv.Duration, &lv.Views, &lv.IsPublished, &lv.CreatedAt,
			&lv.Owner.ID, &lv.Owner.Username, &lv.Owner.FullName, &lv.Owner.AvatarURL,
		)
		return lv, err
	})
	if err != nil {
		return view.Page[domain.LikedVideoView]{}, fmt.Errorf("list liked videos: %w", err)
	}
	return page, nil
}
