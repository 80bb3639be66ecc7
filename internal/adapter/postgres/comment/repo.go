// Package comment implements the Comment repository using PostgreSQL.
package comment

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

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const commentColumns = `id, video_id, owner_id, content, created_at, updated_at`

const getCommentByIDSQL = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

const createCommentSQL = `
INSERT INTO comments (id, video_id, owner_id, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING ` + commentColumns

const updateCommentSQL = `
UPDATE comments SET content = $2, updated_at = $3 WHERE id = $1
RETURNING ` + commentColumns

const deleteCommentSQL = `DELETE FROM comments WHERE id = $1`

const deleteCommentsByVideoSQL = `DELETE FROM comments WHERE video_id = $1`

const listIDsByVideoSQL = `SELECT id FROM comments WHERE video_id = $1`

// GetByID returns a comment by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanComment(q.QueryRow(ctx, getCommentByIDSQL, id))
	if err != nil {
		return domain.Comment{}, postgres.MapError(err, "comment", id)
	}
	return c, nil
}

// ListForVideo returns one page of a video's comments, newest first, with
// like counts and the viewer's like flag folded in. viewerID may be nil.
func (r *Repo) ListForVideo(ctx context.Context, videoID uuid.UUID, viewerID *uuid.UUID, req view.PageRequest) (view.Page[domain.CommentView], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p := view.NewPipeline("comments c",
		"c.id", "c.content", "c.created_at",
		"u.id", "u.username", "u.full_name", "u.avatar_url",
	).
		Column(view.RelatedCount("likes l", "l.comment_id", "c.id"), "likes_count").
		Column(view.ViewerHasEdge("likes l", "l.comment_id", "c.id", "l.liked_by", viewerID), "is_liked").
		LeftJoin("users u ON u.id = c.owner_id").
		Where(sq.Eq{"c.video_id": videoID}).
		DefaultSort("c.created_at", true)

	page, err := view.FetchPage(ctx, q, p, req, func(rows pgx.Rows) (domain.CommentView, error) {
		var cv domain.CommentView
		err := rows.Scan(
			&cv.ID, &cv.Content, &cv.CreatedAt,
			&cv.Owner.ID, &cv.Owner.Username, &cv.Owner.FullName, &cv.Owner.AvatarURL,
			&cv.LikesCount, &cv.IsLiked,
		)
		return cv, err
	})
	if err != nil {
		return view.Page[domain.CommentView]{}, fmt.Errorf("list comments: %w", err)
	}
	return page, nil
}

// ListIDsByVideo returns the IDs of all comments on a video. The cascade
// sweep uses it to remove likes on those comments before the comments go.
func (r *Repo) ListIDsByVideo(ctx context.Context, videoID uuid.UUID) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listIDsByVideoSQL, videoID)
	if err != nil {
		return nil, fmt.Errorf("list comment ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan comment id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment ids: %w", err)
	}
	return ids, nil
}

// Create inserts a new comment. A missing video surfaces as ErrNotFound via
// the foreign key.
func (r *Repo) Create(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	row := q.QueryRow(ctx, createCommentSQL, c.ID, c.VideoID, c.OwnerID, c.Content, now)

	created, err := scanComment(row)
	if err != nil {
		return domain.Comment{}, postgres.MapError(err, "comment", c.ID)
	}
	return created, nil
}

// Update replaces the comment content.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, content string) (domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, updateCommentSQL, id, content, time.Now().UTC())
	c, err := scanComment(row)
	if err != nil {
		return domain.Comment{}, postgres.MapError(err, "comment", id)
	}
	return c, nil
}

// Delete removes a comment row. Its likes are swept by the owning service
// in the same transaction.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteCommentSQL, id)
	if err != nil {
		return postgres.MapError(err, "comment", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteByVideo removes all comments on a video (cascade sweep).
func (r *Repo) DeleteByVideo(ctx context.Context, videoID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, deleteCommentsByVideoSQL, videoID); err != nil {
		return fmt.Errorf("delete comments by video: %w", err)
	}
	return nil
}

func scanComment(row pgx.Row) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}
