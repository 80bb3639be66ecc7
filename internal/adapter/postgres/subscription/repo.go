// Package subscription implements the Subscription engagement-edge
// repository using PostgreSQL.
package subscription

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

// Repo provides subscription-edge persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new subscription repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertIfAbsentSQL = `
INSERT INTO subscriptions (id, subscriber_id, channel_id, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (subscriber_id, channel_id) DO NOTHING`

const deleteEdgeSQL = `
DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`

// InsertIfAbsent attempts to create the edge (subscriber, channel). The
// unique pair constraint arbitrates concurrent attempts. Returns true if
// this call created the edge. Self-subscription is rejected by a CHECK
// constraint and surfaces as domain.ErrValidation.
func (r *Repo) InsertIfAbsent(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, insertIfAbsentSQL, uuid.New(), subscriberID, channelID, time.Now().UTC())
	if err != nil {
		return false, postgres.MapError(err, "subscription", channelID)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteEdge removes the edge (subscriber, channel) if present. Returns true
// if an edge was removed.
func (r *Repo) DeleteEdge(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteEdgeSQL, subscriberID, channelID)
	if err != nil {
		return false, postgres.MapError(err, "subscription", channelID)
	}
	return tag.RowsAffected() == 1, nil
}

// ListSubscribers returns one page of users subscribed to a channel, most
// recent subscription first.
func (r *Repo) ListSubscribers(ctx context.Context, channelID uuid.UUID, req view.PageRequest) (view.Page[domain.OwnerSummary], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p := view.NewPipeline("subscriptions s",
		"u.id", "u.username", "u.full_name", "u.avatar_url",
	).
		LeftJoin("users u ON u.id = s.subscriber_id").
		Where(sq.Eq{"s.channel_id": channelID}).
		DefaultSort("s.created_at", true)

	page, err := view.FetchPage(ctx, q, p, req, scanOwnerSummary)
	if err != nil {
		return view.Page[domain.OwnerSummary]{}, fmt.Errorf("list subscribers: %w", err)
	}
	return page, nil
}

// ListSubscribedChannels returns one page of channels a user is subscribed
// to, most recent subscription first.
func (r *Repo) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, req view.PageRequest) (view.Page[domain.OwnerSummary], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p := view.NewPipeline("subscriptions s",
		"u.id", "u.username", "u.full_name", "u.avatar_url",
	).
		LeftJoin("users u ON u.id = s.channel_id").
		Where(sq.Eq{"s.subscriber_id": subscriberID}).
		DefaultSort("s.created_at", true)

	page, err := view.FetchPage(ctx, q, p, req, scanOwnerSummary)
	if err != nil {
		return view.Page[domain.OwnerSummary]{}, fmt.Errorf("list subscribed channels: %w", err)
	}
	return page, nil
}

func scanOwnerSummary(rows pgx.Rows) (domain.OwnerSummary, error) {
	var s domain.OwnerSummary
	err := rows.Scan(&s.ID, &s.Username, &s.FullName, &s.AvatarURL)
	return s, err
}
