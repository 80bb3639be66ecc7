// Package subscription implements the subscribe toggle and subscription
// listing logic.
package subscription

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

type subscriptionRepo interface {
	InsertIfAbsent(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	DeleteEdge(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	ListSubscribers(ctx context.Context, channelID uuid.UUID, req view.PageRequest) (view.Page[domain.OwnerSummary], error)
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, req view.PageRequest) (view.Page[domain.OwnerSummary], error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the subscription business logic.
type Service struct {
	log   *slog.Logger
	subs  subscriptionRepo
	users userRepo
	cfg   config.PaginationConfig
}

// NewService creates a new Subscription service.
func NewService(logger *slog.Logger, subs subscriptionRepo, users userRepo, cfg config.PaginationConfig) *Service {
	return &Service{
		log:   logger.With("service", "subscription"),
		subs:  subs,
		users: users,
		cfg:   cfg,
	}
}
