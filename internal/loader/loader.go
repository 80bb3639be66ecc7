// Package loader provides per-request DataLoaders for batching nested view
// assembly into single SQL calls. Loaders call repositories directly,
// bypassing the service layer; the flat rows they fetch are regrouped by
// parent key before being handed back.
package loader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/playlist"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// ---------------------------------------------------------------------------
// Repository interfaces (consumer-defined)
// ---------------------------------------------------------------------------

type userRepo interface {
	GetSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.OwnerSummary, error)
}

type playlistRepo interface {
	MemberVideosByPlaylistIDs(ctx context.Context, playlistIDs []uuid.UUID) ([]playlist.MemberRow, error)
}

// Repos holds all repositories required by the loaders.
type Repos struct {
	User     userRepo
	Playlist playlistRepo
}

// Loaders contains the per-request DataLoader instances. Created per-request
// via NewLoaders (loaders cache results within a single request).
type Loaders struct {
	OwnerByID                *dataloader.Loader[uuid.UUID, *domain.OwnerSummary]
	MemberVideosByPlaylistID *dataloader.Loader[uuid.UUID, []domain.PlaylistVideo]
}

// NewLoaders creates a new set of loaders backed by the given repositories.
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		OwnerByID:                newLoader(newOwnersBatchFn(repos.User)),
		MemberVideosByPlaylistID: newLoader(newMemberVideosBatchFn(repos.Playlist)),
	}
}

// newLoader creates a dataloader.Loader with standard batch parameters.
func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Batch functions
// ---------------------------------------------------------------------------

// newOwnersBatchFn loads public owner summaries by user ID (1:1, nil for a
// missing user).
func newOwnersBatchFn(repo userRepo) dataloader.BatchFunc[uuid.UUID, *domain.OwnerSummary] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.OwnerSummary] {
		summaries, err := repo.GetSummariesByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.OwnerSummary](len(keys), err)
		}

		byID := make(map[uuid.UUID]*domain.OwnerSummary, len(summaries))
		for i := range summaries {
			s := summaries[i] // copy to avoid aliasing
			byID[s.ID] = &s
		}

		results := make([]*dataloader.Result[*domain.OwnerSummary], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.OwnerSummary]{Data: byID[key]}
		}
		return results
	}
}

// newMemberVideosBatchFn loads published member videos by playlist ID. The
// repository returns flat (playlist, video) rows; they are regrouped by
// playlist here, preserving insertion order.
func newMemberVideosBatchFn(repo playlistRepo) dataloader.BatchFunc[uuid.UUID, []domain.PlaylistVideo] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.PlaylistVideo] {
		rows, err := repo.MemberVideosByPlaylistIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.PlaylistVideo](len(keys), err)
		}

		grouped := make(map[uuid.UUID][]domain.PlaylistVideo, len(keys))
		for _, r := range rows {
			grouped[r.PlaylistID] = append(grouped[r.PlaylistID], r.Video)
		}

		return mapResults(keys, grouped, emptySlice[domain.PlaylistVideo])
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// errorResults returns a slice of error results for all keys.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[V any](keys []uuid.UUID, grouped map[uuid.UUID]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}

// emptySlice returns a non-nil empty slice.
func emptySlice[T any]() []T {
	return []T{}
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("loader: loaders not found in context, is middleware configured?")
	}
	return l
}
