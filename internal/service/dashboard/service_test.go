package dashboard

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/viewtube-backend/internal/config"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

type mockVideoRepo struct {
	ChannelStatsFunc  func(ctx context.Context, ownerID uuid.UUID) (domain.ChannelStats, error)
	ChannelVideosFunc func(ctx context.Context, ownerID uuid.UUID, req view.PageRequest) (view.Page[domain.ChannelVideo], error)
}

func (m *mockVideoRepo) ChannelStats(ctx context.Context, ownerID uuid.UUID) (domain.ChannelStats, error) {
	if m.ChannelStatsFunc != nil {
		return m.ChannelStatsFunc(ctx, ownerID)
	}
	return domain.ChannelStats{}, nil
}

func (m *mockVideoRepo) ChannelVideos(ctx context.Context, ownerID uuid.UUID, req view.PageRequest) (view.Page[domain.ChannelVideo], error) {
	if m.ChannelVideosFunc != nil {
		return m.ChannelVideosFunc(ctx, ownerID, req)
	}
	return view.NewPage[domain.ChannelVideo](nil, req, 0), nil
}

func newTestService() (*Service, *mockVideoRepo) {
	videos := &mockVideoRepo{}
	svc := NewService(slog.Default(), videos, config.PaginationConfig{MaxPageSize: 100})
	return svc, videos
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func TestService_Stats_ScopedToCaller(t *testing.T) {
	svc, videos := newTestService()
	userID := uuid.New()

	var gotOwner uuid.UUID
	videos.ChannelStatsFunc = func(ctx context.Context, ownerID uuid.UUID) (domain.ChannelStats, error) {
		gotOwner = ownerID
		return domain.ChannelStats{TotalVideos: 3, TotalViews: 1200}, nil
	}

	st, err := svc.Stats(authedCtx(userID))
	require.NoError(t, err)

	assert.Equal(t, userID, gotOwner)
	assert.Equal(t, 3, st.TotalVideos)
	assert.Equal(t, int64(1200), st.TotalViews)
}

func TestService_Stats_NoAuth(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Stats(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_Videos_NormalizesPagination(t *testing.T) {
	svc, videos := newTestService()

	var gotReq view.PageRequest
	videos.ChannelVideosFunc = func(ctx context.Context, ownerID uuid.UUID, req view.PageRequest) (view.Page[domain.ChannelVideo], error) {
		gotReq = req
		return view.NewPage[domain.ChannelVideo](nil, req, 0), nil
	}

	_, err := svc.Videos(authedCtx(uuid.New()), 0, 5000)
	require.NoError(t, err)

	assert.Equal(t, 1, gotReq.Page)
	assert.Equal(t, 100, gotReq.PageSize)
}

func TestService_Videos_NoAuth(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Videos(context.Background(), 1, 10)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
