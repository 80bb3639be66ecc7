package subscription_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/subscription"
	"github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

func TestRepo_InsertIfAbsent_UniquePair(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := subscription.New(pool)
	ctx := context.Background()

	fan := testhelper.SeedUser(t, pool)
	channel := testhelper.SeedUser(t, pool)

	created, err := repo.InsertIfAbsent(ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.InsertIfAbsent(ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	assert.False(t, created, "duplicate edge is absorbed, not an error")
}

func TestRepo_InsertIfAbsent_SelfSubscriptionRejectedBySchema(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := subscription.New(pool)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)

	_, err := repo.InsertIfAbsent(ctx, u.ID, u.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRepo_DeleteEdge(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := subscription.New(pool)
	ctx := context.Background()

	fan := testhelper.SeedUser(t, pool)
	channel := testhelper.SeedUser(t, pool)
	testhelper.SeedSubscription(t, pool, fan.ID, channel.ID)

	removed, err := repo.DeleteEdge(ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.DeleteEdge(ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepo_ListSubscribers_And_Channels(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := subscription.New(pool)
	ctx := context.Background()

	channel := testhelper.SeedUser(t, pool)
	fan := testhelper.SeedUser(t, pool)
	bystander := testhelper.SeedUser(t, pool)
	testhelper.SeedSubscription(t, pool, fan.ID, channel.ID)

	subs, err := repo.ListSubscribers(ctx, channel.ID, view.PageRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, subs.Items, 1)
	assert.Equal(t, fan.ID, subs.Items[0].ID)
	assert.Equal(t, fan.Username, subs.Items[0].Username)

	channels, err := repo.ListSubscribedChannels(ctx, fan.ID, view.PageRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, channels.Items, 1)
	assert.Equal(t, channel.ID, channels.Items[0].ID)

	none, err := repo.ListSubscribedChannels(ctx, bystander.ID, view.PageRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
	assert.Equal(t, 0, none.TotalItems)
}
