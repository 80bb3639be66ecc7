package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

func TestRepo_Create_AndGetByEmail(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := user.New(pool)
	ctx := context.Background()

	suffix := uuid.New().String()[:8]
	created, err := repo.Create(ctx, domain.User{
		ID:           uuid.New(),
		Email:        "create-" + suffix + "@example.com",
		Username:     "create-" + suffix,
		FullName:     "Create Test",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByEmail(ctx, created.Email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Username, got.Username)
}

func TestRepo_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := user.New(pool)
	ctx := context.Background()

	existing := testhelper.SeedUser(t, pool)

	_, err := repo.Create(ctx, domain.User{
		ID:           uuid.New(),
		Email:        existing.Email,
		Username:     "other-" + uuid.New().String()[:8],
		FullName:     "Dup",
		PasswordHash: "$2a$10$hash",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRepo_GetByID_Missing(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := user.New(pool)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_ChannelProfile_Counts(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := user.New(pool)
	ctx := context.Background()

	channel := testhelper.SeedUser(t, pool)
	fan := testhelper.SeedUser(t, pool)
	idol := testhelper.SeedUser(t, pool)
	testhelper.SeedSubscription(t, pool, fan.ID, channel.ID)
	testhelper.SeedSubscription(t, pool, channel.ID, idol.ID)

	t.Run("anonymous viewer", func(t *testing.T) {
		p, err := repo.ChannelProfile(ctx, channel.Username, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, p.SubscribersCount)
		assert.Equal(t, 1, p.SubscribedToCount)
		assert.False(t, p.IsSubscribed)
	})

	t.Run("subscribed viewer", func(t *testing.T) {
		p, err := repo.ChannelProfile(ctx, channel.Username, &fan.ID)
		require.NoError(t, err)

		assert.True(t, p.IsSubscribed)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := repo.ChannelProfile(ctx, "nobody-"+uuid.New().String()[:8], nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRepo_GetSummariesByIDs_SkipsMissing(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := user.New(pool)
	ctx := context.Background()

	known := testhelper.SeedUser(t, pool)

	summaries, err := repo.GetSummariesByIDs(ctx, []uuid.UUID{known.ID, uuid.New()})
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	assert.Equal(t, known.ID, summaries[0].ID)
	assert.Equal(t, known.Username, summaries[0].Username)
}

func TestRepo_WatchHistory_RepeatViewRefreshes(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := user.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	viewer := testhelper.SeedUser(t, pool)
	first := testhelper.SeedVideo(t, pool, owner.ID)
	second := testhelper.SeedVideo(t, pool, owner.ID)

	require.NoError(t, repo.RecordWatch(ctx, viewer.ID, first.ID))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.RecordWatch(ctx, viewer.ID, second.ID))
	time.Sleep(10 * time.Millisecond)
	// Rewatching the first video moves it to the top, no duplicate row.
	require.NoError(t, repo.RecordWatch(ctx, viewer.ID, first.ID))

	items, total, err := repo.ListWatchHistory(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].Video.ID)
	assert.Equal(t, second.ID, items[1].Video.ID)
}

func TestRepo_DeleteWatchEntriesByVideo(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := user.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	viewer := testhelper.SeedUser(t, pool)
	deleted := testhelper.SeedVideo(t, pool, owner.ID)
	kept := testhelper.SeedVideo(t, pool, owner.ID)
	require.NoError(t, repo.RecordWatch(ctx, viewer.ID, deleted.ID))
	require.NoError(t, repo.RecordWatch(ctx, viewer.ID, kept.ID))

	require.NoError(t, repo.DeleteWatchEntriesByVideo(ctx, deleted.ID))

	items, total, err := repo.ListWatchHistory(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].Video.ID)
}
