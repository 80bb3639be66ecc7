package comment_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/comment"
	"github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

func TestRepo_ListForVideo_Personalization(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := comment.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	fan := testhelper.SeedUser(t, pool)
	bystander := testhelper.SeedUser(t, pool)
	video := testhelper.SeedVideo(t, pool, owner.ID)
	c := testhelper.SeedComment(t, pool, video.ID, owner.ID)
	testhelper.SeedCommentLike(t, pool, fan.ID, c.ID)

	req := view.PageRequest{Page: 1, PageSize: 10}

	t.Run("liking viewer", func(t *testing.T) {
		page, err := repo.ListForVideo(ctx, video.ID, &fan.ID, req)
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, c.ID, page.Items[0].ID)
		assert.Equal(t, 1, page.Items[0].LikesCount)
		assert.True(t, page.Items[0].IsLiked)
		assert.Equal(t, owner.Username, page.Items[0].Owner.Username)
	})

	t.Run("unrelated viewer", func(t *testing.T) {
		page, err := repo.ListForVideo(ctx, video.ID, &bystander.ID, req)
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, 1, page.Items[0].LikesCount)
		assert.False(t, page.Items[0].IsLiked)
	})

	t.Run("anonymous viewer", func(t *testing.T) {
		page, err := repo.ListForVideo(ctx, video.ID, nil, req)
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, 1, page.Items[0].LikesCount, "counts are not personalized")
		assert.False(t, page.Items[0].IsLiked)
	})
}

func TestRepo_ListForVideo_NewestFirstAndScoped(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := comment.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	video := testhelper.SeedVideo(t, pool, owner.ID)
	other := testhelper.SeedVideo(t, pool, owner.ID)

	older := testhelper.SeedComment(t, pool, video.ID, owner.ID)
	time.Sleep(10 * time.Millisecond)
	newer := testhelper.SeedComment(t, pool, video.ID, owner.ID)
	testhelper.SeedComment(t, pool, other.ID, owner.ID)

	page, err := repo.ListForVideo(ctx, video.ID, nil, view.PageRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, page.Items, 2, "comments on other videos stay out")
	assert.Equal(t, newer.ID, page.Items[0].ID)
	assert.Equal(t, older.ID, page.Items[1].ID)
	assert.Equal(t, 2, page.TotalItems)
}

func TestRepo_CreateGetUpdateDelete(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := comment.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	video := testhelper.SeedVideo(t, pool, owner.ID)

	created, err := repo.Create(ctx, domain.Comment{
		ID:      uuid.New(),
		VideoID: video.ID,
		OwnerID: owner.ID,
		Content: "first",
	})
	require.NoError(t, err)
	assert.Equal(t, "first", created.Content)

	updated, err := repo.Update(ctx, created.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_Create_MissingVideo(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := comment.New(pool)

	owner := testhelper.SeedUser(t, pool)

	_, err := repo.Create(context.Background(), domain.Comment{
		ID:      uuid.New(),
		VideoID: uuid.New(),
		OwnerID: owner.ID,
		Content: "orphan",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "foreign key violation maps to not-found")
}

func TestRepo_DeleteByVideo_SweepsAllComments(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := comment.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	video := testhelper.SeedVideo(t, pool, owner.ID)
	untouched := testhelper.SeedVideo(t, pool, owner.ID)
	c1 := testhelper.SeedComment(t, pool, video.ID, owner.ID)
	c2 := testhelper.SeedComment(t, pool, video.ID, owner.ID)
	kept := testhelper.SeedComment(t, pool, untouched.ID, owner.ID)

	ids, err := repo.ListIDsByVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{c1.ID, c2.ID}, ids)

	require.NoError(t, repo.DeleteByVideo(ctx, video.ID))

	var n int
	err = pool.QueryRow(ctx, `SELECT count(*) FROM comments WHERE video_id = $1`, video.ID).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = repo.GetByID(ctx, kept.ID)
	assert.NoError(t, err, "comments on other videos survive the sweep")
}

func TestRepo_Delete_Missing(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := comment.New(pool)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
