package like_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/like"
	"github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

func TestRepo_InsertIfAbsent_FirstInsertWins(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := like.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	viewer := testhelper.SeedUser(t, pool)
	video := testhelper.SeedVideo(t, pool, owner.ID)

	created, err := repo.InsertIfAbsent(ctx, viewer.ID, domain.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.True(t, created)

	// Second attempt is absorbed by the partial unique index.
	created, err = repo.InsertIfAbsent(ctx, viewer.ID, domain.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var n int
	err = pool.QueryRow(ctx,
		`SELECT count(*) FROM likes WHERE liked_by = $1 AND video_id = $2`,
		viewer.ID, video.ID,
	).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRepo_EdgesIndependentPerTargetKind(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := like.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	viewer := testhelper.SeedUser(t, pool)
	video := testhelper.SeedVideo(t, pool, owner.ID)
	comment := testhelper.SeedComment(t, pool, video.ID, owner.ID)
	tweet := testhelper.SeedTweet(t, pool, owner.ID)

	created, err := repo.InsertIfAbsent(ctx, viewer.ID, domain.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.InsertIfAbsent(ctx, viewer.ID, domain.LikeTargetComment, comment.ID)
	require.NoError(t, err)
	assert.True(t, created, "comment edge must not collide with video edge")

	created, err = repo.InsertIfAbsent(ctx, viewer.ID, domain.LikeTargetTweet, tweet.ID)
	require.NoError(t, err)
	assert.True(t, created, "tweet edge must not collide with other kinds")
}

func TestRepo_DeleteEdge(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := like.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	viewer := testhelper.SeedUser(t, pool)
	video := testhelper.SeedVideo(t, pool, owner.ID)
	testhelper.SeedVideoLike(t, pool, viewer.ID, video.ID)

	removed, err := repo.DeleteEdge(ctx, viewer.ID, domain.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// Absent edge deletes nothing.
	removed, err = repo.DeleteEdge(ctx, viewer.ID, domain.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepo_DeleteByTarget_SweepsAllActors(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := like.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	first := testhelper.SeedUser(t, pool)
	second := testhelper.SeedUser(t, pool)
	video := testhelper.SeedVideo(t, pool, owner.ID)
	testhelper.SeedVideoLike(t, pool, first.ID, video.ID)
	testhelper.SeedVideoLike(t, pool, second.ID, video.ID)

	require.NoError(t, repo.DeleteByTarget(ctx, domain.LikeTargetVideo, video.ID))

	var n int
	err := pool.QueryRow(ctx, `SELECT count(*) FROM likes WHERE video_id = $1`, video.ID).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRepo_DeleteByComments(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := like.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	viewer := testhelper.SeedUser(t, pool)
	video := testhelper.SeedVideo(t, pool, owner.ID)
	c1 := testhelper.SeedComment(t, pool, video.ID, owner.ID)
	c2 := testhelper.SeedComment(t, pool, video.ID, owner.ID)
	kept := testhelper.SeedComment(t, pool, video.ID, owner.ID)
	testhelper.SeedCommentLike(t, pool, viewer.ID, c1.ID)
	testhelper.SeedCommentLike(t, pool, viewer.ID, c2.ID)
	testhelper.SeedCommentLike(t, pool, viewer.ID, kept.ID)

	require.NoError(t, repo.DeleteByComments(ctx, []uuid.UUID{c1.ID, c2.ID}))

	var swept int
	err := pool.QueryRow(ctx, `SELECT count(*) FROM likes WHERE comment_id IN ($1, $2)`, c1.ID, c2.ID).Scan(&swept)
	require.NoError(t, err)
	assert.Equal(t, 0, swept)

	var remaining int
	err = pool.QueryRow(ctx, `SELECT count(*) FROM likes WHERE comment_id = $1`, kept.ID).Scan(&remaining)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining, "likes on untouched comments must survive the sweep")
}

func TestRepo_ListLikedVideos_ScopedToViewer(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := like.New(pool)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	viewer := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	liked := testhelper.SeedVideo(t, pool, owner.ID)
	notLiked := testhelper.SeedVideo(t, pool, owner.ID)
	testhelper.SeedVideoLike(t, pool, viewer.ID, liked.ID)
	testhelper.SeedVideoLike(t, pool, other.ID, notLiked.ID)

	page, err := repo.ListLikedVideos(ctx, viewer.ID, view.PageRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, liked.ID, page.Items[0].ID)
	assert.Equal(t, owner.Username, page.Items[0].Owner.Username)
	assert.Equal(t, 1, page.TotalItems)
}
