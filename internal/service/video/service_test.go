package video

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vrepo "github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/video"
	"github.com/heartmarshall/viewtube-backend/internal/config"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
	"github.com/heartmarshall/viewtube-backend/internal/view"
	"github.com/heartmarshall/viewtube-backend/pkg/ctxutil"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockVideoRepo struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (domain.Video, error)
	ListFunc            func(ctx context.Context, f vrepo.Filter, req view.PageRequest) (view.Page[domain.VideoListItem], error)
	GetViewFunc         func(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (domain.VideoView, error)
	CreateFunc          func(ctx context.Context, v domain.Video) (domain.Video, error)
	UpdateFunc          func(ctx context.Context, id uuid.UUID, title, description string) (domain.Video, error)
	UpdateThumbnailFunc func(ctx context.Context, id uuid.UUID, thumb domain.MediaRef) (domain.Video, error)
	SetPublishedFunc    func(ctx context.Context, id uuid.UUID, published bool) (domain.Video, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	IncrementViewsFunc  func(ctx context.Context, id uuid.UUID) error

	IncrementViewsCalls int
	DeleteCalls         int
}

func (m *mockVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Video, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.Video{}, domain.ErrNotFound
}

func (m *mockVideoRepo) List(ctx context.Context, f vrepo.Filter, req view.PageRequest) (view.Page[domain.VideoListItem], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f, req)
	}
	return view.NewPage[domain.VideoListItem](nil, req, 0), nil
}

func (m *mockVideoRepo) GetView(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (domain.VideoView, error) {
	if m.GetViewFunc != nil {
		return m.GetViewFunc(ctx, id, viewerID)
	}
	return domain.VideoView{}, domain.ErrNotFound
}

func (m *mockVideoRepo) Create(ctx context.Context, v domain.Video) (domain.Video, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return v, nil
}

func (m *mockVideoRepo) Update(ctx context.Context, id uuid.UUID, title, description string) (domain.Video, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, title, description)
	}
	return domain.Video{ID: id, Title: title, Description: description}, nil
}

func (m *mockVideoRepo) UpdateThumbnail(ctx context.Context, id uuid.UUID, thumb domain.MediaRef) (domain.Video, error) {
	if m.UpdateThumbnailFunc != nil {
		return m.UpdateThumbnailFunc(ctx, id, thumb)
	}
	return domain.Video{ID: id, Thumbnail: thumb}, nil
}

func (m *mockVideoRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) (domain.Video, error) {
	if m.SetPublishedFunc != nil {
		return m.SetPublishedFunc(ctx, id, published)
	}
	return domain.Video{ID: id, IsPublished: published}, nil
}

func (m *mockVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockVideoRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	m.IncrementViewsCalls++
	if m.IncrementViewsFunc != nil {
		return m.IncrementViewsFunc(ctx, id)
	}
	return nil
}

type mockCommentRepo struct {
	ListIDsByVideoFunc func(ctx context.Context, videoID uuid.UUID) ([]uuid.UUID, error)
	DeleteByVideoFunc  func(ctx context.Context, videoID uuid.UUID) error

	DeleteByVideoCalls int
}

func (m *mockCommentRepo) ListIDsByVideo(ctx context.Context, videoID uuid.UUID) ([]uuid.UUID, error) {
	if m.ListIDsByVideoFunc != nil {
		return m.ListIDsByVideoFunc(ctx, videoID)
	}
	return nil, nil
}

func (m *mockCommentRepo) DeleteByVideo(ctx context.Context, videoID uuid.UUID) error {
	m.DeleteByVideoCalls++
	if m.DeleteByVideoFunc != nil {
		return m.DeleteByVideoFunc(ctx, videoID)
	}
	return nil
}

type mockLikeRepo struct {
	DeleteByTargetFunc   func(ctx context.Context, kind domain.LikeTarget, targetID uuid.UUID) error
	DeleteByCommentsFunc func(ctx context.Context, commentIDs []uuid.UUID) error

	DeleteByTargetCalls   int
	DeleteByCommentsCalls [][]uuid.UUID
}

func (m *mockLikeRepo) DeleteByTarget(ctx context.Context, kind domain.LikeTarget, targetID uuid.UUID) error {
	m.DeleteByTargetCalls++
	if m.DeleteByTargetFunc != nil {
		return m.DeleteByTargetFunc(ctx, kind, targetID)
	}
	return nil
}

func (m *mockLikeRepo) DeleteByComments(ctx context.Context, commentIDs []uuid.UUID) error {
	m.DeleteByCommentsCalls = append(m.DeleteByCommentsCalls, commentIDs)
	if m.DeleteByCommentsFunc != nil {
		return m.DeleteByCommentsFunc(ctx, commentIDs)
	}
	return nil
}

type mockPlaylistRepo struct {
	DeleteMembershipByVideoFunc  func(ctx context.Context, videoID uuid.UUID) error
	DeleteMembershipByVideoCalls int
}

func (m *mockPlaylistRepo) DeleteMembershipByVideo(ctx context.Context, videoID uuid.UUID) error {
	m.DeleteMembershipByVideoCalls++
	if m.DeleteMembershipByVideoFunc != nil {
		return m.DeleteMembershipByVideoFunc(ctx, videoID)
	}
	return nil
}

type mockHistoryRepo struct {
	RecordWatchFunc               func(ctx context.Context, userID, videoID uuid.UUID) error
	DeleteWatchEntriesByVideoFunc func(ctx context.Context, videoID uuid.UUID) error

	RecordWatchCalls               int
	DeleteWatchEntriesByVideoCalls int
}

func (m *mockHistoryRepo) RecordWatch(ctx context.Context, userID, videoID uuid.UUID) error {
	m.RecordWatchCalls++
	if m.RecordWatchFunc != nil {
		return m.RecordWatchFunc(ctx, userID, videoID)
	}
	return nil
}

func (m *mockHistoryRepo) DeleteWatchEntriesByVideo(ctx context.Context, videoID uuid.UUID) error {
	m.DeleteWatchEntriesByVideoCalls++
	if m.DeleteWatchEntriesByVideoFunc != nil {
		return m.DeleteWatchEntriesByVideoFunc(ctx, videoID)
	}
	return nil
}

type mockMediaStorage struct {
	StoreFunc  func(ctx context.Context, prefix, filename, contentType string, size int64, r io.Reader) (domain.MediaRef, error)
	RemoveFunc func(ctx context.Context, storageID string) error

	StoredPrefixes []string
	Removed        []string
}

func (m *mockMediaStorage) Store(ctx context.Context, prefix, filename, contentType string, size int64, r io.Reader) (domain.MediaRef, error) {
	m.StoredPrefixes = append(m.StoredPrefixes, prefix)
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, prefix, filename, contentType, size, r)
	}
	return domain.MediaRef{URL: "https://media/" + prefix + "/" + filename, StorageID: prefix + "/" + filename}, nil
}

func (m *mockMediaStorage) Remove(ctx context.Context, storageID string) error {
	m.Removed = append(m.Removed, storageID)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, storageID)
	}
	return nil
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// ===========================================================================
// Test scaffolding
// ===========================================================================

type testDeps struct {
	videos    *mockVideoRepo
	comments  *mockCommentRepo
	likes     *mockLikeRepo
	playlists *mockPlaylistRepo
	history   *mockHistoryRepo
	media     *mockMediaStorage
	tx        *mockTxManager
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		videos:    &mockVideoRepo{},
		comments:  &mockCommentRepo{},
		likes:     &mockLikeRepo{},
		playlists: &mockPlaylistRepo{},
		history:   &mockHistoryRepo{},
		media:     &mockMediaStorage{},
		tx:        &mockTxManager{},
	}
	svc := NewService(
		slog.Default(),
		deps.videos,
		deps.comments,
		deps.likes,
		deps.playlists,
		deps.history,
		deps.media,
		deps.tx,
		config.PaginationConfig{MaxPageSize: 100},
	)
	return svc, deps
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func testUpload(name string) *Upload {
	return &Upload{
		Filename:    name,
		ContentType: "application/octet-stream",
		Size:        4,
		Content:     strings.NewReader("data"),
	}
}

// ===========================================================================
// Publish
// ===========================================================================

func TestService_Publish_Success(t *testing.T) {
	svc, deps := newTestService()
	userID := uuid.New()

	v, err := svc.Publish(authedCtx(userID), PublishInput{
		Title:     "My video",
		Duration:  42.5,
		VideoFile: testUpload("clip.mp4"),
		Thumbnail: testUpload("thumb.jpg"),
	})
	require.NoError(t, err)

	assert.Equal(t, userID, v.OwnerID)
	assert.True(t, v.IsPublished)
	assert.Equal(t, []string{"videos", "thumbnails"}, deps.media.StoredPrefixes)
	assert.Empty(t, deps.media.Removed)
}

func TestService_Publish_NoAuth(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Publish(context.Background(), PublishInput{
		Title:     "My video",
		VideoFile: testUpload("clip.mp4"),
		Thumbnail: testUpload("thumb.jpg"),
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_Publish_ValidationError(t *testing.T) {
	svc, deps := newTestService()

	_, err := svc.Publish(authedCtx(uuid.New()), PublishInput{
		Title:     "",
		VideoFile: testUpload("clip.mp4"),
		Thumbnail: testUpload("thumb.jpg"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, deps.media.StoredPrefixes, "nothing should be uploaded on invalid input")
}

func TestService_Publish_ThumbnailStoreFails_RemovesVideoObject(t *testing.T) {
	svc, deps := newTestService()

	deps.media.StoreFunc = func(ctx context.Context, prefix, filename, contentType string, size int64, r io.Reader) (domain.MediaRef, error) {
		if prefix == "thumbnails" {
			return domain.MediaRef{}, domain.ErrUpstream
		}
		return domain.MediaRef{URL: "u", StorageID: "videos/x"}, nil
	}

	_, err := svc.Publish(authedCtx(uuid.New()), PublishInput{
		Title:     "My video",
		VideoFile: testUpload("clip.mp4"),
		Thumbnail: testUpload("thumb.jpg"),
	})
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, []string{"videos/x"}, deps.media.Removed)
}

func TestService_Publish_CreateFails_RemovesBothObjects(t *testing.T) {
	svc, deps := newTestService()

	deps.videos.CreateFunc = func(ctx context.Context, v domain.Video) (domain.Video, error) {
		return domain.Video{}, errors.New("insert failed")
	}

	_, err := svc.Publish(authedCtx(uuid.New()), PublishInput{
		Title:     "My video",
		VideoFile: testUpload("clip.mp4"),
		Thumbnail: testUpload("thumb.jpg"),
	})
	require.Error(t, err)
	assert.Len(t, deps.media.Removed, 2)
}

// ===========================================================================
// Get
// ===========================================================================

func TestService_Get_Published_Anonymous(t *testing.T) {
	svc, deps := newTestService()
	videoID := uuid.New()

	deps.videos.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (domain.Video, error) {
		return domain.Video{ID: id, OwnerID: uuid.New(), IsPublished: true, Views: 7}, nil
	}
	deps.videos.GetViewFunc = func(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (domain.VideoView, error) {
		assert.Nil(t, viewerID, "anonymous read must pass nil viewer")
		return domain.VideoView{ID: id, Views: 7}, nil
	}

	vv, err := svc.Get(context.Background(), videoID)
	require.NoError(t, err)

	assert.Equal(t, int64(7), vv.Views)
	assert.Equal(t, 0, deps.videos.IncrementViewsCalls, "only authenticated views count")
	assert.Equal(t, 0, deps.history.RecordWatchCalls, "anonymous views leave no history")
}

func TestService_Get_Authenticated_RecordsWatch(t *testing.T) {
	svc, deps := newTestService()
	videoID := uuid.New()
	viewerID := uuid.New()

	deps.videos.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (domain.Video, error) {
		return domain.Video{ID: id, OwnerID: uuid.New(), IsPublished: true}, nil
	}
	deps.videos.GetViewFunc = func(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (domain.VideoView, error) {
		require.NotNil(t, viewerID)
		return domain.VideoView{ID: id}, nil
	}

	_, err := svc.Get(authedCtx(viewerID), videoID)
	require.NoError(t, err)

	assert.Equal(t, 1, deps.videos.IncrementViewsCalls)
	assert.Equal(t, 1, deps.history.RecordWatchCalls)
}

func TestService_Get_Unpublished_NonOwnerGetsNotFound(t *testing.T) {
	svc, deps := newTestService()
	ownerID := uuid.New()

	deps.videos.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (domain.Video, error) {
		return domain.Video{ID: id, OwnerID: ownerID, IsPublished: false}, nil
	}

	_, err := svc.Get(authedCtx(uuid.New()), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Get_Unpublished_OwnerSeesIt(t *testing.T) {
	svc, deps := newTestService()
	ownerID := uuid.New()

	deps.videos.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (domain.Video, error) {
		return domain.Video{ID: id, OwnerID: ownerID, IsPublished: false}, nil
	}
	deps.videos.GetViewFunc = func(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (domain.VideoView, error) {
		return domain.VideoView{ID: id}, nil
	}

	_, err := svc.Get(authedCtx(ownerID), uuid.New())
	assert.NoError(t, err)
}

func TestService_Get_BumpFailureDoesNotFailRead(t *testing.T) {
	svc, deps := newTestService()

	deps.videos.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (domain.Video, error) {
		return domain.Video{ID: id, IsPublished: true}, nil
	}
	deps.videos.GetViewFunc = func(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (domain.VideoView, error) {
		return domain.VideoView{ID: id}, nil
	}
	deps.videos.IncrementViewsFunc = func(ctx context.Context, id uuid.UUID) error {
		return errors.New("db down")
	}

	_, err := svc.Get(authedCtx(uuid.New()), uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, 1, deps.videos.IncrementViewsCalls)
}

// ===========================================================================
// Update / TogglePublish
// ===========================================================================

func TestService_Update_NotOwner(t *testing.T) {
	svc, deps := newTestService()

	deps.videos.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (domain.Video, error) {
		return domain.Video{ID: id, OwnerID: uuid.New()}, nil
	}

	_, err := svc.Update(authedCtx(uuid.New()), UpdateInput{
		VideoID: uuid.New(),
		Title:   "New title",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_TogglePublish_Flips(t *testing.T) {
	svc, deps := newTestService()
	ownerID := uuid.New()

	deps.videos.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (domain.Video, error) {
		return domain.Video{ID: id, OwnerID: ownerID, IsPublished: true}, nil
	}

	var gotPublished bool
	deps.videos.SetPublishedFunc = func(ctx context.Context, id uuid.UUID, published bool) (domain.Video, error) {
		gotPublished = published
		return domain.Video{ID: id, IsPublished: published}, nil
	}

	v, err := svc.TogglePublish(authedCtx(ownerID), uuid.New())
	require.NoError(t, err)

	assert.False(t, gotPublished)
	assert.False(t, v.IsPublished)
}

// ===========================================================================
// Delete cascade
// ===========================================================================

func TestService_Delete_SweepsEverything(t *testing.T) {
	svc, deps := newTestService()
	ownerID := uuid.New()
	videoID := uuid.New()
	commentIDs := []uuid.UUID{uuid.New(), uuid.New()}

	deps.videos.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (domain.Video, error) {
		return domain.Video{
			ID: id, OwnerID: ownerID,
			VideoFile: domain.MediaRef{StorageID: "videos/a"},
			Thumbnail: domain.MediaRef{StorageID: "thumbs/a"},
		}, nil
	}
	deps.comments.ListIDsByVideoFunc = func(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
		return commentIDs, nil
	}

	err := svc.Delete(authedCtx(ownerID), videoID)
	require.NoError(t, err)

	// Second-hop sweep: likes on the video's comments.
	require.Len(t, deps.likes.DeleteByCommentsCalls, 1)
	assert.Equal(t, commentIDs, deps.likes.DeleteByCommentsCalls[0])

	assert.Equal(t, 1, deps.likes.DeleteByTargetCalls)
	assert.Equal(t, 1, deps.comments.DeleteByVideoCalls)
	assert.Equal(t, 1, deps.playlists.DeleteMembershipByVideoCalls)
	assert.Equal(t, 1, deps.history.DeleteWatchEntriesByVideoCalls)
	assert.Equal(t, 1, deps.videos.DeleteCalls)
	assert.ElementsMatch(t, []string{"videos/a", "thumbs/a"}, deps.media.Removed)
}

func TestService_Delete_TxFailure_KeepsMedia(t *testing.T) {
	svc, deps := newTestService()
	ownerID := uuid.New()

	deps.videos.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (domain.Video, error) {
		return domain.Video{ID: id, OwnerID: ownerID, VideoFile: domain.MediaRef{StorageID: "videos/a"}}, nil
	}
	deps.comments.DeleteByVideoFunc = func(ctx context.Context, id uuid.UUID) error {
		return errors.New("constraint failure")
	}

	err := svc.Delete(authedCtx(ownerID), uuid.New())
	require.Error(t, err)

	assert.Empty(t, deps.media.Removed, "media must survive a rolled-back sweep")
}

func TestService_Delete_NotOwner(t *testing.T) {
	svc, deps := newTestService()

	deps.videos.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (domain.Video, error) {
		return domain.Video{ID: id, OwnerID: uuid.New()}, nil
	}

	err := svc.Delete(authedCtx(uuid.New()), uuid.New())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ===========================================================================
// List
// ===========================================================================

func TestService_List_NormalizesPagination(t *testing.T) {
	svc, deps := newTestService()

	var gotReq view.PageRequest
	var gotFilter vrepo.Filter
	deps.videos.ListFunc = func(ctx context.Context, f vrepo.Filter, req view.PageRequest) (view.Page[domain.VideoListItem], error) {
		gotReq = req
		gotFilter = f
		return view.NewPage[domain.VideoListItem](nil, req, 0), nil
	}

	_, err := svc.List(context.Background(), ListInput{Page: 0, PageSize: 5000, Search: "go"})
	require.NoError(t, err)

	assert.Equal(t, 1, gotReq.Page)
	assert.Equal(t, 100, gotReq.PageSize, "page size capped at config maximum")
	assert.True(t, gotFilter.PublishedOnly)
	assert.Equal(t, "go", gotFilter.Search)
}
