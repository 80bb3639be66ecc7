package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with unique email and username.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Username:     "testuser-" + suffix,
		FullName:     "Test User " + suffix,
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtest",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, username, full_name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Username, user.FullName, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedVideo creates a published video owned by the given user.
// Returns a filled domain.Video.
func SeedVideo(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID) domain.Video {
	t.Helper()
	return seedVideo(t, pool, ownerID, true)
}

// SeedUnpublishedVideo creates an unpublished video owned by the given user.
func SeedUnpublishedVideo(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID) domain.Video {
	t.Helper()
	return seedVideo(t, pool, ownerID, false)
}

func seedVideo(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, published bool) domain.Video {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	video := domain.Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       "Test Video " + suffix,
		Description: "Description " + suffix,
		VideoFile: domain.MediaRef{
			URL:       "https://media.example.com/videos/" + suffix + ".mp4",
			StorageID: "videos/" + suffix,
		},
		Thumbnail: domain.MediaRef{
			URL:       "https://media.example.com/thumbs/" + suffix + ".jpg",
			StorageID: "thumbs/" + suffix,
		},
		Duration:    120.5,
		IsPublished: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO videos (id, owner_id, title, description, video_url, video_storage_id, thumbnail_url, thumbnail_storage_id, duration, is_published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		video.ID, video.OwnerID, video.Title, video.Description,
		video.VideoFile.URL, video.VideoFile.StorageID,
		video.Thumbnail.URL, video.Thumbnail.StorageID,
		video.Duration, video.IsPublished, video.CreatedAt, video.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVideo insert video: %v", err)
	}

	return video
}

// SeedComment creates a comment on the given video.
func SeedComment(t *testing.T, pool *pgxpool.Pool, videoID, ownerID uuid.UUID) domain.Comment {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	comment := domain.Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   "Test comment " + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO comments (id, video_id, owner_id, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		comment.ID, comment.VideoID, comment.OwnerID, comment.Content, comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedComment insert comment: %v", err)
	}

	return comment
}

// SeedTweet creates a tweet owned by the given user.
func SeedTweet(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID) domain.Tweet {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	tweet := domain.Tweet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   "Test tweet " + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO tweets (id, owner_id, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		tweet.ID, tweet.OwnerID, tweet.Content, tweet.CreatedAt, tweet.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTweet insert tweet: %v", err)
	}

	return tweet
}

// SeedVideoLike creates a like edge from the user to the video.
func SeedVideoLike(t *testing.T, pool *pgxpool.Pool, userID, videoID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO likes (id, liked_by, video_id, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, videoID, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVideoLike insert like: %v", err)
	}
}

// SeedCommentLike creates a like edge from the user to the comment.
func SeedCommentLike(t *testing.T, pool *pgxpool.Pool, userID, commentID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO likes (id, liked_by, comment_id, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, commentID, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCommentLike insert like: %v", err)
	}
}

// SeedTweetLike creates a like edge from the user to the tweet.
func SeedTweetLike(t *testing.T, pool *pgxpool.Pool, userID, tweetID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO likes (id, liked_by, tweet_id, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, tweetID, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTweetLike insert like: %v", err)
	}
}

// SeedSubscription creates a subscription edge from subscriber to channel.
func SeedSubscription(t *testing.T, pool *pgxpool.Pool, subscriberID, channelID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO subscriptions (id, subscriber_id, channel_id, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.New(), subscriberID, channelID, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSubscription insert subscription: %v", err)
	}
}

// SeedPlaylist creates a playlist owned by the given user.
func SeedPlaylist(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID) domain.Playlist {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	playlist := domain.Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        "Test Playlist " + suffix,
		Description: "Playlist description " + suffix,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO playlists (id, owner_id, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description, playlist.CreatedAt, playlist.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPlaylist insert playlist: %v", err)
	}

	return playlist
}

// SeedPlaylistVideo adds a video to a playlist's member set.
func SeedPlaylistVideo(t *testing.T, pool *pgxpool.Pool, playlistID, videoID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO playlist_videos (playlist_id, video_id, added_at) VALUES ($1, $2, $3)`,
		playlistID, videoID, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPlaylistVideo insert membership: %v", err)
	}
}
