package domain

import (
	"time"

	"github.com/google/uuid"
)

// View objects are denormalized, read-only compositions of entities tailored
// to a query. They double as projection allow-lists: a field that is not on
// the view struct cannot leak to a caller, whatever the underlying row holds.

// OwnerSummary is the public slice of a User embedded in other views.
type OwnerSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	AvatarURL *string   `json:"avatarUrl"`
}

// ChannelSummary extends OwnerSummary with viewer-personalized channel
// fields for detail views.
type ChannelSummary struct {
	OwnerSummary
	SubscribersCount int  `json:"subscribersCount"`
	IsSubscribed     bool `json:"isSubscribed"`
}

// VideoListItem is one row of a paginated video listing.
type VideoListItem struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ThumbnailURL string       `json:"thumbnailUrl"`
	Duration     float64      `json:"duration"`
	Views        int64        `json:"views"`
	CreatedAt    time.Time    `json:"createdAt"`
	Owner        OwnerSummary `json:"owner"`
}

// VideoView is the viewer-personalized detail view of a video.
type VideoView struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	VideoURL    string         `json:"videoUrl"`
	Duration    float64        `json:"duration"`
	Views       int64          `json:"views"`
	CreatedAt   time.Time      `json:"createdAt"`
	LikesCount  int            `json:"likesCount"`
	IsLiked     bool           `json:"isLiked"`
	Owner       ChannelSummary `json:"owner"`
}

// CommentView is one row of a video's comment listing.
type CommentView struct {
	ID         uuid.UUID    `json:"id"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	LikesCount int          `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
	Owner      OwnerSummary `json:"owner"`
}

// TweetView is one row of a user's tweet listing.
type TweetView struct {
	ID         uuid.UUID    `json:"id"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	LikesCount int          `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
	Owner      OwnerSummary `json:"owner"`
}

// LikedVideoView is one row of the viewer's liked-videos listing.
type LikedVideoView struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	VideoURL     string       `json:"videoUrl"`
	ThumbnailURL string       `json:"thumbnailUrl"`
	Duration     float64      `json:"duration"`
	Views        int64        `json:"views"`
	IsPublished  bool         `json:"isPublished"`
	CreatedAt    time.Time    `json:"createdAt"`
	Owner        OwnerSummary `json:"owner"`
}

// PlaylistSummary is one row of a user's playlist listing. TotalVideos and
// TotalViews are aggregates recomputed over the member set.
type PlaylistSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalVideos int       `json:"totalVideos"`
	TotalViews  int64     `json:"totalViews"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistVideo is a member video embedded in a playlist detail view.
type PlaylistVideo struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PlaylistView is the detail view of a playlist: published member videos
// expanded, aggregates recomputed over the expanded rows.
type PlaylistView struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	TotalVideos int             `json:"totalVideos"`
	TotalViews  int64           `json:"totalViews"`
	Videos      []PlaylistVideo `json:"videos"`
	Owner       OwnerSummary    `json:"owner"`
}

// ChannelProfile is the viewer-personalized public profile of a user.
type ChannelProfile struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	FullName          string    `json:"fullName"`
	AvatarURL         *string   `json:"avatarUrl"`
	CoverURL          *string   `json:"coverUrl"`
	SubscribersCount  int       `json:"subscribersCount"`
	SubscribedToCount int       `json:"subscribedToCount"`
	IsSubscribed      bool      `json:"isSubscribed"`
}

// ChannelStats aggregates a channel owner's dashboard numbers.
type ChannelStats struct {
	TotalVideos      int   `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int   `json:"totalSubscribers"`
	TotalLikes       int   `json:"totalLikes"`
}

// ChannelVideo is one row of the owner's dashboard video listing. Unlike
// public listings it includes unpublished videos.
type ChannelVideo struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	IsPublished  bool      `json:"isPublished"`
	Views        int64     `json:"views"`
	LikesCount   int       `json:"likesCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// WatchHistoryItem is one row of the viewer's watch history.
type WatchHistoryItem struct {
	Video     VideoListItem `json:"video"`
	WatchedAt time.Time     `json:"watchedAt"`
}
