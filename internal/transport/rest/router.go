package rest

import (
	"net/http"
)

// Handlers collects every REST handler mounted by the router.
type Handlers struct {
	Health        *HealthHandler
	Users         *UserHandler
	Videos        *VideoHandler
	Comments      *CommentHandler
	Tweets        *TweetHandler
	Likes         *LikeHandler
	Subscriptions *SubscriptionHandler
	Playlists     *PlaylistHandler
	Dashboard     *DashboardHandler
}

// NewRouter mounts all REST routes on a ServeMux. Authentication and other
// cross-cutting concerns are layered on by middleware around the returned
// handler.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	// Health probes.
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	// Accounts and profiles.
	mux.HandleFunc("POST /api/users/register", h.Users.Register)
	mux.HandleFunc("POST /api/users/login", h.Users.Login)
	mux.HandleFunc("GET /api/users/me", h.Users.Me)
	mux.HandleFunc("GET /api/users/me/history", h.Users.WatchHistory)
	mux.HandleFunc("GET /api/channels/{username}", h.Users.ChannelProfile)

	// Videos.
	mux.HandleFunc("GET /api/videos", h.Videos.List)
	mux.HandleFunc("POST /api/videos", h.Videos.Publish)
	mux.HandleFunc("GET /api/videos/{videoId}", h.Videos.Get)
	mux.HandleFunc("PATCH /api/videos/{videoId}", h.Videos.Update)
	mux.HandleFunc("DELETE /api/videos/{videoId}", h.Videos.Delete)
	mux.HandleFunc("PATCH /api/videos/{videoId}/thumbnail", h.Videos.UpdateThumbnail)
	mux.HandleFunc("POST /api/videos/{videoId}/toggle-publish", h.Videos.TogglePublish)

	// Comments.
	mux.HandleFunc("GET /api/videos/{videoId}/comments", h.Comments.ListForVideo)
	mux.HandleFunc("POST /api/videos/{videoId}/comments", h.Comments.Add)
	mux.HandleFunc("PATCH /api/comments/{commentId}", h.Comments.Update)
	mux.HandleFunc("DELETE /api/comments/{commentId}", h.Comments.Delete)

	// Tweets.
	mux.HandleFunc("POST /api/tweets", h.Tweets.Create)
	mux.HandleFunc("GET /api/users/{userId}/tweets", h.Tweets.ListForUser)
	mux.HandleFunc("PATCH /api/tweets/{tweetId}", h.Tweets.Update)
	mux.HandleFunc("DELETE /api/tweets/{tweetId}", h.Tweets.Delete)

	// Likes.
	mux.HandleFunc("POST /api/videos/{videoId}/like", h.Likes.ToggleVideo)
	mux.HandleFunc("POST /api/comments/{commentId}/like", h.Likes.ToggleComment)
	mux.HandleFunc("POST /api/tweets/{tweetId}/like", h.Likes.ToggleTweet)
	mux.HandleFunc("GET /api/users/me/liked-videos", h.Likes.ListLikedVideos)

	// Subscriptions.
	mux.HandleFunc("POST /api/channels/{channelId}/subscribe", h.Subscriptions.Toggle)
	mux.HandleFunc("GET /api/users/me/subscribers", h.Subscriptions.ListSubscribers)
	mux.HandleFunc("GET /api/users/me/subscriptions", h.Subscriptions.ListSubscribedChannels)

	// Playlists.
	mux.HandleFunc("POST /api/playlists", h.Playlists.Create)
	mux.HandleFunc("GET /api/playlists/{playlistId}", h.Playlists.Get)
	mux.HandleFunc("PATCH /api/playlists/{playlistId}", h.Playlists.Update)
	mux.HandleFunc("DELETE /api/playlists/{playlistId}", h.Playlists.Delete)
	mux.HandleFunc("GET /api/users/{userId}/playlists", h.Playlists.ListForUser)
	mux.HandleFunc("POST /api/playlists/{playlistId}/videos/{videoId}", h.Playlists.AddVideo)
	mux.HandleFunc("DELETE /api/playlists/{playlistId}/videos/{videoId}", h.Playlists.RemoveVideo)

	// Dashboard.
	mux.HandleFunc("GET /api/dashboard/stats", h.Dashboard.Stats)
	mux.HandleFunc("GET /api/dashboard/videos", h.Dashboard.Videos)

	return mux
}
