// Package app wires configuration, adapters, services and transport into a
// running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/viewtube-backend/internal/adapter/minio"
	"github.com/heartmarshall/viewtube-backend/internal/adapter/postgres"
	commentrepo "github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/comment"
	likerepo "github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/like"
	playlistrepo "github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/playlist"
	subrepo "github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/subscription"
	tweetrepo "github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/tweet"
	userrepo "github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/user"
	videorepo "github.com/heartmarshall/viewtube-backend/internal/adapter/postgres/video"
	"github.com/heartmarshall/viewtube-backend/internal/auth"
	"github.com/heartmarshall/viewtube-backend/internal/config"
	"github.com/heartmarshall/viewtube-backend/internal/loader"
	commentsvc "github.com/heartmarshall/viewtube-backend/internal/service/comment"
	dashboardsvc "github.com/heartmarshall/viewtube-backend/internal/service/dashboard"
	likesvc "github.com/heartmarshall/viewtube-backend/internal/service/like"
	playlistsvc "github.com/heartmarshall/viewtube-backend/internal/service/playlist"
	subsvc "github.com/heartmarshall/viewtube-backend/internal/service/subscription"
	tweetsvc "github.com/heartmarshall/viewtube-backend/internal/service/tweet"
	usersvc "github.com/heartmarshall/viewtube-backend/internal/service/user"
	videosvc "github.com/heartmarshall/viewtube-backend/internal/service/video"
	"github.com/heartmarshall/viewtube-backend/internal/transport/middleware"
	"github.com/heartmarshall/viewtube-backend/internal/transport/rest"
	"github.com/heartmarshall/viewtube-backend/migrations"
)

// Run is the application entry point. It loads configuration, applies
// migrations, wires adapters, services and transport, and serves HTTP until
// ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS); err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	media, err := minio.New(ctx, cfg.Media)
	if err != nil {
		return err
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	txManager := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	videos := videorepo.New(pool)
	comments := commentrepo.New(pool)
	tweets := tweetrepo.New(pool)
	likes := likerepo.New(pool)
	subscriptions := subrepo.New(pool)
	playlists := playlistrepo.New(pool)

	userService := usersvc.NewService(logger, users, jwtManager, media, cfg.Pagination)
	videoService := videosvc.NewService(logger, videos, comments, likes, playlists, users, media, txManager, cfg.Pagination)
	commentService := commentsvc.NewService(logger, comments, videos, likes, txManager, cfg.Pagination)
	tweetService := tweetsvc.NewService(logger, tweets, likes, users, txManager, cfg.Pagination)
	likeService := likesvc.NewService(logger, likes, videos, comments, tweets, cfg.Pagination)
	subService := subsvc.NewService(logger, subscriptions, users, cfg.Pagination)
	playlistService := playlistsvc.NewService(logger, playlists, videos, users, txManager, cfg.Pagination)
	dashboardService := dashboardsvc.NewService(logger, videos, cfg.Pagination)

	router := rest.NewRouter(rest.Handlers{
		Health:        rest.NewHealthHandler(pool, BuildVersion()),
		Users:         rest.NewUserHandler(userService, logger),
		Videos:        rest.NewVideoHandler(videoService, logger),
		Comments:      rest.NewCommentHandler(commentService, logger),
		Tweets:        rest.NewTweetHandler(tweetService, logger),
		Likes:         rest.NewLikeHandler(likeService, logger),
		Subscriptions: rest.NewSubscriptionHandler(subService, logger),
		Playlists:     rest.NewPlaylistHandler(playlistService, logger),
		Dashboard:     rest.NewDashboardHandler(dashboardService, logger),
	})

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
		loader.Middleware(&loader.Repos{User: users, Playlist: playlists}),
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
		mws = append([]middleware.Middleware{limiter.Limit(cfg.Server.RateLimitPerMinute)}, mws...)
	}

	handler := middleware.Chain(mws...)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
