// Package server is the composition root: it builds repositories, the
// version engine, services and the gin router from configuration.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"inkwell-cms/config"
	"inkwell-cms/handlers"
	"inkwell-cms/helper"
	"inkwell-cms/logger"
	"inkwell-cms/metrics"
	"inkwell-cms/middleware"
	"inkwell-cms/models"
	"inkwell-cms/repositories"
	"inkwell-cms/services"
)

// NewSnapshotBackend opens the backend selected by versioning.backend. The
// returned close func releases any connection it opened.
func NewSnapshotBackend(ctx context.Context, cfg *config.Config, db *gorm.DB) (repositories.SnapshotBackend, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Versioning.Backend {
	case "redis":
		rdb, err := repositories.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return repositories.NewRedisSnapshotBackend(rdb, cfg.Versioning.Key), rdb.Close, nil
	case "file":
		return repositories.NewFileSnapshotBackend(cfg.Versioning.FilePath), noop, nil
	case "database":
		return repositories.NewGormSnapshotBackend(db, cfg.Versioning.Key), noop, nil
	default:
		return nil, noop, fmt.Errorf("unsupported versioning backend %q", cfg.Versioning.Backend)
	}
}

// NewRouter wires every handler. backend is only used when versioning is
// enabled; reg receives the application metrics and is served on /metrics.
func NewRouter(ctx context.Context, cfg *config.Config, db *gorm.DB, backend repositories.SnapshotBackend, reg *prometheus.Registry) (*gin.Engine, error) {
	log := logger.NewLogger("http")
	m := metrics.New(reg)
	httpHelper := helper.NewHTTPHelper()
	middleware.HTTPHelper = httpHelper

	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	var (
		recorder       services.VersionRecorder
		restorer       services.VersionRestorer
		versionService services.VersionService
	)
	if cfg.Versioning.Enabled {
		store, err := repositories.NewVersionStore(ctx, backend, m)
		if err != nil {
			return nil, err
		}
		recorder = services.NewVersionRecorder(store, m)
		restorer = services.NewVersionRestorer(store, recorder, m)
		versionService = services.NewVersionService(store, m)
	}

	authService := services.NewAuthService(userRepo, cfg.JWT)
	postService := services.NewPostService(postRepo, tagRepo, recorder, restorer)
	tagService := services.NewTagService(tagRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	assistService := services.NewAssistService(nil)

	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	postHandler := handlers.NewPostHandler(postService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)
	commentHandler := handlers.NewCommentHandler(commentService, httpHelper)
	assistHandler := handlers.NewAssistHandler(assistService, httpHelper)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDKey},
		ExposeHeaders: []string{middleware.RequestIDKey},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
		{
			protected.GET("/profile", authHandler.GetProfile)

			posts := protected.Group("/posts")
			{
				posts.POST("", postHandler.CreatePost)
				posts.GET("", postHandler.GetPosts)
				posts.GET("/:id", postHandler.GetPost)
				posts.PUT("/:id", postHandler.UpdatePost)
				posts.DELETE("/:id", postHandler.DeletePost)
				posts.GET("/:id/comments", commentHandler.GetComments)
				posts.POST("/:id/comments", commentHandler.CreateComment)

				if versionService != nil {
					versionHandler := handlers.NewVersionHandler(versionService, postService, httpHelper)
					posts.GET("/:id/versions", versionHandler.GetVersions)
					posts.GET("/:id/versions/:version_id", versionHandler.GetVersion)
					posts.POST("/:id/versions/:version_id/restore", versionHandler.RestoreVersion)
					posts.DELETE("/:id/versions/:version_id", versionHandler.DeleteVersion)
					posts.GET("/:id/compare", versionHandler.CompareVersions)
				}
			}

			comments := protected.Group("/comments")
			comments.Use(middleware.RequireRole(models.RoleAdmin, models.RoleEditor))
			{
				comments.PUT("/:id/approve", commentHandler.ApproveComment)
				comments.PUT("/:id/reject", commentHandler.RejectComment)
				comments.DELETE("/:id", commentHandler.DeleteComment)
			}

			tags := protected.Group("/tags")
			{
				tags.POST("", middleware.RequireRole(models.RoleAdmin), tagHandler.CreateTag)
				tags.GET("", tagHandler.GetTags)
				tags.GET("/:id", tagHandler.GetTag)
			}

			assist := protected.Group("/assist")
			{
				assist.POST("/titles", assistHandler.SuggestTitles)
				assist.POST("/keywords", assistHandler.SuggestKeywords)
				assist.POST("/summaries", assistHandler.SuggestSummaries)
			}
		}
	}

	return router, nil
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests for up to ten seconds.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	log := logger.NewLogger("server")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
