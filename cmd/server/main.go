package main

import (
	"context"
	"fmt"
	stdlog "log"

	"github.com/gin-gonic/gin"

	"github.com/openwave-social/openwave/internal/auth"
	"github.com/openwave-social/openwave/internal/cache"
	"github.com/openwave-social/openwave/internal/config"
	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/handler"
	"github.com/openwave-social/openwave/internal/middleware"
	"github.com/openwave-social/openwave/internal/repository"
	"github.com/openwave-social/openwave/internal/service"
	"github.com/openwave-social/openwave/pkg/database"
	"github.com/openwave-social/openwave/pkg/log"
	"github.com/openwave-social/openwave/pkg/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logging
	log.Init(cfg.Log)
	logger := log.L()

	// Connect to database using GORM
	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate
	if err := database.AutoMigrate(db, domain.AllModels()...); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// Media storage backend
	var store storage.Storage
	switch cfg.Storage.Backend {
	case "s3":
		store, err = storage.NewS3Storage(context.Background(), cfg.Storage.S3)
	default:
		store, err = storage.NewLocalStorage(cfg.Storage.Local)
	}
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("failed to initialize storage")
	}

	// Refresh token blacklist store
	var tokenStore auth.TokenStore
	if cfg.Redis.Enabled {
		tokenStore, err = auth.NewRedisTokenStore(auth.RedisStoreConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect token store to redis")
		}
	} else {
		tokenStore = auth.NewMemoryTokenStore()
	}
	defer tokenStore.Close()

	tokenManager, err := auth.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, cfg.JWT.Issuer, tokenStore)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create token manager")
	}

	// Profile cache (optional)
	var profileCache cache.ProfileCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisProfileCache(cfg.Redis, cfg.Cache.Prefix)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect profile cache to redis")
		}
		defer redisCache.Close()
		profileCache = redisCache
	}

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	postRepo := repository.NewGormPostRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	followRepo := repository.NewGormFollowRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)
	profileRepo := repository.NewGormProfileRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenManager)
	postService := service.NewPostService(postRepo, commentRepo, notificationRepo)
	socialService := service.NewSocialService(userRepo, followRepo, postRepo, notificationRepo)
	profileService := service.NewProfileService(userRepo, profileRepo, postRepo, followRepo, store, profileCache, cfg.Cache.TTL)
	notificationService := service.NewNotificationService(notificationRepo)
	searchService := service.NewSearchService(userRepo, postRepo, followRepo)

	// Initialize auth middleware and HTTP handler
	authMiddleware := middleware.NewAuthMiddleware(tokenManager)
	httpHandler := handler.NewHandler(
		authService,
		postService,
		socialService,
		profileService,
		notificationService,
		searchService,
		authMiddleware,
	)

	// Setup Gin router
	r := gin.New()
	r.Use(log.GinMiddleware(logger))
	r.Use(gin.Recovery())

	httpHandler.RegisterRoutes(r)

	// Serve locally stored media directly
	if local, ok := store.(*storage.LocalStorage); ok {
		r.Static("/media", local.BasePath())
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Str("driver", cfg.Database.Driver).Msg("server starting")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
