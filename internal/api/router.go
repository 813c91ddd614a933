package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kowshikmeda/KabaddiBackend/internal/api/handlers"
	"github.com/kowshikmeda/KabaddiBackend/internal/api/middleware"
	"github.com/kowshikmeda/KabaddiBackend/internal/config"
	"github.com/kowshikmeda/KabaddiBackend/internal/repository"
	"github.com/kowshikmeda/KabaddiBackend/internal/service"
	"github.com/kowshikmeda/KabaddiBackend/internal/websocket"
	"github.com/kowshikmeda/KabaddiBackend/pkg/database"
	"github.com/kowshikmeda/KabaddiBackend/pkg/distributed"
	"github.com/kowshikmeda/KabaddiBackend/pkg/logger"
	"github.com/kowshikmeda/KabaddiBackend/pkg/ratelimit"
	"github.com/kowshikmeda/KabaddiBackend/pkg/storage"
)

// SetupRouter wires repositories, services, the websocket hub and all
// HTTP routes. Redis is optional; without it the server runs with
// locking and rate limiting disabled.
func SetupRouter(cfg *config.Config, db *database.DB) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	storageManager := storage.NewStorage(cfg.StoragePath)

	// Redis: distributed lock for scoring, shared rate limits
	var lockManager *distributed.RedisLockManager
	var limiter *ratelimit.RedisRateLimiter

	if opt, err := redis.ParseURL(cfg.RedisURL); err != nil {
		logger.Warn("Invalid Redis URL, running without Redis", "error", err)
	} else {
		client := redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unavailable, running without locking and rate limits", "error", err)
			client.Close()
		} else {
			lockManager = distributed.NewRedisLockManager(client)
			limiter = ratelimit.NewRedisRateLimiter(ratelimit.RedisRateLimiterConfig{
				Addr:      opt.Addr,
				Password:  opt.Password,
				DB:        opt.DB,
				KeyPrefix: "kabaddi:ratelimit:",
			})
			logger.Info("Redis connected", "addr", opt.Addr)
		}
		cancel()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	statsRepo := repository.NewMatchStatsRepository(db)
	commentaryRepo := repository.NewCommentaryRepository(db)

	// WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	// Services
	reconciler := service.NewReadReconciler(matchRepo, service.NewMatchClock())
	userService := service.NewUserService(userRepo, statsRepo)
	matchService := service.NewMatchService(matchRepo, statsRepo, commentaryRepo, reconciler, wsHub)
	statsService := service.NewStatsService(db, matchRepo, statsRepo, commentaryRepo, lockManager, reconciler, wsHub)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	matchHandler := handlers.NewMatchHandler(matchService, storageManager)
	scorecardHandler := handlers.NewScorecardHandler(statsService)
	wsHandler := handlers.NewWebSocketHandler(wsHub)

	// Rate limits degrade to no-ops without Redis
	passthrough := func(c *gin.Context) { c.Next() }
	authLimit := gin.HandlerFunc(passthrough)
	scoreLimit := gin.HandlerFunc(passthrough)
	createLimit := gin.HandlerFunc(passthrough)
	if limiter != nil {
		authLimit = middleware.AuthRateLimit(limiter)
		scoreLimit = middleware.ScoreUpdateRateLimit(limiter)
		createLimit = middleware.MatchCreationRateLimit(limiter)
	}

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// Uploaded team photos
	router.Static("/storage", cfg.StoragePath)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// WebSocket endpoint
		v1.GET("/ws", middleware.Auth(cfg), wsHandler.HandleWebSocket)

		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authLimit, authHandler.Login)
			auth.POST("/register", authLimit, authHandler.Register)
		}

		// Player routes (roster selection)
		players := v1.Group("/players")
		{
			players.GET("", userHandler.ListPlayers)
			players.GET("/:playerId", userHandler.GetPlayer)
			players.GET("/:playerId/profile", userHandler.GetPlayerProfile)
			players.GET("/:playerId/matches", userHandler.ListPlayedMatches)
		}

		// Match routes
		matches := v1.Group("/matches")
		{
			matches.POST("", middleware.Auth(cfg), createLimit, matchHandler.CreateMatch)
			matches.GET("", matchHandler.ListMatches)
			matches.GET("/:id", matchHandler.GetMatch)
			matches.PUT("/:id/status/:action", middleware.Auth(cfg), matchHandler.UpdateMatchStatus)
			matches.PUT("/:id/score", middleware.Auth(cfg), scoreLimit, scorecardHandler.UpdateScore)
			matches.GET("/:id/commentary", matchHandler.ListCommentary)
			matches.GET("/:id/scorecard", scorecardHandler.GetScorecard)
			matches.GET("/:id/scorecard/live", middleware.Auth(cfg), scorecardHandler.GetLiveScorecard)
		}

		// Scorecard summary for list views
		v1.GET("/scorecard/:matchId", scorecardHandler.GetScorecardSummary)

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.Auth(cfg))
		{
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpdateMe)
		}
	}

	return router
}
