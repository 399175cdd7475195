// Package main runs the daily leadership quiz HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/incharge-incontrol/backend/config"
	"github.com/incharge-incontrol/backend/internal/admin"
	"github.com/incharge-incontrol/backend/internal/analytics"
	"github.com/incharge-incontrol/backend/internal/attempts"
	"github.com/incharge-incontrol/backend/internal/auth"
	"github.com/incharge-incontrol/backend/internal/dailyquiz"
	"github.com/incharge-incontrol/backend/internal/middleware"
	"github.com/incharge-incontrol/backend/internal/quizzes"
	"github.com/incharge-incontrol/backend/pkg/database"
	"github.com/incharge-incontrol/backend/pkg/redis"
	"github.com/incharge-incontrol/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Quiz management
	quizRepo := quizzes.NewRepository(pool)

	// Active-quiz serving. With Redis configured, today's quiz is served from a
	// read-through cache that lifecycle writes invalidate; without it the
	// resolver reads straight from Postgres.
	var (
		activeSource dailyquiz.ActiveQuizSource = quizRepo
		quizCache    *dailyquiz.Cache
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		quizCache = dailyquiz.NewCache(rdb.Client, quizRepo, cfg.Quiz.CacheTTL, logger)
		activeSource = quizCache
	}

	var invalidator quizzes.CacheInvalidator
	if quizCache != nil {
		invalidator = quizCache
	}
	quizHandler := quizzes.NewHandler(quizRepo, invalidator, logger)

	// Attempts
	attemptRepo := attempts.NewRepository(pool)
	attemptHandler := attempts.NewHandler(attemptRepo, quizRepo, logger)

	// Daily quiz
	resolver := dailyquiz.NewResolver(activeSource, attemptRepo)
	dailyHandler := dailyquiz.NewHandler(resolver, logger)

	// Admin user management and analytics
	adminRepo := admin.NewRepository(pool)
	adminHandler := admin.NewHandler(adminRepo, logger)
	analyticsHandler := analytics.NewHandler(pool, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
	}

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		api.POST("/auth/password", authHandler.UpdatePassword)

		// Daily quiz
		api.GET("/quiz/active", dailyHandler.GetActive)
		api.POST("/quiz/submit", attemptHandler.Submit)
		api.GET("/quiz/history", attemptHandler.History)

		// Admin
		adminGroup := api.Group("/admin", middleware.RequireRole("admin"))
		{
			adminGroup.GET("/quizzes", quizHandler.List)
			adminGroup.POST("/quizzes", quizHandler.Create)
			adminGroup.GET("/quizzes/:id", quizHandler.Get)
			adminGroup.PUT("/quizzes/:id", quizHandler.Update)
			adminGroup.DELETE("/quizzes/:id", quizHandler.Delete)
			adminGroup.PUT("/quizzes/:id/approve", quizHandler.Approve)
			adminGroup.PUT("/quizzes/:id/activate", quizHandler.Activate)

			adminGroup.GET("/users", adminHandler.Users)
			adminGroup.POST("/import", adminHandler.Import)
			adminGroup.GET("/export", adminHandler.Export)

			adminGroup.GET("/analytics", analyticsHandler.Dashboard)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
