package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tremorlab/motorscreen/internal/cache"
	"github.com/tremorlab/motorscreen/internal/config"
	"github.com/tremorlab/motorscreen/internal/database"
	"github.com/tremorlab/motorscreen/internal/monitoring"
	"github.com/tremorlab/motorscreen/internal/privacy"
	"github.com/tremorlab/motorscreen/internal/ratelimit"
	"github.com/tremorlab/motorscreen/internal/recommend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	logger := monitoring.NewLogger(logLevel)
	slog.SetDefault(logger.Logger)

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		// Anonymous sessions do not survive a restart without a
		// configured secret, which is acceptable for a screening tool.
		jwtSecret = randomSecret()
		slog.Warn("MOTORSCREEN_JWT_SECRET not set, generated an ephemeral secret")
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	service := database.NewService(repo, jwtSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)
	privacyService := privacy.NewService(db, jwtSecret)

	metrics := monitoring.NewMetrics()

	redisClient, err := ratelimit.NewRedisClient(cfg.RedisURL, "", 0)
	if err != nil {
		slog.Warn("Redis unavailable, continuing with in-memory rate limiting", "error", err)
	}
	defer redisClient.Close()

	limiter := ratelimit.NewRateLimiter(redisClient, ratelimit.Config{
		SubmitLimitPerMin: cfg.RateLimitPerMinute,
		BurstMultiplier:   2,
	}, metrics)

	app := &App{
		cfg:       cfg,
		db:        db,
		service:   service,
		privacy:   privacyService,
		generator: recommend.NewTemplateGenerator(),
		metrics:   metrics,
		logger:    logger,
		cache:     cache.NewCache(time.Duration(cfg.CacheTTLSeconds) * time.Second),
		limiter:   limiter,
	}

	gin.SetMode(gin.ReleaseMode)
	router := app.newRouter()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		slog.Error("Failed to generate session secret", "error", err)
		os.Exit(1)
	}
	return hex.EncodeToString(buf)
}
