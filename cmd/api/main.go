package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homeservices/internal/config"
	"homeservices/internal/database"
	"homeservices/internal/middleware"
	"homeservices/internal/modules/ai"
	"homeservices/internal/modules/auth"
	"homeservices/internal/modules/catalog"
	"homeservices/internal/modules/notification"
	jwtsvc "homeservices/internal/pkg/jwt"
	"homeservices/internal/pkg/logger"
	"homeservices/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("database migrate failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := repository.NewStore(db)
	if err := catalog.NewService(store.Categories, store.Users, zl).EnsureDefaults(ctx, cfg.DefaultCategories); err != nil {
		zl.Fatal("seed default categories failed", zap.Error(err))
	}

	hub := notification.NewHub(zl)
	defer hub.Close()

	aiService, closeAI := buildAIService(ctx, cfg, store, zl)
	defer closeAI()

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitPerMinute)
	go sweepLimiter(ctx, limiter)

	r := newRouter(deps{
		cfg:     cfg,
		store:   store,
		jwt:     jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL),
		hub:     hub,
		ai:      aiService,
		codes:   auth.NewLogCodeSender(zl),
		limiter: limiter,
		log:     zl,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildAIService(ctx context.Context, cfg *config.Config, store *repository.Store, zl *zap.Logger) (*ai.Service, func()) {
	closers := []func(){}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	var suggester ai.Suggester = ai.NewKeywordSuggester(nil)
	if cfg.AIProvider == "gemini" {
		g, err := ai.NewGeminiSuggester(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			zl.Warn("gemini unavailable, using keyword matcher", zap.Error(err))
		} else {
			suggester = g
			closers = append(closers, func() { _ = g.Close() })
		}
	}

	var cache ai.Cache
	if cfg.RedisAddr != "" {
		client, err := ai.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zl.Warn("redis unavailable, suggestions will not be cached", zap.Error(err))
		} else {
			cache = ai.NewRedisCache(client, cfg.AICacheTTL)
			closers = append(closers, func() { _ = client.Close() })
		}
	}

	return ai.NewService(suggester, store.Categories, cache, cfg.AISuggestTimeout, zl), closeAll
}

func sweepLimiter(ctx context.Context, l *middleware.IPRateLimiter) {
	t := time.NewTicker(5 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep(10 * time.Minute)
		}
	}
}
