package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"minitweet/internal/cache"
	"minitweet/internal/config"
	"minitweet/internal/database"
	"minitweet/internal/handler"
	"minitweet/internal/logger"
	"minitweet/internal/metrics"
	"minitweet/internal/repository"
	"minitweet/internal/service"
)

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.SetupDefault(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Provision schema and connect to Database
	if err := database.RunMigrations(cfg.DSN()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Optional timeline cache
	var timelineCache cache.TimelineCache
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()
		timelineCache = cache.NewTimelineCache(client, cfg.TimelineCacheTTL)
		slog.Info("timeline cache enabled", slog.String("component", "server"),
			slog.Duration("ttl", cfg.TimelineCacheTTL))
	} else {
		slog.Info("timeline cache disabled", slog.String("component", "server"))
	}

	// 4. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(registry)

	// 5. Wire repositories, services and handlers
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL())
	userService := service.NewUserService(userRepo, service.NewPasswordHasher(cfg.BcryptCost), tokens)
	followService := service.NewFollowService(followRepo, userRepo, timelineCache, recorder)
	postService := service.NewPostService(postRepo, followRepo, timelineCache)
	timelineService := service.NewTimelineService(followRepo, postRepo, timelineCache, recorder)

	router := NewRouter(RouterConfig{
		AuthHandler:     handler.NewAuthHandler(userService),
		PostHandler:     handler.NewPostHandler(postService),
		FollowHandler:   handler.NewFollowHandler(followService),
		TimelineHandler: handler.NewTimelineHandler(timelineService),
		TokenVerifier:   tokens,
		Metrics:         recorder,
		MetricsHandler:  metrics.Handler(registry),
		AllowedOrigins:  cfg.CORSAllowedOrigin,
		Logger:          log,
	})

	// 6. Serve until signalled
	srv := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", slog.String("component", "server"), slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down", slog.String("component", "server"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
