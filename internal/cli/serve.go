package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"

	"github.com/interiorfitout/backoffice/internal/api"
	"github.com/interiorfitout/backoffice/internal/api/handler"
	"github.com/interiorfitout/backoffice/internal/core/service"
	"github.com/interiorfitout/backoffice/internal/infrastructure/db/mongo"
	"github.com/interiorfitout/backoffice/internal/infrastructure/db/redis"
	"github.com/interiorfitout/backoffice/internal/infrastructure/queue"
	"github.com/interiorfitout/backoffice/internal/pkg/config"
	"github.com/interiorfitout/backoffice/pkg/logger"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the back-office API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")

	return cmd
}

func runServe(parent context.Context, cfg *config.Config) error {
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "backoffice",
	})

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		log.Error().Msg("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must both be set; logins will fail")
	}

	// Audit workers outlive the HTTP server so in-flight events are drained.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	eventService := service.NewLoginEventService(mongo.NewLoginEventRepository(db), redis.NewEventDedup(redisClient), log)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, eventService, log)
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	tokens := service.NewTokenManager(service.TokenConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
		Issuer:        cfg.JWT.Issuer,
		Audience:      cfg.JWT.Audience,
	})
	limiter := redis.NewLoginLimiter(redisClient, redis.LimiterConfig{
		MaxAttempts: cfg.Login.MaxAttempts,
		Window:      cfg.Login.LockoutWindow,
	})

	e := api.NewRouter(api.Deps{
		Auth:      service.NewAuthService(mongo.NewAdminRepository(db), tokens, limiter, dispatcher, log),
		Enquiries: service.NewEnquiryService(mongo.NewEnquiryRepository(db), log),
		Dashboard: service.NewDashboardService(mongo.NewContentCounter(db)),
		Readiness: map[string]handler.PingFunc{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
			"redis":   func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		},
		ContactRatePerMinute: cfg.Contact.RatePerMinute,
		Logger:               log,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
