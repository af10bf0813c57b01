package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/packfinderz-promotions/api/controllers"
	"github.com/angelmondragon/packfinderz-promotions/api/routes"
	"github.com/angelmondragon/packfinderz-promotions/internal/promotions/evaluator"
	"github.com/angelmondragon/packfinderz-promotions/internal/promotions/events"
	"github.com/angelmondragon/packfinderz-promotions/internal/promotions/snapshot"
	"github.com/angelmondragon/packfinderz-promotions/internal/promotions/store"
	"github.com/angelmondragon/packfinderz-promotions/pkg/config"
	"github.com/angelmondragon/packfinderz-promotions/pkg/db"
	"github.com/angelmondragon/packfinderz-promotions/pkg/logger"
	"github.com/angelmondragon/packfinderz-promotions/pkg/metrics"
	"github.com/angelmondragon/packfinderz-promotions/pkg/migrate"
	"github.com/angelmondragon/packfinderz-promotions/pkg/pubsub"
	"github.com/angelmondragon/packfinderz-promotions/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "promotions-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "promotions-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	dbClient, err := openDatabase(ctx, cfg, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	requireResource(ctx, logg, "dev migrations", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMetrics := metrics.NewPromotionMetrics(reg)

	readiness := map[string]controllers.Pinger{"db": dbClient}

	var shared snapshot.SharedStore
	if cfg.FeatureFlags.SharedSnapshotCache {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		requireResource(ctx, logg, "redis", err)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}()
		shared = snapshot.NewRedisStore(redisClient, cfg.Promotions.SharedSnapshotTTL)
		readiness["redis"] = redisClient
	}

	cache := snapshot.NewCache(store.NewRepository(dbClient.DB(), logg), snapshot.Options{
		TTL:            cfg.Promotions.SnapshotTTL,
		RefreshTimeout: cfg.Promotions.RefreshTimeout,
		Shared:         shared,
		Metrics:        promMetrics,
		Logger:         logg,
	})

	service := evaluator.NewService(cache, evaluator.Config{
		FlashPriceTolerance: cfg.Promotions.Tolerance(),
		DefaultCurrency:     cfg.Promotions.Currency(),
	}, promMetrics, logg)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumerDone := make(chan struct{})
	if cfg.FeatureFlags.PromotionEvents {
		pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		requireResource(ctx, logg, "pubsub", err)
		defer pubsubClient.Close()
		readiness["pubsub"] = pubsubClient

		consumer, err := events.NewConsumer(cache, pubsubClient.PromotionEventsSubscription(), logg)
		requireResource(ctx, logg, "promotion events consumer", err)

		go func() {
			defer close(consumerDone)
			if err := consumer.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				logg.Error(runCtx, "promotion events consumer stopped", err)
			}
		}()
	} else {
		close(consumerDone)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":              cfg.App.Env,
		"addr":             addr,
		"shared_snapshots": shared != nil,
		"promotion_events": cfg.FeatureFlags.PromotionEvents,
		"snapshot_ttl":     cfg.Promotions.SnapshotTTL.String(),
		"refresh_timeout":  cfg.Promotions.RefreshTimeout.String(),
		"default_currency": cfg.Promotions.Currency().String(),
	})

	handler := routes.NewRouter(cfg, logg, routes.Dependencies{
		Evaluator: service,
		Readiness: readiness,
		Gatherer:  reg,
	})
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(serverCtx, "starting promotions api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
			stop()
			<-consumerDone
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(serverCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(serverCtx, "graceful shutdown failed", err)
		}
	}

	<-consumerDone
	logg.Info(serverCtx, "promotions api server stopped")
}

func openDatabase(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*db.Client, error) {
	if cfg.FeatureFlags.UseSQLite {
		return db.NewSQLite(ctx, cfg.DB, logg)
	}
	return db.New(ctx, cfg.DB, logg)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
