// Package main is the entry point for the learning-platform-service API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"learning-platform-service/internal/app/service"
	"learning-platform-service/internal/config"
	"learning-platform-service/internal/domain"
	"learning-platform-service/internal/infra/auth"
	"learning-platform-service/internal/infra/fixtures"
	"learning-platform-service/internal/infra/payments"
	"learning-platform-service/internal/infra/postgres"
	"learning-platform-service/internal/infra/postgres/migrations"
	rediscache "learning-platform-service/internal/infra/redis"
	"learning-platform-service/internal/job"
	"learning-platform-service/internal/logger"
	"learning-platform-service/internal/transport/httpserver"
	"learning-platform-service/internal/transport/httpserver/middleware"
	"learning-platform-service/internal/validator"
	"learning-platform-service/pkg/locker"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
			Release:     cfg.App.Name,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting learning-platform-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("payments_mode", cfg.Payments.Mode),
	)

	ctx := context.Background()
	loader := fixtures.NewLoader(afero.NewOsFs(), cfg.Catalog.FixturesDir, log.Logger)

	// Redis backs the watch page cache and the cross-instance import lock.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = rediscache.NewClient(ctx, rediscache.ClientConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("connected to Redis",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	}

	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("cache enabled",
			zap.Duration("context_ttl", cfg.Cache.ContextTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("cache disabled")
	}

	var importLocker locker.DistributedLocker = locker.NewLocalLocker()
	if redisClient != nil {
		importLocker = locker.NewRedisLocker(redisClient, log.Logger)
	}

	var (
		store     domain.CatalogStore
		ready     middleware.ReadyFunc
		scheduler *job.CatalogSyncScheduler
	)

	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		db, err := postgres.NewConnection(
			postgres.Config{
				Host:         cfg.Database.Host,
				Port:         cfg.Database.Port,
				Name:         cfg.Database.Name,
				User:         cfg.Database.User,
				Password:     cfg.Database.Password,
				SSLMode:      cfg.Database.SSLMode,
				MaxOpenConns: cfg.Database.MaxOpenConns,
				MaxIdleConns: cfg.Database.MaxIdleConns,
				MaxLifetime:  cfg.Database.MaxLifetime,
				Debug:        cfg.App.Debug,
			},
			log.Logger,
		)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer func() { _ = postgres.Close(db) }()

		if err := migrations.Run(db); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		log.Info("database migrations completed", zap.String("schema_version", migrations.Latest()))

		repo := postgres.NewRepository(db)
		store = repo
		ready = func(c *fiber.Ctx) bool {
			return postgres.HealthCheck(c.UserContext(), db) == nil
		}

		syncSvc := service.NewCatalogSyncService(loader, repo, cache, log.Logger)
		scheduler = job.NewCatalogSyncScheduler(
			syncSvc,
			job.SyncConfig{
				Interval:  cfg.Sync.Interval,
				Timeout:   cfg.Sync.Timeout,
				OnStartup: cfg.Sync.OnStartup,
			},
			log.Logger,
			importLocker,
		)

	default:
		snapshot, err := loader.Load()
		if err != nil {
			log.Fatal("failed to load catalog fixtures",
				zap.String("dir", cfg.Catalog.FixturesDir),
				zap.Error(err),
			)
		}
		store = fixtures.NewCatalog(snapshot)
		ready = func(*fiber.Ctx) bool { return true }
		log.Info("catalog loaded from fixtures",
			zap.Int("episodes", len(snapshot.Episodes)),
			zap.Int("videos", len(snapshot.Videos)),
			zap.Int("courses", len(snapshot.Courses)),
		)
	}

	var paymentsProvider domain.PaymentsProvider
	if cfg.Payments.Mode == config.PaymentsModeGateway {
		gw := cfg.Payments.Gateway
		paymentsProvider = payments.NewGatewayClient(
			payments.ClientConfig{
				BaseURL: gw.BaseURL,
				Timeout: gw.Timeout,
				Retry: payments.RetryConfig{
					MaxAttempts: gw.Retry.MaxAttempts,
					WaitTime:    gw.Retry.WaitTime,
					MaxWaitTime: gw.Retry.MaxWaitTime,
				},
				CB: payments.CBConfig{
					MaxRequests:  gw.CB.MaxRequests,
					Interval:     gw.CB.Interval,
					Timeout:      gw.CB.Timeout,
					FailureRatio: gw.CB.FailureRatio,
				},
			},
			log.Logger,
		)
	} else {
		paymentsProvider = payments.NewSimulatedProvider(
			payments.SimulatedConfig{
				Delay:                   cfg.Payments.Delay,
				DonationFailureRate:     cfg.Payments.DonationFailureRate,
				SubscriptionFailureRate: cfg.Payments.SubscriptionFailureRate,
			},
			log.Logger,
		)
	}

	authProvider := auth.NewJWTProvider(auth.Config{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		TokenTTL: cfg.Auth.TokenTTL,
	})

	svcs := httpserver.Services{
		Content:       service.NewContentService(store, cache, cfg.Cache.ContextTTL, log.Logger),
		Catalog:       service.NewCatalogService(store, log.Logger),
		Subscriptions: service.NewSubscriptionService(paymentsProvider, log.Logger),
		Donations:     service.NewDonationService(paymentsProvider, log.Logger),
	}
	if scheduler != nil {
		svcs.Importer = scheduler
	}

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Name:      cfg.App.Name,
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		svcs,
		authProvider,
		ready,
		validator.New(),
		log.Logger,
	)

	if scheduler != nil && cfg.Sync.Enabled {
		scheduler.Start()
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		if scheduler != nil {
			scheduler.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
