package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/stargate-service/internal/api/http"
	"github.com/spec-kit/stargate-service/internal/api/http/handlers"
	"github.com/spec-kit/stargate-service/internal/cache"
	"github.com/spec-kit/stargate-service/internal/config"
	"github.com/spec-kit/stargate-service/internal/events"
	"github.com/spec-kit/stargate-service/internal/observability"
	"github.com/spec-kit/stargate-service/internal/persistence"
	"github.com/spec-kit/stargate-service/internal/repository"
	pgstore "github.com/spec-kit/stargate-service/internal/repository/postgres"
	sqlitestore "github.com/spec-kit/stargate-service/internal/repository/sqlite"
	"github.com/spec-kit/stargate-service/internal/service"
	"github.com/spec-kit/stargate-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	readCache := cache.NewRedisCache(redis.Handle(), cfg.Redis.TTL())
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartEventSubscribers(service.NewEventSubscribers(dispatcher, readCache, metrics, logger))

	audit := observability.NewAuditLogger(logger, store.Repositories().Logs, cfg.Logger.DBLevel)

	personService := service.NewPersonService(service.PersonDependencies{
		Store:      store,
		Cache:      readCache,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	dutyService := service.NewDutyService(service.DutyDependencies{
		Store:        store,
		Cache:        readCache,
		Dispatcher:   dispatcher,
		Logger:       logger,
		NameMatching: cfg.Duty.NameMatching,
	})

	var redisProbe handlers.Pinger
	if redis != nil {
		redisProbe = redis
	}

	app := httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(app, logger, audit, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, redisProbe),
		People:  handlers.NewPersonHandler(personService, audit),
		Duties:  handlers.NewDutyHandler(dutyService, audit),
		Metrics: metrics.Handler(),
	})

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("db_driver", cfg.Database.Driver),
			zap.String("duty_name_matching", string(cfg.Duty.NameMatching)),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// openStore connects the configured backend and applies migrations when enabled.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, func()) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		if cfg.Database.RunMigrations {
			if err := persistence.RunPostgresMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		return pgstore.NewStore(pg.PoolHandle()), pg.Close
	default:
		db, err := persistence.NewSQLite(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal("failed to open sqlite", zap.Error(err))
		}
		if cfg.Database.RunMigrations {
			if err := persistence.RunSQLiteMigrations(ctx, db.Handle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		return sqlitestore.NewStore(db.Handle()), db.Close
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
