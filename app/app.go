// Package app wires configuration, observability, the database, the event
// bus, and the modules into a running application.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/fairway-labs/looper/app/eventbus"
	catalogservice "github.com/fairway-labs/looper/app/modules/catalog/application"
	catalogdb "github.com/fairway-labs/looper/app/modules/catalog/infrastructure/repositories"
	scoringservice "github.com/fairway-labs/looper/app/modules/scoring/application"
	scoringhandlers "github.com/fairway-labs/looper/app/modules/scoring/infrastructure/handlers"
	scoringdb "github.com/fairway-labs/looper/app/modules/scoring/infrastructure/repositories"
	"github.com/fairway-labs/looper/app/shared"
	"github.com/fairway-labs/looper/app/shared/observability"
	"github.com/fairway-labs/looper/config"
)

// App holds the wired application.
type App struct {
	Cfg            *config.Config
	Observability  *observability.Observability
	CatalogService catalogservice.Service
	ScoringService scoringservice.Service

	db       *bun.DB
	bus      shared.EventBus
	handlers *scoringhandlers.ScoringHandlers
}

// NewApp initializes the application with the necessary services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.Init(observability.Config{
		ServiceName:    "looper",
		Environment:    cfg.Observability.Environment,
		MetricsAddress: cfg.Observability.MetricsAddress,
	})
	logger := obs.Logger

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}
	if err := eventbus.InitializeStreams(ctx, bus); err != nil {
		bus.Close()
		_ = db.Close()
		return nil, err
	}

	catalogService := catalogservice.NewCatalogService(&catalogdb.CatalogDBImpl{DB: db}, logger, obs.Tracer)
	if cfg.Catalog.Dir != "" {
		n, err := catalogService.SyncDir(ctx, cfg.Catalog.Dir)
		if err != nil {
			bus.Close()
			_ = db.Close()
			return nil, fmt.Errorf("failed to sync catalog: %w", err)
		}
		logger.InfoContext(ctx, "Catalog synced", "specs", n)
	}

	scoringService := scoringservice.NewScoringService(
		&scoringdb.ScoringDBImpl{DB: db},
		logger,
		obs.Metrics,
		obs.Tracer,
		db,
	)

	handlers := scoringhandlers.NewScoringHandlers(scoringService, bus, logger)

	return &App{
		Cfg:            cfg,
		Observability:  obs,
		CatalogService: catalogService,
		ScoringService: scoringService,
		db:             db,
		bus:            bus,
		handlers:       handlers,
	}, nil
}

// Run registers the handlers and serves until the context ends.
func (a *App) Run(ctx context.Context) error {
	if err := a.handlers.Register(ctx); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return a.Observability.StartMetricsServer(ctx)
}

// Close releases the bus and database connections.
func (a *App) Close() error {
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			a.Observability.Logger.Error("Error closing event bus", "error", err)
		}
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
