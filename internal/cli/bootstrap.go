package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cmms/bridge/internal/application/syncapp"
	"github.com/cmms/bridge/internal/domain/workorder"
	"github.com/cmms/bridge/internal/infrastructure/config"
	"github.com/cmms/bridge/internal/infrastructure/exchange"
	"github.com/cmms/bridge/internal/infrastructure/logger"
	"github.com/cmms/bridge/internal/infrastructure/persistence"
)

// app holds the wired collaborators for one CLI invocation. The store
// handle is explicitly owned: acquired here, released by Close.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	store     *persistence.Store
	historyDB *gorm.DB

	repo     workorder.Repository
	exchange workorder.Exchange
	inbound  *syncapp.InboundSyncService
	outbound *syncapp.OutboundSyncService
	history  *syncapp.HistoryService
}

// newApp loads configuration and wires logger, stores, and services
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	log.Info("Starting work-order bridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	store, err := persistence.NewStore(ctx, &cfg.Store)
	if err != nil {
		return nil, err
	}
	repo := persistence.NewMongoWorkOrderRepository(
		store.Collection(cfg.Store.Collection),
		cfg.Store.OpTimeout,
	)

	fileExchange := exchange.NewFileExchange(cfg.Exchange.InboundDir, cfg.Exchange.OutboundDir, log)

	a := &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		repo:     repo,
		exchange: fileExchange,
		inbound:  syncapp.NewInboundSyncService(repo, fileExchange, log),
		outbound: syncapp.NewOutboundSyncService(repo, fileExchange, log),
	}

	if cfg.History.Enabled {
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
		historyDB, err := persistence.OpenHistoryDB(cfg.History.Path, gormLog)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.historyDB = historyDB
		a.history = syncapp.NewHistoryService(persistence.NewGormSyncRunRepository(historyDB), log)
	}

	return a, nil
}

// record persists a run report when history is enabled
func (a *app) record(ctx context.Context, report *syncapp.Report) {
	if a.history != nil {
		a.history.Record(ctx, report)
	}
}

// Close releases the store and history handles
func (a *app) Close(ctx context.Context) {
	if a.historyDB != nil {
		if sqlDB, err := a.historyDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.store != nil {
		if err := a.store.Close(ctx); err != nil {
			a.log.Error("Error closing store", zap.Error(err))
		}
	}
	_ = logger.Sync(a.log)
}
