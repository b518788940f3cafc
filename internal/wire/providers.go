// Package wire contains the dependency injection setup of the application.
package wire

import (
	"context"
	"errors"
	"log/slog"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/google/wire"

	"github.com/sevigo/pr-tracker/internal/app"
	"github.com/sevigo/pr-tracker/internal/cache"
	"github.com/sevigo/pr-tracker/internal/config"
	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/db"
	"github.com/sevigo/pr-tracker/internal/github"
	"github.com/sevigo/pr-tracker/internal/jobs"
	"github.com/sevigo/pr-tracker/internal/logger"
	"github.com/sevigo/pr-tracker/internal/reconcile"
	"github.com/sevigo/pr-tracker/internal/server"
	"github.com/sevigo/pr-tracker/internal/server/handler"
	"github.com/sevigo/pr-tracker/internal/storage"
)

// AppSet provides everything InitializeApp needs.
var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	config.LoadConfig,
	db.NewDatabase,
	github.NewClientFromConfig,
	github.NewFetcher,
	provideDBConfig,
	provideLogger,
	provideStore,
	provideTxManager,
	provideGateRules,
	provideFailingChecksCache,
	provideStatusUpdater,
	provideController,
	provideRefreshJob,
	provideDispatcher,
	provideScheduler,
	wire.Bind(new(handler.ReviewerSyncTrigger), new(*jobs.Scheduler)),
)

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return &cfg.Database
}

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.NewLogger(cfg.Logging, nil)
}

func provideStore(conn *db.DB) storage.Store {
	return storage.NewStore(conn.DB, trmsqlx.DefaultCtxGetter)
}

func provideTxManager(conn *db.DB) storage.TxManager {
	return manager.Must(trmsqlx.NewDefaultFactory(conn.DB))
}

func provideGateRules(cfg *config.Config, logger *slog.Logger) (*core.GateRules, error) {
	rules, err := config.LoadGateRules(cfg.RulesPath)
	if errors.Is(err, config.ErrRulesNotFound) {
		logger.Info("no gate rules file found, using built-in rules", "path", cfg.RulesPath)
		return rules, nil
	}
	return rules, err
}

func provideFailingChecksCache(cfg *config.Config, logger *slog.Logger) (cache.FailingChecks, error) {
	return cache.New(cfg.Cache, logger)
}

func provideStatusUpdater(cfg *config.Config, client github.Client, rules *core.GateRules) github.StatusUpdater {
	if !cfg.GitHub.PublishApprovalCheck {
		return nil
	}
	return github.NewStatusUpdater(client, rules.ApprovalCheckName)
}

func provideController(
	cfg *config.Config,
	store storage.Store,
	tx storage.TxManager,
	fetcher github.Fetcher,
	failing cache.FailingChecks,
	publisher github.StatusUpdater,
	rules *core.GateRules,
	logger *slog.Logger,
) *reconcile.Controller {
	return reconcile.NewController(store, tx, fetcher, failing, publisher, rules, reconcile.Config{
		Org:          cfg.GitHub.Org,
		ReviewerTeam: cfg.GitHub.ReviewerTeam,
		Repositories: cfg.GitHub.Repositories,
		LeaseTTL:     cfg.Sync.LeaseTTL,
	}, logger)
}

func provideRefreshJob(controller *reconcile.Controller, logger *slog.Logger) core.Job {
	return jobs.NewRefreshJob(controller, logger)
}

func provideDispatcher(ctx context.Context, job core.Job, cfg *config.Config, logger *slog.Logger) core.JobDispatcher {
	return jobs.NewDispatcher(ctx, job, cfg.MaxWorkers, logger)
}

func provideScheduler(controller *reconcile.Controller, cfg *config.Config, logger *slog.Logger) *jobs.Scheduler {
	return jobs.NewScheduler(controller, cfg.Sync, logger)
}
