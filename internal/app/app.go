// Package app initializes and orchestrates the main components of the PR tracker.
// It wires together the configuration, server, background jobs and storage.
package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sevigo/pr-tracker/internal/config"
	"github.com/sevigo/pr-tracker/internal/core"
	"github.com/sevigo/pr-tracker/internal/jobs"
	"github.com/sevigo/pr-tracker/internal/reconcile"
	"github.com/sevigo/pr-tracker/internal/server"
	"github.com/sevigo/pr-tracker/internal/storage"
)

// App holds the main application components.
type App struct {
	Cfg        *config.Config
	Store      storage.Store
	Controller *reconcile.Controller
	Dispatcher core.JobDispatcher

	ctx       context.Context
	server    *server.Server
	scheduler *jobs.Scheduler
	logger    *slog.Logger

	stopScheduler context.CancelFunc
	schedulerDone sync.WaitGroup
}

// NewApp sets up the application with all its dependencies.
func NewApp(
	ctx context.Context,
	cfg *config.Config,
	store storage.Store,
	controller *reconcile.Controller,
	dispatcher core.JobDispatcher,
	scheduler *jobs.Scheduler,
	srv *server.Server,
	logger *slog.Logger,
) *App {
	return &App{
		Cfg:        cfg,
		Store:      store,
		Controller: controller,
		Dispatcher: dispatcher,
		ctx:        ctx,
		server:     srv,
		scheduler:  scheduler,
		logger:     logger,
	}
}

// Start runs the periodic loops in the background and blocks serving HTTP.
func (a *App) Start() error {
	a.logger.Info("starting PR tracker",
		"server_port", a.Cfg.Server.Port,
		"max_workers", a.Cfg.MaxWorkers,
		"repositories", a.Cfg.GitHub.Repositories,
		"reviewer_team", a.Cfg.GitHub.ReviewerTeam,
	)

	schedCtx, cancel := context.WithCancel(a.ctx)
	a.stopScheduler = cancel
	a.schedulerDone.Go(func() { a.scheduler.Run(schedCtx) })

	err := a.server.Start()
	if err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}

	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down PR tracker services")

	// Stop the HTTP server first to prevent new incoming webhooks.
	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	if a.stopScheduler != nil {
		a.stopScheduler()
	}
	a.schedulerDone.Wait()

	// Let queued refreshes finish.
	a.Dispatcher.Stop()

	if serverErr != nil {
		a.logger.Error("PR tracker stopped with errors", "error", serverErr)
		return serverErr
	}

	a.logger.Info("PR tracker stopped successfully")
	return nil
}
