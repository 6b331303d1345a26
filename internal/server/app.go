// Package server assembles and runs the PulsePal application: it opens
// the database, wires the services and the model gateway, and serves the
// HTTP API until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pulsepal/pulsepal/internal/logging"
	"github.com/pulsepal/pulsepal/internal/server/config"
	"github.com/pulsepal/pulsepal/internal/server/httpapi"
	"github.com/pulsepal/pulsepal/internal/server/llm"
	"github.com/pulsepal/pulsepal/internal/server/repositories/repomanager"
	"github.com/pulsepal/pulsepal/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	server  *httpapi.Server
	closeDB func() error
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, m, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	gateway := llm.NewGateway(cfg, logger)
	contexts := services.NewContextService(m)

	srv := httpapi.NewServer(cfg, logger,
		services.NewUserService(db, m),
		services.NewChatService(db, m, gateway, contexts, logger),
		services.NewReportService(db, m, gateway, logger),
		services.NewHistoryService(db, m),
		services.NewFeedbackService(db, m),
		services.NewToolService(db, m, contexts),
	)

	return &App{config: cfg, logger: logger, server: srv, closeDB: db.Close}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.closeDB(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
}
