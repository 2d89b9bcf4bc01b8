// Package server initializes and runs the raggate server: it builds the
// credential store, session manager, and rate limiter as explicit instances,
// wires them into the HTTP surface, runs the periodic session sweep, and
// handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	"github.com/avolkovs/raggate/internal/filex"
	"github.com/avolkovs/raggate/internal/logging"
	"github.com/avolkovs/raggate/internal/server/config"
	"github.com/avolkovs/raggate/internal/server/creds"
	"github.com/avolkovs/raggate/internal/server/docs"
	"github.com/avolkovs/raggate/internal/server/ratelimit"
	"github.com/avolkovs/raggate/internal/server/sessions"
	"github.com/avolkovs/raggate/internal/server/web"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	sessions *sessions.Manager
	limiter  *ratelimit.Limiter
	router   *fiber.App
	cron     *cron.Cron
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := filex.EnsureDir(cfg.DataDir); err != nil {
		return nil, err
	}

	sessionManager, err := sessions.NewManager(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("session manager init: %w", err)
	}

	credStore, err := creds.NewStore(ctx, cfg, sessionManager, logger)
	if err != nil {
		return nil, fmt.Errorf("credential store init: %w", err)
	}

	limiter := ratelimit.NewLimiter(cfg.RateLimitWindow, cfg.RateLimitMaxRequests, logger)

	docStore, err := docs.NewDirStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("document store init: %w", err)
	}

	handler := web.NewHandler(credStore, sessionManager, limiter,
		docStore, docs.NewStaticResponder(docStore), logger)

	return &App{
		config:   cfg,
		logger:   logger,
		sessions: sessionManager,
		limiter:  limiter,
		router:   web.NewRouter(handler),
		cron:     cron.New(),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startSweeper(ctx context.Context) error {
	spec := "@every " + app.config.SweepInterval.String()
	_, err := app.cron.AddFunc(spec, func() {
		if _, err := app.sessions.Sweep(ctx); err != nil {
			app.logger.Error(ctx, "session sweep failed", "error", err.Error())
		}
		app.limiter.EvictIdle(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduling session sweep: %w", err)
	}
	app.cron.Start()
	return nil
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.ListenAddr)

	app.initSignalHandler(cancelFunc)

	if err := app.startSweeper(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.router.Listen(app.config.ListenAddr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	<-app.cron.Stop().Done()
	if err := app.router.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
