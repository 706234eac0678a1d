package main

import (
	"context"

	"github.com/rcanales/gsfdeck/internal/catalog"
	"github.com/rcanales/gsfdeck/internal/config"
	"github.com/rcanales/gsfdeck/internal/controller"
	"github.com/rcanales/gsfdeck/internal/display"
	"github.com/rcanales/gsfdeck/internal/domain"
	"github.com/rcanales/gsfdeck/internal/input"
	"github.com/rcanales/gsfdeck/internal/metadata"
	"github.com/rcanales/gsfdeck/internal/player"
	"github.com/rcanales/gsfdeck/internal/present"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// AppOptions is the full dependency graph of the application, kept as one
// aggregate so tests can validate it
var AppOptions = fx.Options(
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	fx.Provide(
		newLogger,
		config.New,
		newCatalog,
		fx.Annotate(newMetadataReader, fx.As(new(domain.MetadataReader))),
		fx.Annotate(newPlayer, fx.As(new(domain.Player))),
		fx.Annotate(newInput, fx.As(new(domain.InputSource))),
		fx.Annotate(newDisplay, fx.As(new(domain.Display)), fx.As(fx.Self())),
		fx.Annotate(newPresenter, fx.As(new(domain.Presenter))),
		controller.New,
	),

	fx.Invoke(registerHooks),
)

func main() {
	// Run blocks until SIGINT/SIGTERM or until the controller requests
	// shutdown through fx.Shutdowner on a quit event
	fx.New(AppOptions).Run()
}

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func newCatalog(logger *zap.Logger, cfg *config.AppConfig) *catalog.Catalog {
	return catalog.New(logger, cfg.MusicRoot, config.TrackExt, cfg.VisibleRows)
}

func newMetadataReader(logger *zap.Logger) *metadata.Reader {
	return metadata.NewReader(logger)
}

func newPlayer(logger *zap.Logger, cfg *config.AppConfig) *player.Manager {
	return player.NewManager(logger, cfg.PlayerBin, config.PlayerArgs)
}

func newInput(logger *zap.Logger, cfg *config.AppConfig) *input.Joystick {
	return input.NewJoystick(logger, cfg.Joystick)
}

func newDisplay(logger *zap.Logger, cfg *config.AppConfig) *display.Backlight {
	return display.New(logger, cfg.Backlight)
}

func newPresenter(logger *zap.Logger) *present.Terminal {
	return present.NewTerminal(logger)
}

// registerHooks starts the input source and the controller run loop, and
// tears both down on shutdown
func registerHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	logger *zap.Logger,
	src domain.InputSource,
	backlight *display.Backlight,
	ctrl *controller.Controller,
) {
	var cancel context.CancelFunc

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := src.Start(ctx); err != nil {
				return err
			}

			runCtx, c := context.WithCancel(context.Background())
			cancel = c
			go func() {
				ctrl.Run(runCtx)
				// Quit event consumed; bring the whole app down
				_ = shutdowner.Shutdown()
			}()

			logger.Info("gsfdeck started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}

			// Wait for the controller to reap any live decoder
			var waitErr error
			select {
			case <-ctrl.Done():
			case <-ctx.Done():
				waitErr = ctx.Err()
			}

			logger.Info("Shutting down")
			waitErr = multierr.Append(waitErr, src.Stop(ctx))
			return multierr.Append(waitErr, backlight.Close())
		},
	})
}
