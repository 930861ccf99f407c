package app

import (
	"errors"
	"fmt"

	"github.com/billie-coop/slides/internal/config"
	"github.com/billie-coop/slides/internal/display"
	"github.com/billie-coop/slides/internal/media"
	"github.com/billie-coop/slides/internal/permission"
	"github.com/billie-coop/slides/internal/tui/events"
	"github.com/rs/zerolog"
)

// App holds all the core services
type App struct {
	Config *config.Manager
	Logger zerolog.Logger

	// Core services
	Index       *media.SQLiteIndex
	Media       *MediaService
	Permissions *permission.BrokerService
	Registry    *display.Registry

	// Event system
	EventBroker *events.Broker

	displayOptions display.Options
}

// New opens the image index and builds every service from the loaded
// configuration.
func New(cfgManager *config.Manager, logger zerolog.Logger) (*App, error) {
	cfg := cfgManager.Get()

	failure, err := display.ParseFailurePolicy(cfg.DecodeFailure)
	if err != nil {
		return nil, err
	}
	runPolicy, err := display.ParseRunPolicy(cfg.RunPolicy)
	if err != nil {
		return nil, err
	}

	index, err := media.OpenSQLiteIndex(cfg.IndexPath)
	if err != nil {
		return nil, err
	}

	broker := events.NewBrokerWithBuffer(256)

	granted := make([]permission.Capability, 0, len(cfg.AutoGrant))
	for _, c := range cfg.AutoGrant {
		granted = append(granted, permission.Capability(c))
	}

	a := &App{
		Config:      cfgManager,
		Logger:      logger,
		Index:       index,
		Registry:    display.NewRegistry(),
		EventBroker: broker,
		Permissions: permission.NewBrokerService(broker, cfgManager, logger, granted...),
		Media: NewMediaService(
			media.NewLister(index, logger),
			media.NewScanner(index, logger),
			cfg.MediaRoots,
			broker,
			logger,
		),
		displayOptions: display.Options{
			Delay:         cfg.Delay.Duration,
			FailurePolicy: failure,
			RunPolicy:     runPolicy,
			Logger:        logger,
			Broker:        broker,
		},
	}

	logger.Info().
		Str("index", index.Path()).
		Strs("roots", cfg.MediaRoots).
		Dur("delay", cfg.Delay.Duration).
		Str("decode_failure", failure.String()).
		Str("run_policy", runPolicy.String()).
		Msg("app ready")
	return a, nil
}

// DisplayOptions returns the pipeline options derived from configuration.
func (a *App) DisplayOptions() display.Options {
	return a.displayOptions
}

// NewPipeline builds a display pipeline sharing the app's registry, so
// Close cancels its runs.
func (a *App) NewPipeline(looper display.Looper, renderer display.Renderer) *display.Pipeline {
	return display.New(looper, renderer, a.Registry, a.displayOptions)
}

// Close cancels every display run and releases the index and broker.
func (a *App) Close() error {
	if n := a.Registry.CancelAll(); n > 0 {
		a.Logger.Debug().Int("cancelled", n).Msg("cancelled display runs on close")
	}
	a.EventBroker.Close()

	var errs []error
	if err := a.Index.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close index: %w", err))
	}
	return errors.Join(errs...)
}
