// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/law-makers/racecard/internal/config"
	"github.com/law-makers/racecard/internal/engine"
	"github.com/law-makers/racecard/internal/engine/dynamic"
	"github.com/law-makers/racecard/internal/racecard"
	"github.com/law-makers/racecard/internal/utils/output"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per command invocation. No browser is started here:
// each race lookup starts and closes its own session through NewSession.
type Application struct {
	Config     *config.Config
	Logger     *zerolog.Logger
	Snapshots  *output.SnapshotWriter
	NewSession engine.SessionFactory
	Fetcher    *racecard.Fetcher
	Ranker     *racecard.Ranker
	startTime  time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the snapshot writer when a snapshot directory is configured
//   - Builds the browser session factory from the browser settings
//   - Creates the fetcher and ranker
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := SetupLogging(cfg, os.Stderr)

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	snapshots := output.NewSnapshotWriter(cfg.SnapshotDir)
	if snapshots.Enabled() {
		logger.Debug().Str("dir", cfg.SnapshotDir).Msg("HTML snapshots enabled")
	}

	sessionOpts := dynamic.SessionOptions{
		Headless:   cfg.Headless,
		UserAgent:  cfg.UserAgent,
		Proxy:      cfg.Proxy,
		ChromePath: cfg.ChromePath,
		Headers:    cfg.Headers,
	}
	newSession := func(ctx context.Context) (engine.Session, error) {
		s, err := dynamic.NewSession(ctx, sessionOpts)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	fetcher := racecard.NewFetcher(racecard.TimeoutsFromConfig(cfg), snapshots)
	fetcher.Retry.MaxAttempts = cfg.Retries

	app := &Application{
		Config:     cfg,
		Logger:     &logger,
		Snapshots:  snapshots,
		NewSession: newSession,
		Fetcher:    fetcher,
		Ranker:     racecard.NewRanker(newSession, fetcher),
		startTime:  time.Now(),
	}

	logger.Debug().Msg("Application initialized successfully")
	return app, nil
}

// SetupLogging configures the global zerolog logger from cfg and returns it.
// Warnings and errors are written by default; --quiet keeps only errors.
func SetupLogging(cfg *config.Config, w io.Writer) zerolog.Logger {
	switch cfg.LogLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	if !cfg.JSONLog {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return log.Logger
}

// Close releases application resources. Browser sessions are owned by the
// lookups that start them, so only bookkeeping happens here.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
