// Package bootstrap wires configuration, logging, storage, and the
// pipeline components into a runnable application.
package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/agents"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/collector"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/config"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/dashboard"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/digest"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/feed"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/logger"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/pipeline"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/snapshot"
)

// App holds the wired application components.
type App struct {
	Config     *config.Config
	Logger     logger.Logger
	Registry   *agents.Registry
	Snapshots  *snapshot.Snapshots
	Runner     *pipeline.Runner
	Aggregator *dashboard.Aggregator

	sqlite *snapshot.SQLiteStore
}

// New loads configuration and wires every component. Agents come from the
// config file when declared there, otherwise from the built-in registry.
func New(cfgPath string) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Service.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	defs := cfg.Agents
	if len(defs) == 0 {
		defs = agents.Builtin()
	}
	registry, err := agents.NewRegistry(defs, log)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Logger:   log,
		Registry: registry,
	}

	store, err := app.buildStore()
	if err != nil {
		return nil, err
	}
	app.Snapshots = snapshot.New(store)

	fetchTimeout := time.Duration(cfg.Service.FetchTimeoutSec) * time.Second
	fetcher := feed.NewHTTPFetcher(&http.Client{Timeout: fetchTimeout})
	coll := collector.New(fetcher, log, fetchTimeout)
	sink := digest.NewFileSink(cfg.Digest.Dir)

	app.Runner = pipeline.NewRunner(coll, app.Snapshots, sink, log)
	app.Aggregator = dashboard.New(app.Snapshots, log)

	log.Info("application wired",
		logger.String("storage", cfg.Storage.Kind),
		logger.Int("agents", len(defs)))

	return app, nil
}

// buildStore constructs the configured snapshot backend.
func (a *App) buildStore() (snapshot.Store, error) {
	switch a.Config.Storage.Kind {
	case "sqlite":
		store, err := snapshot.NewSQLiteStore(a.Config.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.sqlite = store
		return store, nil
	default:
		return snapshot.NewFileStore(a.Config.Storage.DataDir), nil
	}
}

// Close releases held resources.
func (a *App) Close() error {
	if a.sqlite != nil {
		if err := a.sqlite.Close(); err != nil {
			return err
		}
	}
	_ = a.Logger.Sync()
	return nil
}
