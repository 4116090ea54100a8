package cmd

import (
	"context"
	"fmt"

	"ai-access-manager/core/config"
	"ai-access-manager/core/logger"
	"ai-access-manager/core/reconcile"
	"ai-access-manager/core/store"
	"ai-access-manager/feature/providers"

	"go.uber.org/zap"
)

// runtime is everything a command needs to talk to the providers.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	store  store.Store
	engine *reconcile.Engine
}

// bootstrap loads configuration and builds the engine over every configured
// provider. The --provider flag narrows each operation, not the engine, so a
// partial sync never replaces the stored user list.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if len(providerFlag) > 0 {
		if _, err := providers.Build(cfg, providerFlag, logg); err != nil {
			return nil, err
		}
	}
	list, err := providers.Build(cfg, nil, logg)
	if err != nil {
		return nil, err
	}

	if !cfg.Store.IsValidDriver() {
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	st, err := store.Open(ctx, cfg.Store, cfg.Database, cfg.Storage)
	if err != nil {
		// The store is a cache; commands still work against live data.
		logg.Warn("Local store unavailable", zap.String("driver", cfg.Store.Driver), zap.Error(err))
		st = nil
	}

	return &runtime{
		cfg:    cfg,
		logger: logg,
		store:  st,
		engine: reconcile.NewEngine(list, st, logg),
	}, nil
}

// Close releases the store and flushes the logger.
func (r *runtime) Close() {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.logger.Warn("Failed to close local store", zap.Error(err))
		}
	}
	_ = r.logger.Sync()
}

// failedErr turns a report with failed providers into a command error.
func failedErr(report *reconcile.Report) error {
	if report == nil || !report.Failed() {
		return nil
	}
	return fmt.Errorf("%d of %d providers failed: %w",
		report.Count(reconcile.StatusError), len(report.Outcomes), report.Err())
}
