package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/specialistvlad/lootgraph/internal/publish"
	"github.com/specialistvlad/lootgraph/internal/sqliteexport"
	"github.com/specialistvlad/lootgraph/internal/store"
)

// Run loads the loot data, builds the store and hands it to the configured
// outputs. With a healthcheck port set, it then serves HTTP until ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.", "data_paths", a.config.DataPaths)

	doc, err := a.loader.Load(ctx, a.config.DataPaths...)
	if err != nil {
		return fmt.Errorf("failed to load loot data: %w", err)
	}
	doc.Merge(&config.Document{IgnoredContainers: a.config.IgnoredContainers})

	s, err := store.Build(ctx, doc, store.WithMetrics(a.metrics))
	if err != nil {
		return fmt.Errorf("failed to build loot store: %w", err)
	}
	a.store = s

	if a.config.SQLiteOut != "" {
		if err := a.exportSQLite(ctx, s); err != nil {
			return err
		}
	}
	if a.config.PublishURL != "" {
		if err := a.publish(ctx, s); err != nil {
			return err
		}
	}

	if a.config.HealthcheckPort > 0 {
		return a.serve(ctx)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) exportSQLite(ctx context.Context, s store.Reader) error {
	exp, err := sqliteexport.Open(a.config.SQLiteOut)
	if err != nil {
		return fmt.Errorf("failed to open sqlite export: %w", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			a.logger.Warn("Closing sqlite export failed.", "error", err)
		}
	}()
	if err := exp.Export(ctx, s); err != nil {
		return fmt.Errorf("failed to export to sqlite: %w", err)
	}
	return nil
}

func (a *App) publish(ctx context.Context, s store.Reader) error {
	p, err := publish.New(publish.Config{
		URL:       a.config.PublishURL,
		Namespace: a.config.PublishNamespace,
		Timeout:   a.config.PublishTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to configure publisher: %w", err)
	}
	if err := p.Publish(ctx, s); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return nil
}
