// Package app wires the application dependencies together.
package app

import (
	"context"

	"threadstorm/internal/config"
	"threadstorm/internal/store"
)

// App is the main application container holding all dependencies.
type App struct {
	Config *config.Config
	Store  *store.Store
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	st, err := store.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	return &App{
		Config: cfg,
		Store:  st,
	}, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
