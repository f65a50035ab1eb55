package fleet

import (
	"context"
	"log/slog"
)

// Option configures an App.
type Option func(*App) error

// Storer is the minimal store interface held by the App. It covers
// lifecycle operations only. The full composite interface (store.Store) is
// used in subsystem layers that don't create import cycles.
type Storer interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// App ties the store lifecycle and configuration together for a running
// service instance. Create one with New() and functional options; the
// subsystem services are wired on top of the same store by the caller.
type App struct {
	config Config
	logger *slog.Logger
	store  Storer
}

// New creates a new App with the given options.
func New(opts ...Option) (*App, error) {
	a := &App{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Store returns the app's store.
func (a *App) Store() Storer { return a.store }

// Config returns a copy of the app's configuration.
func (a *App) Config() Config { return a.config }

// Start migrates the store schema and verifies connectivity.
func (a *App) Start(ctx context.Context) error {
	if a.store == nil {
		return ErrNoStore
	}
	if err := a.store.Migrate(ctx); err != nil {
		return err
	}
	return a.store.Ping(ctx)
}

// Stop releases the store connection.
func (a *App) Stop(_ context.Context) error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// WithConfig replaces the app configuration.
func WithConfig(cfg Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets the structured logger for the app.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) error {
		a.logger = l
		return nil
	}
}

// WithStore sets the persistence backend for the app. The store must
// implement Storer at minimum; typically it will be a store.Store which
// embeds all subsystem store interfaces.
func WithStore(s Storer) Option {
	return func(a *App) error {
		a.store = s
		return nil
	}
}
