// Package app provides the application context and dependency management
// for the keyfold CLI. It centralizes configuration, logging, and pipeline
// construction so commands stay thin.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/keyfold/keyfold"
)

// App represents the keyfold application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Pipeline (lazy-initialized, singleton)
	mu       sync.Mutex
	pipeline *keyfold.Pipeline
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Pipeline returns the pipeline instance, creating it lazily if needed.
func (a *App) Pipeline() (*keyfold.Pipeline, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pipeline != nil {
		return a.pipeline, nil
	}

	p, err := keyfold.New(keyfold.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.pipeline = p
	return p, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
